package engine

import (
	"github.com/paddock-dev/paddock/internal/registry"
	"github.com/paddock-dev/paddock/internal/status"
)

// SandboxFlags carries the confinement flags shared by create, run, and set.
// Any flag other than Disable implies enabling the sandbox.
type SandboxFlags struct {
	// Enable turns confinement on with the current policy.
	Enable bool

	// Disable turns confinement off and clears the stored policy.
	Disable bool

	// Profile points at a pre-built profile file instead of a generated one.
	Profile string

	// Write lists extra paths the agent may write to. A non-nil empty slice
	// clears the stored list.
	Write []string

	// DenyNetwork blocks network access inside the sandbox.
	DenyNetwork bool

	// AllowNetwork re-enables network access.
	AllowNetwork bool
}

// set reports whether any confinement flag was given.
func (f SandboxFlags) set() bool {
	return f.Enable || f.Disable || f.Profile != "" || f.Write != nil ||
		f.DenyNetwork || f.AllowNetwork
}

// CreateOptions holds all options for creating a sandbox.
type CreateOptions struct {
	// Name is the sandbox name (required).
	Name string

	// Agent is the agent label. Defaults to codex.
	Agent string

	// Base is the ref new branches start from. Defaults to main.
	Base string

	// Branch overrides the branch name. Empty means wt/<name>, or <name>
	// when attaching to an existing branch.
	Branch string

	// Path overrides the worktree location. Empty means a sibling directory
	// of the repository root named <repoBase>-<name>.
	Path string

	// Cmd overrides the launch command stored on the record.
	Cmd string

	// UseExistingBranch attaches to Branch instead of creating it.
	UseExistingBranch bool

	// Start launches the agent immediately after creation.
	Start bool

	// Launch selects the launch strategy used with Start.
	Launch string

	// AllowDirty skips the dirty-tree guard.
	AllowDirty bool

	Sandbox SandboxFlags
}

// CreateResult holds the outcome of a successful creation.
type CreateResult struct {
	Name   string
	Path   string
	Branch string
	Base   string

	// Run is set when Start was requested.
	Run *RunResult
}

// RunOptions holds all options for launching an agent.
type RunOptions struct {
	// Name is the sandbox name (required).
	Name string

	// Agent overrides the record's agent label for this launch.
	Agent string

	// Cmd overrides the effective command for this launch.
	Cmd string

	// Launch selects the strategy: spawn, terminal, or iterm.
	Launch string

	// AllowDirty skips the dirty-tree guard on the target worktree.
	AllowDirty bool

	Sandbox SandboxFlags
}

// RunResult holds the outcome of a launch.
type RunResult struct {
	Name     string
	Command  string
	Dir      string
	Strategy string

	// PID is set for spawn launches only.
	PID int
}

// SetOptions holds the partial metadata update for one record. Nil or empty
// fields are left untouched; Cmd distinguishes "not given" (nil) from
// "clear the stored command" (pointer to empty string).
type SetOptions struct {
	Name  string
	Agent string
	Cmd   *string
	Path  string

	Sandbox SandboxFlags
}

// RemoveOptions controls how a sandbox is untracked.
type RemoveOptions struct {
	Name string

	// DeletePath removes the worktree directory via git.
	DeletePath bool

	// DeleteBranch deletes the tracked branch.
	DeleteBranch bool

	// Purge is shorthand for DeletePath plus DeleteBranch.
	Purge bool

	// Force drops the registry entry even when destructive git operations
	// fail, and downgrades those failures to warnings.
	Force bool
}

// RemoveResult reports what remove actually did.
type RemoveResult struct {
	Name          string
	PathRemoved   bool
	BranchDeleted bool

	// Warnings collects git failures tolerated under Force.
	Warnings []string
}

// PruneOptions controls the registry sweep.
type PruneOptions struct {
	// DeleteBranch deletes still-present branches of pruned entries.
	DeleteBranch bool

	// OrphanedBranch also prunes entries whose branch vanished even when
	// the path still exists.
	OrphanedBranch bool

	// DryRun reports candidates without mutating anything.
	DryRun bool

	// Force keeps going when a branch deletion fails.
	Force bool
}

// PruneCandidate is one entry selected for pruning.
type PruneCandidate struct {
	Name          string `json:"name"`
	Branch        string `json:"branch"`
	MissingPath   bool   `json:"missingPath"`
	MissingBranch bool   `json:"missingBranch"`
}

// PruneResult summarizes a sweep.
type PruneResult struct {
	Removed []PruneCandidate `json:"removed"`
	Kept    []string         `json:"kept"`
	DryRun  bool             `json:"dryRun"`
}

// SandboxInfo is the read-model for list and info: the stored record
// flattened together with its live observed state.
type SandboxInfo struct {
	Name      string                  `json:"name"`
	Path      string                  `json:"path"`
	Branch    string                  `json:"branch"`
	Base      string                  `json:"base"`
	Agent     string                  `json:"agent"`
	Command   string                  `json:"command"`
	Env       map[string]string       `json:"env"`
	Sandbox   *registry.SandboxPolicy `json:"sandbox,omitempty"`
	CreatedAt string                  `json:"createdAt"`
	Status    string                  `json:"status"`
	Dirty     *bool                   `json:"dirty"`
	Ahead     *int                    `json:"ahead"`
	Behind    *int                    `json:"behind"`
	Upstream  string                  `json:"upstream,omitempty"`
}

func infoFor(name string, rec *registry.Record, obs status.Observed) SandboxInfo {
	env := rec.Env
	if env == nil {
		env = map[string]string{}
	}
	return SandboxInfo{
		Name:      name,
		Path:      rec.Path,
		Branch:    rec.Branch,
		Base:      rec.Base,
		Agent:     rec.Agent,
		Command:   rec.Command,
		Env:       env,
		Sandbox:   rec.Sandbox.Clone(),
		CreatedAt: rec.CreatedAt,
		Status:    obs.Label(),
		Dirty:     obs.Dirty,
		Ahead:     obs.Ahead,
		Behind:    obs.Behind,
		Upstream:  obs.Upstream,
	}
}
