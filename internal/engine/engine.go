package engine

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/paddock-dev/paddock/internal/audit"
	"github.com/paddock-dev/paddock/internal/config"
	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/gitx"
	"github.com/paddock-dev/paddock/internal/logging"
	"github.com/paddock-dev/paddock/internal/registry"
	"github.com/paddock-dev/paddock/internal/status"
	"github.com/paddock-dev/paddock/internal/system"
)

// Engine drives all sandbox lifecycle operations for one repository.
type Engine struct {
	repo   *config.RepoContext
	paths  *config.Paths
	store  *registry.Store
	git    *gitx.Git
	prober *status.Prober
	exec   system.CommandExecutor
	fs     system.FileSystem
	cfg    *config.FileConfig
	audit  *audit.Logger

	now func() time.Time
}

// New wires an engine for the repository identified by repo. cfg may be nil
// when no per-user config file exists.
func New(repo *config.RepoContext, exec system.CommandExecutor, fs system.FileSystem, cfg *config.FileConfig) *Engine {
	paths := config.PathsFor(repo)
	git := gitx.New(exec)
	if cfg == nil {
		cfg = &config.FileConfig{}
	}
	return &Engine{
		repo:   repo,
		paths:  paths,
		store:  registry.NewStore(paths.RegistryFile),
		git:    git,
		prober: status.NewProber(git, fs),
		exec:   exec,
		fs:     fs,
		cfg:    cfg,
		audit:  audit.NewLogger(paths.StateDir),
		now:    time.Now,
	}
}

// Store exposes the registry store for read-only callers.
func (e *Engine) Store() *registry.Store {
	return e.store
}

// Repo returns the repository context the engine operates on.
func (e *Engine) Repo() *config.RepoContext {
	return e.repo
}

// AuditEvents returns recorded lifecycle events in chronological order,
// optionally filtered to one sandbox.
func (e *Engine) AuditEvents(sandbox string) ([]audit.Event, error) {
	return e.audit.Events(sandbox)
}

// lookup loads the registry and returns the record for name, failing with
// NotTracked when it is unknown.
func (e *Engine) lookup(name string) (*registry.Record, error) {
	reg, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	rec := reg.Get(name)
	if rec == nil {
		return nil, errors.NotTracked(name)
	}
	return rec, nil
}

// requirePath fails with PathMissing when the record's worktree is gone.
func (e *Engine) requirePath(name string, rec *registry.Record) error {
	if rec.Path == "" || !e.fs.Exists(rec.Path) {
		return errors.PathMissing(name, rec.Path)
	}
	return nil
}

// resolveLaunch applies the configured default strategy when none was given.
func (e *Engine) resolveLaunch(strategy string) string {
	if strategy != "" {
		return strategy
	}
	return e.cfg.DefaultLaunch
}

// logEvent records a lifecycle event. Audit failures never fail the
// operation that triggered them.
func (e *Engine) logEvent(eventType audit.EventType, name, details string) {
	if err := e.audit.LogEvent(eventType, name, details); err != nil {
		logging.Debug("failed to write audit event", "event", string(eventType), "error", err)
	}
}

// absPath expands a user-supplied path to an absolute one.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.ValidationError("invalid path " + path + ": " + err.Error())
	}
	return abs, nil
}

// resolveAgent lowercases and validates an agent label, falling back to the
// record's label and then to codex.
func resolveAgent(explicit, stored string) (string, error) {
	agent := strings.ToLower(explicit)
	if agent == "" {
		agent = strings.ToLower(stored)
	}
	if agent == "" {
		agent = "codex"
	}
	if err := config.ValidateAgent(agent); err != nil {
		return "", errors.ValidationError(err.Error())
	}
	return agent, nil
}

// applySandboxFlags folds confinement flags into a stored policy, returning
// the new policy. Disable wins over everything; any other flag enables
// confinement.
func applySandboxFlags(base *registry.SandboxPolicy, flags SandboxFlags) *registry.SandboxPolicy {
	if flags.Disable {
		return nil
	}
	policy := base.Clone()
	if policy == nil {
		policy = &registry.SandboxPolicy{}
	}
	if flags.Enable {
		policy.Enabled = true
	}
	if flags.Profile != "" {
		policy.Profile = flags.Profile
		policy.Enabled = true
	}
	if flags.Write != nil {
		policy.Write = normalizeWritePaths(flags.Write)
		policy.Enabled = true
	}
	if flags.DenyNetwork {
		policy.DenyNetwork = true
		policy.Enabled = true
	}
	if flags.AllowNetwork {
		policy.DenyNetwork = false
		policy.Enabled = true
	}
	if !policy.Enabled && base == nil {
		return nil
	}
	return policy
}

// normalizeWritePaths drops empties and makes the extra write paths absolute.
func normalizeWritePaths(paths []string) []string {
	normalized := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		normalized = append(normalized, p)
	}
	return normalized
}

// policyEqual compares two policies field by field.
func policyEqual(a, b *registry.SandboxPolicy) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Enabled != b.Enabled || a.Profile != b.Profile || a.DenyNetwork != b.DenyNetwork {
		return false
	}
	if len(a.Write) != len(b.Write) {
		return false
	}
	for i := range a.Write {
		if a.Write[i] != b.Write[i] {
			return false
		}
	}
	return true
}
