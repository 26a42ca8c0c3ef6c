package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/paddock-dev/paddock/internal/audit"
	"github.com/paddock-dev/paddock/internal/config"
	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/logging"
	"github.com/paddock-dev/paddock/internal/registry"
)

// Create adds a worktree sandbox: a new (or existing) branch checked out at
// its own directory, tracked under opts.Name. The invoking worktree must be
// clean unless AllowDirty is set, so an in-progress change is never forked
// into a fresh sandbox by accident.
func (e *Engine) Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	logging.Debug("creating sandbox", "name", opts.Name, "agent", opts.Agent)

	if err := config.ValidateSandboxName(opts.Name); err != nil {
		return nil, errors.ValidationError(err.Error())
	}
	agent, err := resolveAgent(opts.Agent, "")
	if err != nil {
		return nil, err
	}

	reg, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	if reg.Get(opts.Name) != nil {
		return nil, errors.NameConflict(opts.Name)
	}

	if !opts.AllowDirty {
		dirty, err := e.git.IsDirty(ctx, e.repo.Root)
		if err != nil {
			return nil, err
		}
		if dirty {
			return nil, errors.DirtyTree(e.repo.Root)
		}
	}

	branch := opts.Branch
	if branch == "" {
		if opts.UseExistingBranch {
			branch = opts.Name
		} else {
			branch = "wt/" + opts.Name
		}
	}

	path := opts.Path
	if path == "" {
		path = config.DefaultWorktreePath(e.repo.Root, opts.Name)
	}
	path, err = absPath(path)
	if err != nil {
		return nil, err
	}

	base := opts.Base
	if base == "" {
		base = "main"
	}

	if opts.UseExistingBranch {
		if !e.git.BranchExists(ctx, e.repo.Root, branch) {
			return nil, errors.BranchNotFound(branch)
		}
		base = branch
	} else if e.git.BranchExists(ctx, e.repo.Root, branch) {
		return nil, errors.ValidationError(fmt.Sprintf(
			"branch %q already exists; pick another --branch, delete it, or pass --use-existing-branch", branch))
	}

	command := opts.Cmd
	if command == "" {
		command = config.DefaultAgentCommand(agent, e.cfg)
	}

	rec := &registry.Record{
		Path:      path,
		Branch:    branch,
		Base:      base,
		Agent:     agent,
		Command:   command,
		Env:       map[string]string{},
		Sandbox:   applySandboxFlags(nil, opts.Sandbox),
		CreatedAt: e.now().UTC().Format(time.RFC3339),
	}

	// Reserve the name under the registry lock before touching git, so two
	// racing creates cannot both add a worktree for it.
	err = e.store.Update(func(reg *registry.Registry) error {
		if reg.Get(opts.Name) != nil {
			return errors.NameConflict(opts.Name)
		}
		return reg.Add(opts.Name, rec)
	})
	if err != nil {
		return nil, err
	}

	if opts.UseExistingBranch {
		err = e.git.WorktreeAdd(ctx, e.repo.Root, path, branch, "", false)
	} else {
		err = e.git.WorktreeAdd(ctx, e.repo.Root, path, branch, base, true)
	}
	if err != nil {
		e.releaseName(opts.Name)
		return nil, err
	}

	e.logEvent(audit.EventCreate, opts.Name, "branch="+branch)

	result := &CreateResult{
		Name:   opts.Name,
		Path:   path,
		Branch: branch,
		Base:   base,
	}

	if opts.Start {
		run, err := e.Run(ctx, RunOptions{
			Name:       opts.Name,
			Launch:     opts.Launch,
			AllowDirty: opts.AllowDirty,
		})
		if err != nil {
			return result, err
		}
		result.Run = run
	}
	return result, nil
}

// releaseName drops a reservation whose worktree never materialized.
// Best-effort: the failed git operation is the error worth reporting.
func (e *Engine) releaseName(name string) {
	err := e.store.Update(func(reg *registry.Registry) error {
		reg.Delete(name)
		return nil
	})
	if err != nil {
		logging.Debug("failed to release reserved sandbox name", "name", name, "error", err)
	}
}
