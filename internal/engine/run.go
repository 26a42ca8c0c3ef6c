package engine

import (
	"context"
	"strings"

	"github.com/paddock-dev/paddock/internal/audit"
	"github.com/paddock-dev/paddock/internal/config"
	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/launcher"
	"github.com/paddock-dev/paddock/internal/logging"
	"github.com/paddock-dev/paddock/internal/profile"
	"github.com/paddock-dev/paddock/internal/registry"
)

// Run launches the agent inside its sandbox. The effective command is the
// explicit Cmd, then the record's stored command, then the agent label's
// default. When Cmd or Agent were given explicitly they are persisted back
// to the record so the next plain run repeats them.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	rec, err := e.lookup(opts.Name)
	if err != nil {
		return nil, err
	}

	agent, err := resolveAgent(opts.Agent, rec.Agent)
	if err != nil {
		return nil, err
	}

	if err := e.requirePath(opts.Name, rec); err != nil {
		return nil, err
	}

	command := opts.Cmd
	if command == "" {
		command = rec.Command
	}
	if command == "" {
		command = config.DefaultAgentCommand(agent, e.cfg)
	}
	if command == "" {
		return nil, errors.ValidationError(`no command configured for this agent; provide one with --cmd "<agent command>"`)
	}

	if !opts.AllowDirty {
		dirty, err := e.git.IsDirty(ctx, rec.Path)
		if err != nil {
			return nil, err
		}
		if dirty {
			return nil, errors.DirtyTree(rec.Path)
		}
	}

	policy := applySandboxFlags(rec.Sandbox, opts.Sandbox)
	profilePath, err := profile.Ensure(e.fs, e.exec, e.paths.ProfilesDir, opts.Name, rec.Path, e.repo.CommonDir, policy)
	if err != nil {
		return nil, err
	}

	strategy := e.resolveLaunch(opts.Launch)
	l, err := launcher.New(strategy, e.exec)
	if err != nil {
		return nil, err
	}

	logging.Debug("launching agent", "name", opts.Name, "agent", agent, "strategy", strategy, "command", command)
	launched, err := l.Launch(ctx, launcher.Request{
		Command:     command,
		Dir:         rec.Path,
		Env:         rec.Env,
		ProfilePath: profilePath,
	})
	if err != nil {
		return nil, err
	}

	if opts.Cmd != "" || opts.Agent != "" || opts.Sandbox.set() {
		err := e.store.Update(func(reg *registry.Registry) error {
			current := reg.Get(opts.Name)
			if current == nil {
				return errors.NotTracked(opts.Name)
			}
			if opts.Cmd != "" {
				current.Command = opts.Cmd
			}
			if opts.Agent != "" {
				current.Agent = agent
			}
			if opts.Sandbox.set() {
				current.Sandbox = applySandboxFlags(current.Sandbox, opts.Sandbox)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	e.logEvent(audit.EventRun, opts.Name, "agent="+agent)

	if strategy == "" {
		strategy = launcher.StrategySpawn
	}
	return &RunResult{
		Name:     opts.Name,
		Command:  command,
		Dir:      rec.Path,
		Strategy: strategy,
		PID:      launched.PID,
	}, nil
}

// Open starts an interactive shell at the sandbox's worktree in a new
// Terminal or iTerm session.
func (e *Engine) Open(ctx context.Context, name, strategy string) error {
	rec, err := e.lookup(name)
	if err != nil {
		return err
	}
	if err := e.requirePath(name, rec); err != nil {
		return err
	}

	strategy = strings.ToLower(strategy)
	if strategy == "" {
		strategy = launcher.StrategyTerminal
	}
	if strategy != launcher.StrategyTerminal && strategy != launcher.StrategyITerm {
		return errors.ValidationError("open needs a terminal session: use --launch terminal or --launch iterm")
	}

	l, err := launcher.New(strategy, e.exec)
	if err != nil {
		return err
	}
	if _, err := l.Launch(ctx, launcher.Request{
		Command: "exec $SHELL",
		Dir:     rec.Path,
		Env:     rec.Env,
	}); err != nil {
		return err
	}

	e.logEvent(audit.EventOpen, name, "strategy="+strategy)
	return nil
}
