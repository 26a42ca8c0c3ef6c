package engine

import (
	"context"

	"github.com/paddock-dev/paddock/internal/audit"
	"github.com/paddock-dev/paddock/internal/errors"
)

// resolveWorktree returns the record's path after the tracked and
// path-exists guards, for operations that run git inside the sandbox.
func (e *Engine) resolveWorktree(name string) (string, error) {
	rec, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	if err := e.requirePath(name, rec); err != nil {
		return "", err
	}
	return rec.Path, nil
}

// Git runs an arbitrary git command inside the sandbox's worktree with the
// caller's terminal attached.
func (e *Engine) Git(ctx context.Context, name string, args []string) error {
	dir, err := e.resolveWorktree(name)
	if err != nil {
		return err
	}
	return e.git.RunInteractive(ctx, dir, args...)
}

// Diff shows the sandbox's working diff; extra arguments are passed through
// to git diff.
func (e *Engine) Diff(ctx context.Context, name string, args []string) error {
	dir, err := e.resolveWorktree(name)
	if err != nil {
		return err
	}
	return e.git.RunInteractive(ctx, dir, append([]string{"diff"}, args...)...)
}

// Commit stages and commits inside the sandbox's worktree.
func (e *Engine) Commit(ctx context.Context, name, message string, all bool) error {
	if message == "" {
		return errors.ValidationError("commit message is required (-m/--message)")
	}
	dir, err := e.resolveWorktree(name)
	if err != nil {
		return err
	}
	if err := e.git.Commit(ctx, dir, message, all); err != nil {
		return err
	}
	e.logEvent(audit.EventCommit, name, "")
	return nil
}

// Push pushes the sandbox's branch. Remote defaults to origin and branch to
// the record's tracked branch.
func (e *Engine) Push(ctx context.Context, name, remote, branch string) error {
	rec, err := e.lookup(name)
	if err != nil {
		return err
	}
	if err := e.requirePath(name, rec); err != nil {
		return err
	}

	if branch == "" {
		branch = rec.Branch
	}
	if branch == "" {
		return errors.ValidationError("branch is unknown; specify --branch")
	}
	if remote == "" {
		remote = "origin"
	}

	if err := e.git.Push(ctx, rec.Path, remote, branch); err != nil {
		return err
	}
	e.logEvent(audit.EventPush, name, remote+"/"+branch)
	return nil
}
