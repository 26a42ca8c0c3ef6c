// Package gitx is a thin synchronous wrapper around the git binary.
// Run never treats a non-zero exit as an error; callers interpret exit
// codes and decide what blocks their operation.
package gitx

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/logging"
	"github.com/paddock-dev/paddock/internal/system"
)

// Result holds the outcome of one git invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Git runs git commands with a fixed working directory per call.
type Git struct {
	exec system.CommandExecutor
}

// New returns a Git facade executing through exec.
func New(exec system.CommandExecutor) *Git {
	return &Git{exec: exec}
}

// Run executes git with dir as the working directory and captures the
// output. The returned error is non-nil only when git could not be
// started at all.
func (g *Git) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	logging.Debug("running git", "dir", dir, "args", strings.Join(args, " "))

	res, err := g.exec.Run(ctx, dir, nil, "git", args...)
	if err != nil {
		return Result{}, fmt.Errorf("failed to run git %s: %w", strings.Join(args, " "), err)
	}
	return Result{
		Stdout:   string(res.Stdout),
		Stderr:   string(res.Stderr),
		ExitCode: res.ExitCode,
	}, nil
}

// RunInteractive executes git with dir as the working directory and the
// caller's terminal attached, for passthrough commands like diff.
func (g *Git) RunInteractive(ctx context.Context, dir string, args ...string) error {
	logging.Debug("running git interactively", "dir", dir, "args", strings.Join(args, " "))
	err := g.exec.RunInteractive(ctx, dir, "git", args...)
	if err != nil {
		if code := system.ExitCodeFromError(err); code > 0 {
			return errors.GitCommandFailed(args, code, "")
		}
		return fmt.Errorf("failed to run git %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

// mustSucceed converts a non-zero Result into a GitCommandError.
func mustSucceed(res Result, err error, args ...string) error {
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return errors.GitCommandFailed(args, res.ExitCode, res.Stderr)
	}
	return nil
}

// RepoContext resolves the worktree root and the shared git common dir for
// the repository containing cwd.
func (g *Git) RepoContext(ctx context.Context, cwd string) (root, commonDir string, err error) {
	res, err := g.Run(ctx, cwd, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", "", err
	}
	if res.ExitCode != 0 {
		return "", "", fmt.Errorf("paddock must run inside a git repository: %s", strings.TrimSpace(res.Stderr))
	}
	root = strings.TrimSpace(res.Stdout)

	res, err = g.Run(ctx, cwd, "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		return "", "", err
	}
	if res.ExitCode != 0 {
		return "", "", fmt.Errorf("failed to resolve git common dir: %s", strings.TrimSpace(res.Stderr))
	}
	commonDir = strings.TrimSpace(res.Stdout)
	return root, commonDir, nil
}

// BranchExists reports whether a local branch exists.
func (g *Git) BranchExists(ctx context.Context, dir, branch string) bool {
	res, err := g.Run(ctx, dir, "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil && res.ExitCode == 0
}

// WorktreeAdd creates a worktree at path. With createBranch true, branch is
// created from base in the same call; otherwise the existing branch is
// checked out.
func (g *Git) WorktreeAdd(ctx context.Context, repoRoot, path, branch, base string, createBranch bool) error {
	var args []string
	if createBranch {
		args = []string{"worktree", "add", "-b", branch, path, base}
	} else {
		args = []string{"worktree", "add", path, branch}
	}
	res, err := g.Run(ctx, repoRoot, args...)
	return mustSucceed(res, err, args...)
}

// WorktreeRemove removes the worktree at path.
func (g *Git) WorktreeRemove(ctx context.Context, repoRoot, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	res, err := g.Run(ctx, repoRoot, args...)
	return mustSucceed(res, err, args...)
}

// BranchDelete deletes a local branch. force uses -D.
func (g *Git) BranchDelete(ctx context.Context, repoRoot, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	args := []string{"branch", flag, branch}
	res, err := g.Run(ctx, repoRoot, args...)
	return mustSucceed(res, err, args...)
}

// IsDirty reports whether the worktree at dir has uncommitted changes.
func (g *Git) IsDirty(ctx context.Context, dir string) (bool, error) {
	res, err := g.Run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	if res.ExitCode != 0 {
		return false, errors.GitCommandFailed([]string{"status", "--porcelain"}, res.ExitCode, res.Stderr)
	}
	return strings.TrimSpace(res.Stdout) != "", nil
}

// Upstream returns the upstream ref of the branch checked out at dir, or
// empty when none is configured.
func (g *Git) Upstream(ctx context.Context, dir string) string {
	res, err := g.Run(ctx, dir, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	if err != nil || res.ExitCode != 0 {
		return ""
	}
	return strings.TrimSpace(res.Stdout)
}

// AheadBehind returns the commit counts between HEAD and its upstream.
// ok is false when no upstream is configured or the counts are unreadable.
func (g *Git) AheadBehind(ctx context.Context, dir string) (ahead, behind int, ok bool) {
	upstream := g.Upstream(ctx, dir)
	if upstream == "" {
		return 0, 0, false
	}

	res, err := g.Run(ctx, dir, "rev-list", "--left-right", "--count", "HEAD..."+upstream)
	if err != nil || res.ExitCode != 0 {
		return 0, 0, false
	}

	parts := strings.Fields(res.Stdout)
	if len(parts) != 2 {
		return 0, 0, false
	}
	ahead, errA := strconv.Atoi(parts[0])
	behind, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	return ahead, behind, true
}

// Commit stages and commits inside dir. With all true, untracked and
// deleted files are staged via -A; otherwise the current directory is
// added.
func (g *Git) Commit(ctx context.Context, dir, message string, all bool) error {
	addArgs := []string{"add", "."}
	if all {
		addArgs = []string{"add", "-A"}
	}
	res, err := g.Run(ctx, dir, addArgs...)
	if err := mustSucceed(res, err, addArgs...); err != nil {
		return err
	}

	commitArgs := []string{"commit", "-m", message}
	res, err = g.Run(ctx, dir, commitArgs...)
	return mustSucceed(res, err, commitArgs...)
}

// Push pushes branch to remote from dir.
func (g *Git) Push(ctx context.Context, dir, remote, branch string) error {
	args := []string{"push", remote, branch}
	res, err := g.Run(ctx, dir, args...)
	return mustSucceed(res, err, args...)
}
