package gitx

import (
	"context"
	"strings"
	"testing"

	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/system"
)

func newTestGit() (*Git, *system.MockExecutor) {
	exec := system.NewMockExecutor()
	return New(exec), exec
}

func TestRun_NonZeroExitIsNotError(t *testing.T) {
	git, exec := newTestGit()
	exec.AddResponse("git show-ref", system.MockResponse{ExitCode: 1})

	res, err := git.Run(context.Background(), "/work", "show-ref", "--verify", "--quiet", "refs/heads/x")
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
}

func TestWorktreeAdd_CreateBranch(t *testing.T) {
	git, exec := newTestGit()

	err := git.WorktreeAdd(context.Background(), "/work/repo", "/work/repo-x", "wt/x", "main", true)
	if err != nil {
		t.Fatalf("WorktreeAdd failed: %v", err)
	}

	cmd, _ := exec.LastCommand()
	if cmd.Line() != "git worktree add -b wt/x /work/repo-x main" {
		t.Errorf("unexpected command: %s", cmd.Line())
	}
	if cmd.Dir != "/work/repo" {
		t.Errorf("WorktreeAdd should run from the repo root, got %q", cmd.Dir)
	}
}

func TestWorktreeAdd_ExistingBranch(t *testing.T) {
	git, exec := newTestGit()

	err := git.WorktreeAdd(context.Background(), "/work/repo", "/work/repo-x", "feat/a", "", false)
	if err != nil {
		t.Fatalf("WorktreeAdd failed: %v", err)
	}

	cmd, _ := exec.LastCommand()
	if cmd.Line() != "git worktree add /work/repo-x feat/a" {
		t.Errorf("unexpected command: %s", cmd.Line())
	}
}

func TestWorktreeAdd_FailureWrapsGitError(t *testing.T) {
	git, exec := newTestGit()
	exec.AddResponse("git worktree add", system.MockResponse{ExitCode: 128, Stderr: "fatal: already exists"})

	err := git.WorktreeAdd(context.Background(), "/work/repo", "/work/repo-x", "wt/x", "main", true)
	if err == nil {
		t.Fatal("expected error on non-zero exit")
	}
	var gitErr *errors.GitCommandError
	if !errors.As(err, &gitErr) {
		t.Fatalf("expected GitCommandError, got %T", err)
	}
	if gitErr.GitExitCode != 128 || !strings.Contains(gitErr.Stderr, "already exists") {
		t.Errorf("error missing context: %+v", gitErr)
	}
}

func TestIsDirty(t *testing.T) {
	git, exec := newTestGit()
	exec.AddResponse("git status --porcelain", system.MockResponse{Stdout: " M main.go\n?? new.go\n"})

	dirty, err := git.IsDirty(context.Background(), "/work/repo-x")
	if err != nil {
		t.Fatalf("IsDirty failed: %v", err)
	}
	if !dirty {
		t.Error("expected dirty")
	}

	cmd, _ := exec.LastCommand()
	if cmd.Dir != "/work/repo-x" {
		t.Errorf("IsDirty must run inside the worktree, got dir %q", cmd.Dir)
	}
}

func TestIsDirty_Clean(t *testing.T) {
	git, exec := newTestGit()
	exec.AddResponse("git status --porcelain", system.MockResponse{Stdout: "\n"})

	dirty, err := git.IsDirty(context.Background(), "/work/repo-x")
	if err != nil {
		t.Fatalf("IsDirty failed: %v", err)
	}
	if dirty {
		t.Error("expected clean")
	}
}

func TestAheadBehind(t *testing.T) {
	git, exec := newTestGit()
	exec.AddResponse("git rev-parse --abbrev-ref", system.MockResponse{Stdout: "origin/wt/x\n"})
	exec.AddResponse("git rev-list --left-right --count", system.MockResponse{Stdout: "3\t1\n"})

	ahead, behind, ok := git.AheadBehind(context.Background(), "/work/repo-x")
	if !ok {
		t.Fatal("expected counts")
	}
	if ahead != 3 || behind != 1 {
		t.Errorf("ahead=%d behind=%d, want 3/1", ahead, behind)
	}
}

func TestAheadBehind_NoUpstream(t *testing.T) {
	git, exec := newTestGit()
	exec.AddResponse("git rev-parse --abbrev-ref", system.MockResponse{ExitCode: 128, Stderr: "fatal: no upstream"})

	_, _, ok := git.AheadBehind(context.Background(), "/work/repo-x")
	if ok {
		t.Error("no upstream should report unknown, not zero counts")
	}
}

func TestBranchDelete_ForceFlag(t *testing.T) {
	git, exec := newTestGit()

	if err := git.BranchDelete(context.Background(), "/work/repo", "wt/x", true); err != nil {
		t.Fatal(err)
	}
	cmd, _ := exec.LastCommand()
	if cmd.Line() != "git branch -D wt/x" {
		t.Errorf("unexpected command: %s", cmd.Line())
	}

	if err := git.BranchDelete(context.Background(), "/work/repo", "wt/x", false); err != nil {
		t.Fatal(err)
	}
	cmd, _ = exec.LastCommand()
	if cmd.Line() != "git branch -d wt/x" {
		t.Errorf("unexpected command: %s", cmd.Line())
	}
}

func TestCommit_AllStagesEverything(t *testing.T) {
	git, exec := newTestGit()

	if err := git.Commit(context.Background(), "/work/repo-x", "wip", true); err != nil {
		t.Fatal(err)
	}

	lines := exec.CommandLines()
	if lines[0] != "git add -A" {
		t.Errorf("first command = %q, want git add -A", lines[0])
	}
	if lines[1] != "git commit -m wip" {
		t.Errorf("second command = %q, want git commit -m wip", lines[1])
	}
}

func TestPush(t *testing.T) {
	git, exec := newTestGit()

	if err := git.Push(context.Background(), "/work/repo-x", "origin", "wt/x"); err != nil {
		t.Fatal(err)
	}
	cmd, _ := exec.LastCommand()
	if cmd.Line() != "git push origin wt/x" {
		t.Errorf("unexpected command: %s", cmd.Line())
	}
	if cmd.Dir != "/work/repo-x" {
		t.Errorf("Push must run inside the worktree, got %q", cmd.Dir)
	}
}

func TestRepoContext(t *testing.T) {
	git, exec := newTestGit()
	exec.AddResponse("git rev-parse --show-toplevel", system.MockResponse{Stdout: "/work/repo\n"})
	exec.AddResponse("git rev-parse --path-format=absolute --git-common-dir", system.MockResponse{Stdout: "/work/repo/.git\n"})

	root, common, err := git.RepoContext(context.Background(), "/work/repo/sub")
	if err != nil {
		t.Fatalf("RepoContext failed: %v", err)
	}
	if root != "/work/repo" || common != "/work/repo/.git" {
		t.Errorf("root=%q common=%q", root, common)
	}
}

func TestRepoContext_NotARepo(t *testing.T) {
	git, exec := newTestGit()
	exec.AddResponse("git rev-parse --show-toplevel", system.MockResponse{ExitCode: 128, Stderr: "fatal: not a git repository"})

	_, _, err := git.RepoContext(context.Background(), "/tmp")
	if err == nil {
		t.Fatal("expected error outside a repository")
	}
	if !strings.Contains(err.Error(), "git repository") {
		t.Errorf("error should mention git repository: %v", err)
	}
}
