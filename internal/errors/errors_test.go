package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestPaddockError_Error(t *testing.T) {
	err := New(ExitNameConflict, "sandbox taken")
	if err.Error() != "sandbox taken" {
		t.Errorf("Error() = %q, want %q", err.Error(), "sandbox taken")
	}

	wrapped := Wrap(ExitRegistryIO, "registry write failed", errors.New("disk full"))
	if !strings.Contains(wrapped.Error(), "disk full") {
		t.Errorf("wrapped error should include cause, got %q", wrapped.Error())
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"name conflict", NameConflict("x"), ExitNameConflict},
		{"not tracked", NotTracked("x"), ExitNotTracked},
		{"branch not found", BranchNotFound("wt/x"), ExitBranchNotFound},
		{"dirty tree", DirtyTree("/tmp/wt"), ExitDirtyTree},
		{"path missing", PathMissing("x", "/tmp/wt"), ExitPathMissing},
		{"unknown launcher", UnknownLauncher("tmux"), ExitLauncherUnknown},
		{"launcher unavailable", LauncherUnavailable("osascript", nil), ExitLauncherUnavailable},
		{"registry corrupt", RegistryCorrupt("/tmp/r.json", nil), ExitRegistryCorrupt},
		{"registry io", RegistryIO("save", nil), ExitRegistryIO},
		{"git command", GitCommandFailed([]string{"push"}, 128, ""), ExitGitCommand},
		{"plain error", errors.New("boom"), ExitGeneralError},
		{"nested", fmt.Errorf("outer: %w", NotTracked("x")), ExitNotTracked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGitCommandError_Message(t *testing.T) {
	err := GitCommandFailed([]string{"worktree", "add", "/tmp/x"}, 128, "fatal: not a git repository\n")
	msg := err.Error()

	if !strings.Contains(msg, "worktree add") {
		t.Errorf("message should include the git args, got %q", msg)
	}
	if !strings.Contains(msg, "128") {
		t.Errorf("message should include the exit code, got %q", msg)
	}
	if !strings.Contains(msg, "not a git repository") {
		t.Errorf("message should include stderr, got %q", msg)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := RegistryIO("load", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestNotTracked_MentionsCreate(t *testing.T) {
	err := NotTracked("feat-a")
	if !strings.Contains(err.Error(), "paddock create feat-a") {
		t.Errorf("NotTracked should suggest the create command, got %q", err.Error())
	}
}
