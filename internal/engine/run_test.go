package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/registry"
	"github.com/paddock-dev/paddock/internal/system"
)

func TestRun_NotTracked(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.Run(context.Background(), RunOptions{Name: "ghost"})
	if err == nil {
		t.Fatal("expected NotTracked")
	}
	if errors.GetExitCode(err) != errors.ExitNotTracked {
		t.Errorf("exit code = %d, want ExitNotTracked", errors.GetExitCode(err))
	}
	if !strings.Contains(err.Error(), "paddock create ghost") {
		t.Errorf("error should point at create: %v", err)
	}
}

func TestRun_PathMissing(t *testing.T) {
	env := newTestEnv(t)
	env.seed("stale", &registry.Record{Path: "/does/not/exist", Branch: "wt/stale", Agent: "codex"})

	_, err := env.engine.Run(context.Background(), RunOptions{Name: "stale"})
	if err == nil {
		t.Fatal("expected PathMissing")
	}
	if errors.GetExitCode(err) != errors.ExitPathMissing {
		t.Errorf("exit code = %d, want ExitPathMissing", errors.GetExitCode(err))
	}
	if !strings.Contains(err.Error(), "paddock prune") {
		t.Errorf("error should point at prune: %v", err)
	}
}

func TestRun_UsesStoredCommand(t *testing.T) {
	env := newTestEnv(t)
	path := env.worktree("box")
	env.seed("box", &registry.Record{Path: path, Branch: "wt/box", Agent: "claude", Command: "claude --resume"})

	result, err := env.engine.Run(context.Background(), RunOptions{Name: "box"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Command != "claude --resume" {
		t.Errorf("command = %q, want the stored command", result.Command)
	}

	cmd, _ := env.exec.LastCommand()
	if cmd.Args[1] != "claude --resume" {
		t.Errorf("spawned %q, want the stored command", cmd.Args[1])
	}
	if cmd.Dir != path {
		t.Errorf("dir = %q, want the worktree", cmd.Dir)
	}
}

func TestRun_ExplicitCmdWinsAndPersists(t *testing.T) {
	env := newTestEnv(t)
	path := env.worktree("box")
	env.seed("box", &registry.Record{Path: path, Branch: "wt/box", Agent: "codex", Command: "codex"})

	result, err := env.engine.Run(context.Background(), RunOptions{Name: "box", Cmd: "codex --full-auto"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Command != "codex --full-auto" {
		t.Errorf("command = %q, want the explicit cmd", result.Command)
	}

	if rec := env.record("box"); rec.Command != "codex --full-auto" {
		t.Errorf("stored command = %q, explicit cmd should persist", rec.Command)
	}
}

func TestRun_EnvOverrideBeatsBuiltin(t *testing.T) {
	env := newTestEnv(t)
	path := env.worktree("box")
	env.seed("box", &registry.Record{Path: path, Branch: "wt/box", Agent: "gemini"})
	t.Setenv("PADDOCK_CMD_GEMINI", "gemini --yolo")

	result, err := env.engine.Run(context.Background(), RunOptions{Name: "box"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Command != "gemini --yolo" {
		t.Errorf("command = %q, want the env override", result.Command)
	}
}

func TestRun_DirtyTargetGuard(t *testing.T) {
	env := newTestEnv(t)
	path := env.worktree("box")
	env.seed("box", &registry.Record{Path: path, Branch: "wt/box", Agent: "codex", Command: "codex"})
	env.exec.AddResponse("git status --porcelain", system.MockResponse{Stdout: "?? new.go\n"})

	_, err := env.engine.Run(context.Background(), RunOptions{Name: "box"})
	if err == nil {
		t.Fatal("expected DirtyTree")
	}
	if errors.GetExitCode(err) != errors.ExitDirtyTree {
		t.Errorf("exit code = %d, want ExitDirtyTree", errors.GetExitCode(err))
	}

	if _, err := env.engine.Run(context.Background(), RunOptions{Name: "box", AllowDirty: true}); err != nil {
		t.Fatalf("Run with AllowDirty failed: %v", err)
	}
}

func TestRun_UnknownLaunchStrategy(t *testing.T) {
	env := newTestEnv(t)
	path := env.worktree("box")
	env.seed("box", &registry.Record{Path: path, Branch: "wt/box", Agent: "codex", Command: "codex"})

	_, err := env.engine.Run(context.Background(), RunOptions{Name: "box", Launch: "tmux"})
	if err == nil {
		t.Fatal("expected UnknownLauncher")
	}
	if errors.GetExitCode(err) != errors.ExitLauncherUnknown {
		t.Errorf("exit code = %d, want ExitLauncherUnknown", errors.GetExitCode(err))
	}
}

func TestRun_SandboxWrapsCommand(t *testing.T) {
	env := newTestEnv(t)
	path := env.worktree("box")
	env.seed("box", &registry.Record{
		Path:    path,
		Branch:  "wt/box",
		Agent:   "codex",
		Command: "codex",
		Sandbox: &registry.SandboxPolicy{Enabled: true, DenyNetwork: true},
	})

	_, err := env.engine.Run(context.Background(), RunOptions{Name: "box"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	cmd, _ := env.exec.LastCommand()
	if !strings.HasPrefix(cmd.Args[1], "sandbox-exec -f ") {
		t.Errorf("command not confined: %q", cmd.Args[1])
	}
	if !strings.Contains(cmd.Args[1], "box.sb") {
		t.Errorf("profile path not derived from the sandbox name: %q", cmd.Args[1])
	}
}

func TestRun_RecordEnvReachesLaunch(t *testing.T) {
	env := newTestEnv(t)
	path := env.worktree("box")
	env.seed("box", &registry.Record{
		Path:    path,
		Branch:  "wt/box",
		Agent:   "codex",
		Command: "codex",
		Env:     map[string]string{"OPENAI_BASE_URL": "http://localhost:4000"},
	})

	_, err := env.engine.Run(context.Background(), RunOptions{Name: "box"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	cmd, _ := env.exec.LastCommand()
	found := false
	for _, kv := range cmd.Env {
		if kv == "OPENAI_BASE_URL=http://localhost:4000" {
			found = true
		}
	}
	if !found {
		t.Error("record env not passed to the launch")
	}
}

func TestOpen_RequiresTerminalStrategy(t *testing.T) {
	env := newTestEnv(t)
	path := env.worktree("box")
	env.seed("box", &registry.Record{Path: path, Branch: "wt/box", Agent: "codex"})

	if err := env.engine.Open(context.Background(), "box", "spawn"); err == nil {
		t.Error("open via spawn should be rejected")
	}

	if err := env.engine.Open(context.Background(), "box", ""); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	cmd, _ := env.exec.LastCommand()
	if cmd.Name != "osascript" {
		t.Fatalf("expected osascript, got %s", cmd.Line())
	}
	if !strings.Contains(cmd.Args[1], "exec $SHELL") {
		t.Errorf("open should start a shell: %q", cmd.Args[1])
	}
}
