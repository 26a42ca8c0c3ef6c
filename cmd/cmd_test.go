package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/mattn/go-isatty"

	"github.com/paddock-dev/paddock/internal/engine"
	"github.com/paddock-dev/paddock/internal/registry"
	"github.com/paddock-dev/paddock/internal/testutil"
)

// useEnv points newEngine at a pre-built test environment for the duration
// of the test.
func useEnv(t *testing.T, env *testutil.TestEnv) {
	t.Helper()

	prev := newEngine
	newEngine = func(ctx context.Context) (*engine.Engine, error) {
		return env.Engine, nil
	}
	t.Cleanup(func() { newEngine = prev })
}

func executeCommand(args ...string) (string, string, error) {
	// Reset flag values before each invocation
	verbose = false
	createAgent = "codex"
	createBase = "main"
	createBranch = ""
	createPath = ""
	createCmdFlag = ""
	createUseExisting = false
	createStart = false
	createLaunch = ""
	createAllowDirty = false
	createSandbox = sandboxFlagSet{}
	runAgent = ""
	runCmdFlag = ""
	runLaunch = ""
	runAllowDirty = false
	runSandbox = sandboxFlagSet{}
	listJSON = false
	infoJSON = false
	setAgent = ""
	setCmdFlag = ""
	setPath = ""
	setSandbox = sandboxFlagSet{}
	setEnvUnset = nil
	removeDeletePath = false
	removeDeleteBranch = false
	removePurge = false
	removeForce = false
	pruneDeleteBranch = false
	pruneOrphanedBranch = false
	pruneForce = false
	pruneDryRun = false
	pruneJSON = false
	openLaunch = ""
	auditJSON = false
	commitMessage = ""
	commitAll = false
	pushRemote = ""
	pushBranch = ""
	if f := setCmd.Flags().Lookup("cmd"); f != nil {
		f.Changed = false
	}
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		if f := c.Flags().Lookup("help"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "paddock") {
		t.Error("Help output should contain 'paddock'")
	}

	if !strings.Contains(stdout, "sandbox") {
		t.Error("Help output should mention sandboxes")
	}
}

func TestCreateCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("create", "--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	for _, flag := range []string{"--agent", "--base", "--branch", "--path", "--use-existing-branch", "--start", "--sandbox"} {
		if !strings.Contains(stdout, flag) {
			t.Errorf("Create help should mention %s", flag)
		}
	}
}

func TestCreateCommand_TracksSandbox(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.NoBranches()
	useEnv(t, env)

	_, _, err := executeCommand("create", "feat-a")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec := env.Record(t, "feat-a")
	if rec == nil {
		t.Fatal("expected a tracked record after create")
	}
	if rec.Branch != "wt/feat-a" {
		t.Errorf("Branch = %q, want wt/feat-a", rec.Branch)
	}
	if rec.Agent != "codex" {
		t.Errorf("Agent = %q, want codex", rec.Agent)
	}

	var sawAdd bool
	for _, line := range env.Exec.CommandLines() {
		if strings.HasPrefix(line, "git worktree add -b wt/feat-a ") {
			sawAdd = true
		}
	}
	if !sawAdd {
		t.Errorf("expected a worktree add call, got %v", env.Exec.CommandLines())
	}
}

func TestListCommand_Empty(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	stdout, _, err := executeCommand("list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if !strings.Contains(stdout, "No sandboxes are tracked yet") {
		t.Errorf("expected empty-state hint, got %q", stdout)
	}
}

func TestListCommand_JSON(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	dir := env.Worktree(t, "box")
	env.Seed(t, "box", &registry.Record{
		Path:   dir,
		Branch: "wt/box",
		Base:   "main",
		Agent:  "claude",
	})

	stdout, _, err := executeCommand("list", "--json")
	if err != nil {
		t.Fatalf("list --json failed: %v", err)
	}

	var payload struct {
		Sandboxes []struct {
			Name   string `json:"name"`
			Branch string `json:"branch"`
			Agent  string `json:"agent"`
			Status string `json:"status"`
		} `json:"sandboxes"`
	}
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}

	if len(payload.Sandboxes) != 1 {
		t.Fatalf("expected 1 sandbox, got %d", len(payload.Sandboxes))
	}
	got := payload.Sandboxes[0]
	if got.Name != "box" || got.Branch != "wt/box" || got.Agent != "claude" {
		t.Errorf("unexpected sandbox payload: %+v", got)
	}
	if got.Status != "ready" {
		t.Errorf("Status = %q, want ready", got.Status)
	}
}

func TestListCommand_Table(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	env.Seed(t, "box", &registry.Record{
		Path:   "/nowhere/box",
		Branch: "wt/box",
		Agent:  "codex",
	})

	stdout, _, err := executeCommand("list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if !strings.Contains(stdout, "NAME") && !strings.Contains(stdout, "name") {
		t.Errorf("expected a header row, got %q", stdout)
	}
	if !strings.Contains(stdout, "box") || !strings.Contains(stdout, "missing") {
		t.Errorf("expected row with missing status, got %q", stdout)
	}
}

func TestInfoCommand_JSON(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	dir := env.Worktree(t, "box")
	env.Seed(t, "box", &registry.Record{
		Path:    dir,
		Branch:  "wt/box",
		Base:    "main",
		Agent:   "gemini",
		Command: "gemini --yolo",
		Env:     map[string]string{"FOO": "bar"},
	})

	stdout, _, err := executeCommand("info", "box", "--json")
	if err != nil {
		t.Fatalf("info --json failed: %v", err)
	}

	var info struct {
		Name    string            `json:"name"`
		Agent   string            `json:"agent"`
		Command string            `json:"command"`
		Env     map[string]string `json:"env"`
	}
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}

	if info.Name != "box" || info.Agent != "gemini" || info.Command != "gemini --yolo" {
		t.Errorf("unexpected info payload: %+v", info)
	}
	if info.Env["FOO"] != "bar" {
		t.Errorf("Env = %v, want FOO=bar", info.Env)
	}
}

func TestInfoCommand_Untracked(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	_, _, err := executeCommand("info", "ghost")
	if err == nil {
		t.Fatal("expected an error for an untracked sandbox")
	}
}

func TestSetCommand_UpdatesAgent(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	env.Seed(t, "box", &registry.Record{
		Path:   "/tmp/box",
		Branch: "wt/box",
		Agent:  "codex",
	})

	_, _, err := executeCommand("set", "box", "--agent", "claude")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}

	rec := env.Record(t, "box")
	if rec.Agent != "claude" {
		t.Errorf("Agent = %q, want claude", rec.Agent)
	}
}

func TestSetEnvCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	env.Seed(t, "box", &registry.Record{
		Path:   "/tmp/box",
		Branch: "wt/box",
		Agent:  "codex",
		Env:    map[string]string{"OLD": "1"},
	})

	_, _, err := executeCommand("set-env", "box", "TOKEN=abc", "--unset", "OLD")
	if err != nil {
		t.Fatalf("set-env failed: %v", err)
	}

	rec := env.Record(t, "box")
	if rec.Env["TOKEN"] != "abc" {
		t.Errorf("Env[TOKEN] = %q, want abc", rec.Env["TOKEN"])
	}
	if _, ok := rec.Env["OLD"]; ok {
		t.Error("expected OLD to be unset")
	}
}

func TestRemoveCommand_TrackingOnly(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	env.Seed(t, "box", &registry.Record{
		Path:   "/tmp/box",
		Branch: "wt/box",
		Agent:  "codex",
	})

	_, _, err := executeCommand("remove", "box")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if env.Record(t, "box") != nil {
		t.Error("expected record to be gone after remove")
	}
	for _, line := range env.Exec.CommandLines() {
		if strings.HasPrefix(line, "git worktree remove") || strings.HasPrefix(line, "git branch -D") {
			t.Errorf("tracking-only remove issued a destructive git call: %s", line)
		}
	}
}

func TestPruneCommand_DryRunJSON(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.NoBranches()
	useEnv(t, env)

	env.Seed(t, "stale", &registry.Record{
		Path:   "/nowhere/stale",
		Branch: "wt/stale",
		Agent:  "codex",
	})

	stdout, _, err := executeCommand("prune", "--dry-run", "--json")
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}

	var result struct {
		Removed []struct {
			Name        string `json:"name"`
			MissingPath bool   `json:"missingPath"`
		} `json:"removed"`
		DryRun bool `json:"dryRun"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}

	if !result.DryRun {
		t.Error("expected dryRun true")
	}
	if len(result.Removed) != 1 || result.Removed[0].Name != "stale" || !result.Removed[0].MissingPath {
		t.Errorf("unexpected prune result: %+v", result)
	}
	if env.Record(t, "stale") == nil {
		t.Error("dry run must not drop the record")
	}
}

func TestGitCommand_Passthrough(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	dir := env.Worktree(t, "box")
	env.Seed(t, "box", &registry.Record{
		Path:   dir,
		Branch: "wt/box",
		Agent:  "codex",
	})

	_, _, err := executeCommand("git", "box", "--", "log", "--oneline", "-5")
	if err != nil {
		t.Fatalf("git passthrough failed: %v", err)
	}

	last, ok := env.Exec.LastCommand()
	if !ok {
		t.Fatal("expected a git call")
	}
	if got := strings.Join(append([]string{last.Name}, last.Args...), " "); got != "git log --oneline -5" {
		t.Errorf("git call = %q, want git log --oneline -5", got)
	}
	if last.Dir != dir {
		t.Errorf("git ran in %q, want %q", last.Dir, dir)
	}
}

func TestCommitCommand_RequiresMessage(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	dir := env.Worktree(t, "box")
	env.Seed(t, "box", &registry.Record{
		Path:   dir,
		Branch: "wt/box",
		Agent:  "codex",
	})

	_, _, err := executeCommand("commit", "box")
	if err == nil {
		t.Fatal("expected an error without -m")
	}

	_, _, err = executeCommand("commit", "box", "-m", "checkpoint")
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
}

func TestPushCommand_Defaults(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	dir := env.Worktree(t, "box")
	env.Seed(t, "box", &registry.Record{
		Path:   dir,
		Branch: "wt/box",
		Agent:  "codex",
	})

	_, _, err := executeCommand("push", "box")
	if err != nil {
		t.Fatalf("push failed: %v", err)
	}

	last, _ := env.Exec.LastCommand()
	if got := strings.Join(append([]string{last.Name}, last.Args...), " "); got != "git push origin wt/box" {
		t.Errorf("push call = %q, want git push origin wt/box", got)
	}
}

func TestAuditCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	env.Seed(t, "box", &registry.Record{
		Path:   "/tmp/box",
		Branch: "wt/box",
		Agent:  "codex",
	})

	stdout, _, err := executeCommand("audit", "box")
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if !strings.Contains(stdout, "No events recorded") {
		t.Errorf("expected empty-trail message, got %q", stdout)
	}

	if _, _, err := executeCommand("set-env", "box", "TOKEN=abc"); err != nil {
		t.Fatalf("set-env failed: %v", err)
	}

	stdout, _, err = executeCommand("audit", "box")
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if !strings.Contains(stdout, "set-env") || !strings.Contains(stdout, "box") {
		t.Errorf("expected a set-env event for box, got %q", stdout)
	}
}

func TestAuditCommand_JSON(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	env.Seed(t, "box", &registry.Record{
		Path:   "/tmp/box",
		Branch: "wt/box",
		Agent:  "codex",
	})
	if _, _, err := executeCommand("set", "box", "--agent", "claude"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	stdout, _, err := executeCommand("audit", "box", "--json")
	if err != nil {
		t.Fatalf("audit --json failed: %v", err)
	}

	var event struct {
		Type    string `json:"type"`
		Sandbox string `json:"sandbox"`
	}
	line := strings.SplitN(strings.TrimSpace(stdout), "\n", 2)[0]
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		t.Fatalf("invalid JSON line: %v\n%s", err, stdout)
	}
	if event.Type != "set" || event.Sandbox != "box" {
		t.Errorf("unexpected event payload: %+v", event)
	}
}

func TestUICommand_NonInteractiveSummary(t *testing.T) {
	env := testutil.NewTestEnv(t)
	useEnv(t, env)

	env.Seed(t, "box", &registry.Record{
		Path:   "/nowhere/box",
		Branch: "wt/box",
		Agent:  "codex",
	})

	if isatty.IsTerminal(os.Stdout.Fd()) {
		t.Skip("requires a non-interactive stdout")
	}

	stdout, _, err := executeCommand("ui")
	if err != nil {
		t.Fatalf("ui failed: %v", err)
	}
	if !strings.Contains(stdout, "paddock - Sandboxes") {
		t.Errorf("expected the summary header, got %q", stdout)
	}
	if !strings.Contains(stdout, "box") || !strings.Contains(stdout, "wt/box") {
		t.Errorf("expected the tracked sandbox in the listing, got %q", stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand("version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	if !strings.Contains(stdout, "paddock") || !strings.Contains(stdout, version) {
		t.Errorf("unexpected version output: %q", stdout)
	}
}

func TestGlobalFlags(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help failed: %v", err)
	}

	if !strings.Contains(stdout, "--verbose") {
		t.Error("Should have --verbose flag")
	}
}

func TestCommandRequiresArgs(t *testing.T) {
	tests := []string{"run", "info", "set", "set-env", "remove", "git", "diff", "commit", "push", "open"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			stdout, stderr, err := executeCommand(name)
			output := stdout + stderr

			if err == nil && !strings.Contains(output, "Usage:") {
				t.Errorf("%s without args should fail or show usage", name)
			}
		})
	}
}
