package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paddock-dev/paddock/internal/config"
	"github.com/paddock-dev/paddock/internal/engine"
	"github.com/paddock-dev/paddock/internal/registry"
	"github.com/paddock-dev/paddock/internal/system"
)

// TestEnv bundles everything a command-level test needs: a fake repository
// on disk, the mock executor git and launches run through, and an engine
// operating on both.
type TestEnv struct {
	Repo   *config.RepoContext
	Paths  *config.Paths
	Exec   *system.MockExecutor
	Engine *engine.Engine
}

// NewTestEnv builds a temp repository layout and wires an engine against a
// mock executor and the real filesystem.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	root := t.TempDir()
	commonDir := filepath.Join(root, ".git")
	if err := os.MkdirAll(commonDir, 0755); err != nil {
		t.Fatalf("failed to create common dir: %v", err)
	}

	exec := system.NewMockExecutor()
	repo := &config.RepoContext{Root: root, CommonDir: commonDir}
	return &TestEnv{
		Repo:   repo,
		Paths:  config.PathsFor(repo),
		Exec:   exec,
		Engine: engine.New(repo, exec, system.DefaultFS(), &config.FileConfig{}),
	}
}

// Seed stores a record directly, bypassing create.
func (e *TestEnv) Seed(t *testing.T, name string, rec *registry.Record) {
	t.Helper()

	store := e.Engine.Store()
	reg, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}
	if rec.Env == nil {
		rec.Env = map[string]string{}
	}
	if err := reg.Add(name, rec); err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
	if err := store.Save(reg); err != nil {
		t.Fatalf("failed to save registry: %v", err)
	}
}

// Record reloads the stored record for name, or nil when untracked.
func (e *TestEnv) Record(t *testing.T, name string) *registry.Record {
	t.Helper()

	reg, err := e.Engine.Store().Load()
	if err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}
	return reg.Get(name)
}

// Worktree creates a real directory standing in for a checked-out worktree.
func (e *TestEnv) Worktree(t *testing.T, name string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create worktree dir: %v", err)
	}
	return dir
}

// NoBranches scripts show-ref so every branch lookup misses.
func (e *TestEnv) NoBranches() {
	e.Exec.AddResponse("git show-ref", system.MockResponse{ExitCode: 1})
}
