package launcher

import (
	"context"
	"os"
	"sort"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/system"
)

// Strategy names accepted by New.
const (
	StrategySpawn    = "spawn"
	StrategyTerminal = "terminal"
	StrategyITerm    = "iterm"
)

// Request describes one launch: a shell command, the directory to run it
// in, and extra environment merged over the ambient process environment.
type Request struct {
	// Command is the literal shell command line to start the agent.
	Command string

	// Dir is the working directory, normally the sandbox worktree.
	Dir string

	// Env is merged over the ambient environment; overlapping keys win.
	Env map[string]string

	// ProfilePath, when set, wraps the command in sandbox-exec with the
	// given seatbelt profile.
	ProfilePath string
}

// Result reports what a launcher did. PID is zero for fire-and-forget
// strategies that hand the session to another application.
type Result struct {
	PID int
}

// Launcher dispatches a resolved command into one launch target.
type Launcher interface {
	Launch(ctx context.Context, req Request) (Result, error)
}

// New returns the launcher for a strategy name.
func New(strategy string, exec system.CommandExecutor) (Launcher, error) {
	switch strings.ToLower(strategy) {
	case "", StrategySpawn:
		return &spawnLauncher{exec: exec}, nil
	case StrategyTerminal:
		return &appLauncher{exec: exec, app: appTerminal}, nil
	case StrategyITerm:
		return &appLauncher{exec: exec, app: appITerm}, nil
	default:
		return nil, errors.UnknownLauncher(strategy)
	}
}

// mergedEnviron returns the ambient environment with extra merged on top,
// extra keys winning.
func mergedEnviron(extra map[string]string) []string {
	if len(extra) == 0 {
		return nil // inherit as-is
	}

	env := os.Environ()
	out := make([]string, 0, len(env)+len(extra))
	for _, kv := range env {
		key := kv
		if idx := strings.IndexByte(kv, '='); idx >= 0 {
			key = kv[:idx]
		}
		if _, shadowed := extra[key]; !shadowed {
			out = append(out, kv)
		}
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+extra[k])
	}
	return out
}

// envPrefix renders the extra environment as a quoted KEY=VALUE prefix for
// a shell command line, in sorted key order.
func envPrefix(env map[string]string) string {
	if len(env) == 0 {
		return ""
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		// Key and value are quoted separately so the shell still sees an
		// assignment when the value needs quoting.
		parts = append(parts, shellquote.Join(k)+"="+shellquote.Join(env[k]))
	}
	return strings.Join(parts, " ") + " "
}
