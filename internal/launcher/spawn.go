package launcher

import (
	"context"

	"github.com/paddock-dev/paddock/internal/logging"
	"github.com/paddock-dev/paddock/internal/profile"
	"github.com/paddock-dev/paddock/internal/system"
)

// spawnLauncher starts the agent as a detached child of this process.
type spawnLauncher struct {
	exec system.CommandExecutor
}

func (l *spawnLauncher) Launch(ctx context.Context, req Request) (Result, error) {
	command := req.Command
	if req.ProfilePath != "" {
		command = profile.Wrap(command, req.ProfilePath)
	}

	pid, err := l.exec.Start(req.Dir, mergedEnviron(req.Env), "/bin/sh", "-c", command)
	if err != nil {
		return Result{}, err
	}

	logging.Debug("spawned agent", "pid", pid, "dir", req.Dir, "command", command)
	return Result{PID: pid}, nil
}
