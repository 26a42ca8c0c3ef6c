package launcher

import (
	"context"
	"fmt"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/logging"
	"github.com/paddock-dev/paddock/internal/profile"
	"github.com/paddock-dev/paddock/internal/system"
)

type macApp string

const (
	appTerminal macApp = "terminal"
	appITerm    macApp = "iterm"
)

// appLauncher opens a new tab in a macOS terminal application via
// osascript and runs the command there. Fire-and-forget: the session is
// not tracked afterward.
type appLauncher struct {
	exec system.CommandExecutor
	app  macApp
}

// escapeAppleScript escapes a shell command for embedding in an
// AppleScript string literal.
func escapeAppleScript(cmd string) string {
	cmd = strings.ReplaceAll(cmd, `\`, `\\`)
	return strings.ReplaceAll(cmd, `"`, `\"`)
}

// shellLine builds the command the new tab executes: change into the
// worktree, export the extra environment, run the agent.
func (l *appLauncher) shellLine(req Request) string {
	line := fmt.Sprintf("cd %s && %s%s", shellquote.Join(req.Dir), envPrefix(req.Env), req.Command)
	if req.ProfilePath != "" {
		line = profile.Wrap(line, req.ProfilePath)
	}
	return line
}

func (l *appLauncher) script(shellCmd string) string {
	quoted := escapeAppleScript(shellCmd)
	if l.app == appTerminal {
		return fmt.Sprintf("tell application \"Terminal\"\nactivate\ndo script \"%s\"\nend tell", quoted)
	}
	return fmt.Sprintf("tell application \"iTerm2\"\nactivate\ntell current window\ncreate tab with default profile\ntell current session to write text \"%s\"\nend tell\nend tell", quoted)
}

func (l *appLauncher) Launch(ctx context.Context, req Request) (Result, error) {
	if _, err := l.exec.LookPath("osascript"); err != nil {
		return Result{}, errors.LauncherUnavailable(string(l.app), err)
	}

	script := l.script(l.shellLine(req))
	logging.Debug("launching via osascript", "app", string(l.app), "dir", req.Dir)

	res, err := l.exec.Run(ctx, "", nil, "osascript", "-e", script)
	if err != nil {
		return Result{}, errors.LauncherUnavailable(string(l.app), err)
	}
	if res.ExitCode != 0 {
		return Result{}, errors.LauncherUnavailable(string(l.app),
			fmt.Errorf("osascript exited with %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr))))
	}
	return Result{}, nil
}
