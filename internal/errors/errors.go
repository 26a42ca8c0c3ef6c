package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for paddock
const (
	ExitSuccess             = 0
	ExitGeneralError        = 1
	ExitNotTracked          = 2
	ExitNameConflict        = 3
	ExitBranchNotFound      = 4
	ExitDirtyTree           = 5
	ExitPathMissing         = 6
	ExitLauncherUnknown     = 7
	ExitLauncherUnavailable = 8
	ExitRegistryCorrupt     = 9
	ExitRegistryIO          = 10
	ExitGitCommand          = 11
)

// PaddockError is the base error type for paddock
type PaddockError struct {
	Code    int
	Message string
	Cause   error
}

func (e *PaddockError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PaddockError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *PaddockError) ExitCode() int {
	return e.Code
}

// New creates a new PaddockError
func New(code int, message string) *PaddockError {
	return &PaddockError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PaddockError
func Wrap(code int, message string, cause error) *PaddockError {
	return &PaddockError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// NameConflict returns an error for a sandbox name that is already tracked
func NameConflict(name string) *PaddockError {
	return New(ExitNameConflict, fmt.Sprintf("sandbox %q is already tracked", name))
}

// NotTracked returns an error for an unknown sandbox name
func NotTracked(name string) *PaddockError {
	return New(ExitNotTracked, fmt.Sprintf("sandbox %q is not tracked; run `paddock create %s` first", name, name))
}

// BranchNotFound returns an error for a branch that does not exist
func BranchNotFound(branch string) *PaddockError {
	return New(ExitBranchNotFound, fmt.Sprintf("branch %q does not exist; point --branch at an existing branch or drop --use-existing-branch", branch))
}

// DirtyTree returns an error for the dirty-tree launch guard
func DirtyTree(dir string) *PaddockError {
	return New(ExitDirtyTree, fmt.Sprintf("worktree %s has uncommitted changes; commit/stash or re-run with --allow-dirty", dir))
}

// PathMissing returns an error for a tracked worktree whose path is gone
func PathMissing(name, path string) *PaddockError {
	return New(ExitPathMissing, fmt.Sprintf("worktree path for %q does not exist: %s (run `paddock prune` to drop stale entries)", name, path))
}

// UnknownLauncher returns an error for an unrecognized launch strategy
func UnknownLauncher(strategy string) *PaddockError {
	return New(ExitLauncherUnknown, fmt.Sprintf("unsupported launch target %q: use spawn, terminal, or iterm", strategy))
}

// LauncherUnavailable returns an error when the launch target cannot be driven on this host
func LauncherUnavailable(target string, cause error) *PaddockError {
	return Wrap(ExitLauncherUnavailable, fmt.Sprintf("launcher %s is not available on this host", target), cause)
}

// RegistryCorrupt returns an error for an unparseable registry file
func RegistryCorrupt(path string, cause error) *PaddockError {
	return Wrap(ExitRegistryCorrupt, fmt.Sprintf("registry file %s is corrupt", path), cause)
}

// RegistryIO returns an error for registry filesystem failures
func RegistryIO(op string, cause error) *PaddockError {
	return Wrap(ExitRegistryIO, fmt.Sprintf("registry %s failed", op), cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *PaddockError {
	return New(ExitGeneralError, message)
}

// GitCommandError reports a git invocation that exited non-zero and
// blocked the requested operation.
type GitCommandError struct {
	Args        []string
	GitExitCode int
	Stderr      string
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git %s exited with %d", strings.Join(e.Args, " "), e.GitExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// ExitCode returns the exit code for this error
func (e *GitCommandError) ExitCode() int {
	return ExitGitCommand
}

// GitCommandFailed wraps a non-zero git exit as a fatal error
func GitCommandFailed(args []string, exitCode int, stderr string) *GitCommandError {
	return &GitCommandError{Args: args, GitExitCode: exitCode, Stderr: stderr}
}

// coder is implemented by errors that carry a process exit code.
type coder interface {
	ExitCode() int
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var c coder
	if errors.As(err, &c) {
		return c.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
