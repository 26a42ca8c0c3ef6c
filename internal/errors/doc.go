// Package errors provides typed errors with exit codes for paddock.
//
// # Error Types
//
// PaddockError is the base error type that wraps an error with an exit code:
//
//	type PaddockError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// GitCommandError is a separate type for git invocations that exited
// non-zero, carrying the git exit code and captured stderr.
//
// # Exit Codes
//
// Defined exit codes for different failure categories:
//
//	ExitSuccess             = 0   // Success
//	ExitGeneralError        = 1   // General/unknown errors
//	ExitNotTracked          = 2   // Sandbox not in the registry
//	ExitNameConflict        = 3   // Sandbox name already tracked
//	ExitBranchNotFound      = 4   // Branch does not exist
//	ExitDirtyTree           = 5   // Dirty-tree launch guard tripped
//	ExitPathMissing         = 6   // Tracked worktree path is gone
//	ExitLauncherUnknown     = 7   // Unrecognized launch strategy
//	ExitLauncherUnavailable = 8   // Launch target not driveable on host
//	ExitRegistryCorrupt     = 9   // Registry file unparseable
//	ExitRegistryIO          = 10  // Registry filesystem failure
//	ExitGitCommand          = 11  // git exited non-zero
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.NameConflict("feat-a")
//	errors.PathMissing("feat-a", "/work/repo-feat-a")
//	errors.GitCommandFailed(args, 128, stderr)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
