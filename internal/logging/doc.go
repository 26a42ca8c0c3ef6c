// Package logging provides logging utilities for paddock.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating worktree", "name", name, "branch", branch)
//	logging.Warn("audit write failed", "path", path, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Creating git worktree at %s...", path)
//	logging.UserSuccess("Worktree %q ready at %s", name, path)
//	logging.UserWarning("Branch %s missing; skipping branch deletion", branch)
//	logging.UserError("Failed to launch %s session", app)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
