// Package launcher dispatches a resolved agent command into one of several
// process-launch targets behind a single Launch capability:
//
//   - spawn: detached child process of this invocation
//   - terminal: new macOS Terminal tab driven through osascript
//   - iterm: new iTerm2 tab driven through its AppleScript interface
//
// Terminal-based strategies are fire-and-forget; paddock does not track or
// cancel the spawned session. Adding another launch target means adding
// one more Launcher implementation to New.
package launcher
