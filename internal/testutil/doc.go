// Package testutil provides the shared test harness: a temp repository
// layout with a registry store, a scripted command executor, and an engine
// wired against both, so command and TUI tests never fork git or osascript.
package testutil
