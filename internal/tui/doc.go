// Package tui implements the interactive sandbox picker behind `paddock ui`.
//
// The picker lists every tracked sandbox with its live observed state and
// dispatches the selected action (run the agent, open a shell, remove the
// sandbox) back to the caller. It renders with bubbletea and the bubbles
// list component; all lifecycle work stays in the engine, the picker only
// selects.
package tui
