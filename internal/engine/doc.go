// Package engine implements the sandbox lifecycle: creating worktree
// sandboxes, launching agents into them, updating tracked metadata, and
// removing or pruning entries. It is the only writer of the registry and
// composes the registry store, the git facade, the status prober, and the
// launcher dispatcher. Command handlers translate flags into engine calls
// and render the results.
package engine
