// Package registry persists the mapping of sandbox name to tracked
// worktree record as a single JSON document under the repository's shared
// git metadata directory.
//
// # Document shape
//
//	{
//	  "version": 1,
//	  "sandboxes": {
//	    "feat-a": {
//	      "path": "/work/repo-feat-a",
//	      "branch": "wt/feat-a",
//	      "base": "main",
//	      "agent": "claude",
//	      "command": "claude",
//	      "env": {},
//	      "createdAt": "2026-08-26T12:00:00Z"
//	    }
//	  }
//	}
//
// Unknown fields at both document and record level are preserved across a
// load/save cycle, so documents written by newer paddock versions survive
// older ones.
//
// # Concurrency
//
// The store publishes new documents by atomic rename and serializes
// read-modify-write windows behind an advisory file lock (flock on a
// sibling .lock file). Plain reads need no lock: the rename guarantees a
// reader always sees a complete document.
package registry
