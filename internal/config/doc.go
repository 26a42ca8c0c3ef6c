// Package config holds paddock's configuration surface: sandbox name
// validation, repository-relative state paths, and default agent command
// resolution.
//
// # State layout
//
// All per-repository state lives under the git common dir, shared by every
// worktree of the repository:
//
//	<common-dir>/paddock/registry.json   tracked sandbox registry
//	<common-dir>/paddock/registry.json.lock
//	<common-dir>/paddock/profiles/       generated seatbelt profiles
//	<common-dir>/paddock/audit.log       lifecycle event log
//
// # Default command resolution
//
// The launch command for an agent label resolves in this order:
//
//  1. PADDOCK_CMD_<LABEL> environment variable
//  2. [agents.<label>] command in ~/.config/paddock/config.toml
//  3. built-in default (codex, claude, gemini)
//
// Explicit --cmd flags and per-record stored commands are resolved above
// this chain by the lifecycle engine.
package config
