package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// SupportedAgents are the agent labels with built-in launch commands.
var SupportedAgents = []string{"codex", "claude", "gemini"}

// builtinCommands maps an agent label to its default launch command.
var builtinCommands = map[string]string{
	"codex":  "codex",
	"claude": "claude",
	"gemini": "gemini",
}

// sandboxNameRegex validates sandbox names.
// Names must start with a letter or digit, followed by letters, digits,
// dots, underscores, or hyphens. Maximum length is 63 characters so names
// stay usable as branch and directory components.
var sandboxNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,62}$`)

// ValidateSandboxName checks if a sandbox name is valid.
func ValidateSandboxName(name string) error {
	if name == "" {
		return fmt.Errorf("sandbox name cannot be empty")
	}

	if !sandboxNameRegex.MatchString(name) {
		return fmt.Errorf("invalid sandbox name %q: must start with a letter or digit, contain only letters, digits, dots, underscores, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

// KnownAgent reports whether label has a built-in default command.
func KnownAgent(label string) bool {
	_, ok := builtinCommands[strings.ToLower(label)]
	return ok
}

// ValidateAgent checks that an agent label is supported.
func ValidateAgent(label string) error {
	if !KnownAgent(label) {
		return fmt.Errorf("unknown agent %q (supported: %s)", label, strings.Join(SupportedAgents, ", "))
	}
	return nil
}

// RepoContext identifies the repository a paddock invocation operates on.
type RepoContext struct {
	// Root is the top-level directory of the worktree paddock was invoked
	// from.
	Root string

	// CommonDir is the shared git metadata directory. Every worktree of the
	// same repository resolves to the same common dir, which makes it the
	// natural home for state shared across sandboxes.
	CommonDir string
}

// Paths holds the paddock state locations inside the git common dir.
type Paths struct {
	StateDir     string
	RegistryFile string
	ProfilesDir  string
}

// PathsFor returns the paddock state paths for a repository.
func PathsFor(repo *RepoContext) *Paths {
	stateDir := filepath.Join(repo.CommonDir, "paddock")
	return &Paths{
		StateDir:     stateDir,
		RegistryFile: filepath.Join(stateDir, "registry.json"),
		ProfilesDir:  filepath.Join(stateDir, "profiles"),
	}
}

// DefaultWorktreePath returns the default sandbox location: a sibling of the
// repository root named <repoBase>-<name>.
func DefaultWorktreePath(repoRoot, name string) string {
	base := filepath.Base(repoRoot)
	return filepath.Join(filepath.Dir(repoRoot), base+"-"+name)
}

// FileConfig is the per-user paddock configuration, loaded from
// ~/.config/paddock/config.toml.
type FileConfig struct {
	// DefaultLaunch selects the launch strategy used when --launch is not
	// given. Empty means spawn.
	DefaultLaunch string `toml:"default_launch"`

	// Agents maps an agent label to its configuration.
	Agents map[string]AgentConfig `toml:"agents"`
}

// AgentConfig configures one agent label.
type AgentConfig struct {
	// Command overrides the built-in launch command for this label.
	Command string `toml:"command"`
}

// UserConfigPath returns the location of the per-user config file.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "paddock", "config.toml")
}

// LoadFileConfig reads the per-user config file. A missing file yields an
// empty config, not an error.
func LoadFileConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// commandEnvKey returns the environment variable that overrides the default
// command for an agent label, e.g. PADDOCK_CMD_CLAUDE.
func commandEnvKey(label string) string {
	return "PADDOCK_CMD_" + strings.ToUpper(label)
}

// DefaultAgentCommand resolves the default launch command for an agent
// label: environment override, then the config file, then the built-in.
// Unknown labels resolve to themselves so custom labels launch verbatim.
func DefaultAgentCommand(label string, cfg *FileConfig) string {
	label = strings.ToLower(label)
	if label == "" {
		return ""
	}

	if fromEnv := os.Getenv(commandEnvKey(label)); fromEnv != "" {
		return fromEnv
	}

	if cfg != nil {
		if agent, ok := cfg.Agents[label]; ok && agent.Command != "" {
			return agent.Command
		}
	}

	if builtin, ok := builtinCommands[label]; ok {
		return builtin
	}
	return label
}
