// Package profile generates macOS seatbelt (SBPL) profiles that confine a
// launched agent to its own worktree, and wraps launch commands in
// sandbox-exec.
package profile

import (
	"bytes"
	"fmt"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/registry"
	"github.com/paddock-dev/paddock/internal/system"
)

// escapeSBPL escapes a string for embedding in an SBPL profile literal.
func escapeSBPL(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

// Build renders the SBPL profile body for a sandbox. Writes are allowed
// under the worktree, the shared git dir, and the usual tmp locations,
// plus any extra paths from the policy.
func Build(worktreePath, commonDir string, denyNetwork bool, extraWrites []string) string {
	allowWrites := []string{
		worktreePath,
		commonDir,
		"/tmp",
		"/private/tmp",
		"/var/folders",
		"/private/var/folders",
	}
	allowWrites = append(allowWrites, extraWrites...)

	var buf bytes.Buffer
	buf.WriteString("(version 1)\n")
	buf.WriteString("(deny default)\n")
	buf.WriteString("(allow process*)\n")
	buf.WriteString("(allow mach-lookup)\n")
	buf.WriteString("(allow ipc-posix*)\n")
	buf.WriteString("(allow sysctl-read)\n")
	buf.WriteString("(allow file-read*)\n")
	if !denyNetwork {
		buf.WriteString("(allow network*)\n")
	}
	for _, path := range allowWrites {
		fmt.Fprintf(&buf, "(allow file-write* (subpath \"%s\"))\n", escapeSBPL(path))
	}
	return buf.String()
}

// Ensure materializes the profile for a sandbox and returns its path.
// Returns empty when the policy is disabled. A policy-level profile
// override is validated and returned as-is. Generated profiles live under
// profilesDir keyed by sandbox name and are rewritten only when the body
// changed.
func Ensure(fs system.FileSystem, exec system.CommandExecutor, profilesDir, name, worktreePath, commonDir string, policy *registry.SandboxPolicy) (string, error) {
	if policy == nil || !policy.Enabled {
		return "", nil
	}

	if _, err := exec.LookPath("sandbox-exec"); err != nil {
		return "", errors.LauncherUnavailable("sandbox-exec", err)
	}

	if policy.Profile != "" {
		if !fs.Exists(policy.Profile) {
			return "", errors.ValidationError(fmt.Sprintf("sandbox profile does not exist: %s", policy.Profile))
		}
		return policy.Profile, nil
	}

	// name is user-supplied; keep the generated file inside profilesDir.
	profilePath, err := securejoin.SecureJoin(profilesDir, name+".sb")
	if err != nil {
		return "", errors.ValidationError(fmt.Sprintf("invalid profile path for %q: %v", name, err))
	}

	body := Build(worktreePath, commonDir, policy.DenyNetwork, policy.Write)
	if existing, err := fs.ReadFile(profilePath); err == nil && string(existing) == body {
		return profilePath, nil
	}

	if err := fs.MkdirAll(profilesDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create profiles dir: %w", err)
	}
	if err := fs.WriteFile(profilePath, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("failed to write sandbox profile: %w", err)
	}
	return profilePath, nil
}

// Wrap returns command executed under sandbox-exec with the given profile.
func Wrap(command, profilePath string) string {
	return fmt.Sprintf("sandbox-exec -f %s /bin/sh -c %s",
		shellquote.Join(profilePath), shellquote.Join(command))
}
