package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paddock-dev/paddock/internal/config"
	"github.com/paddock-dev/paddock/internal/engine"
	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/gitx"
	"github.com/paddock-dev/paddock/internal/system"
)

// newEngine builds the engine for the repository containing the current
// directory. Tests swap it for one wired against a mock executor.
var newEngine = defaultEngine

func defaultEngine(ctx context.Context) (*engine.Engine, error) {
	exec := system.DefaultExecutor()

	root, commonDir, err := gitx.New(exec).RepoContext(ctx, ".")
	if err != nil {
		return nil, errors.Wrap(errors.ExitGeneralError, "failed to resolve repository", err)
	}

	cfg, err := config.LoadFileConfig(config.UserConfigPath())
	if err != nil {
		return nil, errors.Wrap(errors.ExitGeneralError, "failed to load user config", err)
	}

	repo := &config.RepoContext{Root: root, CommonDir: commonDir}
	return engine.New(repo, exec, system.DefaultFS(), cfg), nil
}

// sandboxFlagSet carries the confinement flags shared by create, run, and
// set.
type sandboxFlagSet struct {
	enable       bool
	disable      bool
	profile      string
	write        []string
	denyNetwork  bool
	allowNetwork bool
}

func addSandboxFlags(cmd *cobra.Command, f *sandboxFlagSet) {
	cmd.Flags().BoolVar(&f.enable, "sandbox", false, "Confine the agent to its worktree via sandbox-exec")
	cmd.Flags().BoolVar(&f.disable, "no-sandbox", false, "Disable confinement and clear the stored policy")
	cmd.Flags().StringVar(&f.profile, "sandbox-profile", "", "Use a pre-built seatbelt profile instead of a generated one")
	cmd.Flags().StringArrayVar(&f.write, "sandbox-write", nil, "Extra path the agent may write to (repeatable)")
	cmd.Flags().BoolVar(&f.denyNetwork, "sandbox-no-network", false, "Deny network access inside the sandbox")
	cmd.Flags().BoolVar(&f.allowNetwork, "sandbox-network", false, "Allow network access inside the sandbox")
}

func (f *sandboxFlagSet) toEngine() engine.SandboxFlags {
	return engine.SandboxFlags{
		Enable:       f.enable,
		Disable:      f.disable,
		Profile:      f.profile,
		Write:        f.write,
		DenyNetwork:  f.denyNetwork,
		AllowNetwork: f.allowNetwork,
	}
}

// writeJSON renders v indented to w for the --json variants.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// renderTable writes rows as space-aligned columns under a header line.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	writeRow(headers)
	dashes := make([]string, len(headers))
	for i, width := range widths {
		dashes[i] = strings.Repeat("-", width)
	}
	writeRow(dashes)
	for _, row := range rows {
		writeRow(row)
	}
}

func formatBool(b *bool) string {
	if b == nil {
		return "-"
	}
	return strconv.FormatBool(*b)
}

func formatInt(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
