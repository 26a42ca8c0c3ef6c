package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/paddock-dev/paddock/internal/engine"
	"github.com/paddock-dev/paddock/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Interactive sandbox picker",
	Long: `Opens an interactive TUI for browsing and acting on sandboxes.

Use arrow keys or j/k to navigate, / to filter.

Actions:
  Enter  - Launch the agent in the selected sandbox
  o      - Open a shell in the selected sandbox
  x      - Remove tracking for the selected sandbox
  q/Esc  - Quit`,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	sandboxes, err := eng.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(sandboxes) == 0 {
		logInfo("No sandboxes are tracked yet. Use `paddock create <name>` to add one.")
		return nil
	}

	// Without a terminal the picker cannot run; print the listing instead.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprint(cmd.OutOrStdout(), tui.Summary(sandboxes))
		return nil
	}

	result, err := tui.RunPicker(sandboxes)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	if result.Sandbox == nil {
		return nil
	}
	name := result.Sandbox.Name

	switch result.Action {
	case tui.ActionRun:
		res, err := eng.Run(cmd.Context(), engine.RunOptions{Name: name})
		if err != nil {
			return err
		}
		if res.PID != 0 {
			logSuccess("Launched %q (pid %d)", name, res.PID)
		} else {
			logSuccess("Launched %q via %s", name, res.Strategy)
		}

	case tui.ActionOpen:
		if err := eng.Open(cmd.Context(), name, ""); err != nil {
			return err
		}
		logSuccess("Opened a shell in %q", name)

	case tui.ActionRemove:
		res, err := eng.Remove(cmd.Context(), engine.RemoveOptions{Name: name})
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			logWarning("%s", w)
		}
		logSuccess("Removed tracking for %q", name)
	}

	return nil
}
