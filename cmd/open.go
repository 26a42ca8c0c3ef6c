package cmd

import (
	"github.com/spf13/cobra"
)

var openLaunch string

var openCmd = &cobra.Command{
	Use:   "open <name>",
	Short: "Open an interactive shell in a sandbox worktree",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().StringVar(&openLaunch, "launch", "", "launch strategy: terminal or iterm (default terminal)")
}

func runOpen(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	if err := eng.Open(cmd.Context(), args[0], openLaunch); err != nil {
		return err
	}

	logSuccess("Opened a shell in %q", args[0])
	return nil
}
