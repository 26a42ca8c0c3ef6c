package cmd

import (
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <name> [-- <git diff args...>]",
	Short: "Show the working diff inside a sandbox",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiff,
	// Extra arguments belong to git diff, not to paddock.
	DisableFlagParsing: true,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	if args[0] == "-h" || args[0] == "--help" {
		return cmd.Help()
	}

	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	diffArgs := args[1:]
	if len(diffArgs) > 0 && diffArgs[0] == "--" {
		diffArgs = diffArgs[1:]
	}
	return eng.Diff(cmd.Context(), args[0], diffArgs)
}
