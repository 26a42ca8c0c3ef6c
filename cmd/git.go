package cmd

import (
	"github.com/spf13/cobra"
)

var gitCmd = &cobra.Command{
	Use:   "git <name> -- <args...>",
	Short: "Run git inside a tracked sandbox",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGit,
	// Everything after the name belongs to git, not to paddock.
	DisableFlagParsing: true,
}

func init() {
	rootCmd.AddCommand(gitCmd)
}

func runGit(cmd *cobra.Command, args []string) error {
	if args[0] == "-h" || args[0] == "--help" {
		return cmd.Help()
	}

	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	gitArgs := args[1:]
	if len(gitArgs) > 0 && gitArgs[0] == "--" {
		gitArgs = gitArgs[1:]
	}
	return eng.Git(cmd.Context(), args[0], gitArgs)
}
