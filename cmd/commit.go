package cmd

import (
	"github.com/spf13/cobra"
)

var (
	commitMessage string
	commitAll     bool
)

var commitCmd = &cobra.Command{
	Use:   "commit <name>",
	Short: "Stage and commit all changes in a sandbox",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommit,
}

func init() {
	rootCmd.AddCommand(commitCmd)

	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "commit message")
	commitCmd.Flags().BoolVarP(&commitAll, "all", "a", false, "stage all changes including untracked files")
}

func runCommit(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	if err := eng.Commit(cmd.Context(), args[0], commitMessage, commitAll); err != nil {
		return err
	}

	logSuccess("Commit created in %q", args[0])
	return nil
}
