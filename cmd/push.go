package cmd

import (
	"github.com/spf13/cobra"
)

var (
	pushRemote string
	pushBranch string
)

var pushCmd = &cobra.Command{
	Use:   "push <name>",
	Short: "Push a sandbox branch to its remote",
	Args:  cobra.ExactArgs(1),
	RunE:  runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)

	pushCmd.Flags().StringVar(&pushRemote, "remote", "", "remote to push to (default origin)")
	pushCmd.Flags().StringVar(&pushBranch, "branch", "", "branch to push (default the sandbox branch)")
}

func runPush(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	if err := eng.Push(cmd.Context(), args[0], pushRemote, pushBranch); err != nil {
		return err
	}

	logSuccess("Pushed %q", args[0])
	return nil
}
