package cmd

import (
	"github.com/spf13/cobra"

	"github.com/paddock-dev/paddock/internal/engine"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Untrack a sandbox (optionally delete its path and branch)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var (
	removeDeletePath   bool
	removeDeleteBranch bool
	removePurge        bool
	removeForce        bool
)

func init() {
	removeCmd.Flags().BoolVar(&removeDeletePath, "delete-path", false, "Delete the worktree path via git worktree remove")
	removeCmd.Flags().BoolVar(&removeDeleteBranch, "delete-branch", false, "Delete the sandbox branch")
	removeCmd.Flags().BoolVar(&removePurge, "purge", false, "Delete both path and branch (shorthand)")
	removeCmd.Flags().BoolVar(&removeForce, "force", false, "Drop the tracking entry even when git operations fail")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	result, err := eng.Remove(cmd.Context(), engine.RemoveOptions{
		Name:         args[0],
		DeletePath:   removeDeletePath,
		DeleteBranch: removeDeleteBranch,
		Purge:        removePurge,
		Force:        removeForce,
	})
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		logWarning("%s", warning)
	}
	logSuccess("Removed tracking for %q", result.Name)
	return nil
}
