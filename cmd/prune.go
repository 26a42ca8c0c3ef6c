package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paddock-dev/paddock/internal/engine"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop registry entries whose worktree is gone",
	Args:  cobra.NoArgs,
	RunE:  runPrune,
}

var (
	pruneDeleteBranch   bool
	pruneOrphanedBranch bool
	pruneForce          bool
	pruneDryRun         bool
	pruneJSON           bool
)

func init() {
	pruneCmd.Flags().BoolVar(&pruneDeleteBranch, "delete-branch", false, "Delete branches of pruned entries")
	pruneCmd.Flags().BoolVar(&pruneOrphanedBranch, "orphaned-branch", false, "Also prune entries whose branch is missing")
	pruneCmd.Flags().BoolVar(&pruneForce, "force", false, "Keep going on branch delete failures")
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "Report candidates without changing anything")
	pruneCmd.Flags().BoolVar(&pruneJSON, "json", false, "Output JSON")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	result, err := eng.Prune(cmd.Context(), engine.PruneOptions{
		DeleteBranch:   pruneDeleteBranch,
		OrphanedBranch: pruneOrphanedBranch,
		DryRun:         pruneDryRun,
		Force:          pruneForce,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if pruneJSON {
		return writeJSON(out, result)
	}

	if len(result.Removed) == 0 {
		fmt.Fprintln(out, "No missing sandboxes to prune.")
		return nil
	}

	verb := "removed"
	if result.DryRun {
		verb = "would remove"
	}
	for _, candidate := range result.Removed {
		fmt.Fprintf(out, "[prune] %s %q (missingPath=%t, missingBranch=%t)\n",
			verb, candidate.Name, candidate.MissingPath, candidate.MissingBranch)
	}
	return nil
}
