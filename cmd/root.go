package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/paddock-dev/paddock/internal/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "paddock",
	Short: "Git worktree sandboxes for AI coding agents",
	Long: `paddock maps each git worktree to an isolated, named sandbox in which
an AI coding agent runs. Multiple agents work on one repository in
parallel without colliding on files, branches, or shell state.

Sandbox state is tracked in a registry shared by all worktrees of the
repository, stored under the git common dir.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, false, os.Stderr)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
