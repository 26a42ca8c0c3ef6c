package cmd

import (
	"github.com/spf13/cobra"

	"github.com/paddock-dev/paddock/internal/engine"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a git worktree sandbox for an agent",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreate,
}

var (
	createAgent       string
	createBase        string
	createBranch      string
	createPath        string
	createCmdFlag     string
	createUseExisting bool
	createStart       bool
	createLaunch      string
	createAllowDirty  bool
	createSandbox     sandboxFlagSet
)

func init() {
	createCmd.Flags().StringVar(&createAgent, "agent", "codex", "Agent label (codex|claude|gemini)")
	createCmd.Flags().StringVar(&createBase, "base", "main", "Base ref for the new branch")
	createCmd.Flags().StringVar(&createBranch, "branch", "", "Branch name (default: wt/<name>)")
	createCmd.Flags().StringVar(&createPath, "path", "", "Target directory for the worktree (default: sibling <repo>-<name>)")
	createCmd.Flags().StringVar(&createCmdFlag, "cmd", "", "Command to start the agent (default: agent label)")
	createCmd.Flags().BoolVar(&createUseExisting, "use-existing-branch", false, "Attach to an existing branch instead of creating one")
	createCmd.Flags().BoolVar(&createStart, "start", false, "Start the agent immediately after creation")
	createCmd.Flags().StringVar(&createLaunch, "launch", "", "How to launch with --start: spawn, terminal, or iterm")
	createCmd.Flags().BoolVar(&createAllowDirty, "allow-dirty", false, "Permit creating from a dirty worktree")
	addSandboxFlags(createCmd, &createSandbox)
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	result, err := eng.Create(cmd.Context(), engine.CreateOptions{
		Name:              args[0],
		Agent:             createAgent,
		Base:              createBase,
		Branch:            createBranch,
		Path:              createPath,
		Cmd:               createCmdFlag,
		UseExistingBranch: createUseExisting,
		Start:             createStart,
		Launch:            createLaunch,
		AllowDirty:        createAllowDirty,
		Sandbox:           createSandbox.toEngine(),
	})
	if err != nil {
		return err
	}

	logSuccess("Sandbox %q ready at %s (branch %s)", result.Name, result.Path, result.Branch)
	if result.Run != nil && result.Run.PID != 0 {
		logInfo("Agent started (pid %d)", result.Run.PID)
	}
	return nil
}
