package cmd

import (
	"github.com/spf13/cobra"

	"github.com/paddock-dev/paddock/internal/engine"
)

var runCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Start the agent inside its sandbox",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

var (
	runAgent      string
	runCmdFlag    string
	runLaunch     string
	runAllowDirty bool
	runSandbox    sandboxFlagSet
)

func init() {
	runCmd.Flags().StringVar(&runAgent, "agent", "", "Agent label override (codex|claude|gemini)")
	runCmd.Flags().StringVar(&runCmdFlag, "cmd", "", "Command to start the agent")
	runCmd.Flags().StringVar(&runLaunch, "launch", "", "Launch via spawn, terminal, or iterm")
	runCmd.Flags().BoolVar(&runAllowDirty, "allow-dirty", false, "Permit launching into a dirty worktree")
	addSandboxFlags(runCmd, &runSandbox)
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	result, err := eng.Run(cmd.Context(), engine.RunOptions{
		Name:       args[0],
		Agent:      runAgent,
		Cmd:        runCmdFlag,
		Launch:     runLaunch,
		AllowDirty: runAllowDirty,
		Sandbox:    runSandbox.toEngine(),
	})
	if err != nil {
		return err
	}

	if result.PID != 0 {
		logSuccess("Started %q in %s (pid %d)", result.Command, result.Dir, result.PID)
	} else {
		logSuccess("Started %q in %s via %s", result.Command, result.Dir, result.Strategy)
	}
	return nil
}
