package cmd

import (
	"github.com/spf13/cobra"

	"github.com/paddock-dev/paddock/internal/engine"
)

var setCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Update tracked metadata (agent/command/path/sandbox)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSet,
}

var (
	setAgent   string
	setCmdFlag string
	setPath    string
	setSandbox sandboxFlagSet
)

func init() {
	setCmd.Flags().StringVar(&setAgent, "agent", "", "New agent label (codex|claude|gemini)")
	setCmd.Flags().StringVar(&setCmdFlag, "cmd", "", "New command to launch the agent")
	setCmd.Flags().StringVar(&setPath, "path", "", "Override path if the worktree moved")
	addSandboxFlags(setCmd, &setSandbox)
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	opts := engine.SetOptions{
		Name:    args[0],
		Agent:   setAgent,
		Path:    setPath,
		Sandbox: setSandbox.toEngine(),
	}
	if cmd.Flags().Changed("cmd") {
		opts.Cmd = &setCmdFlag
	}

	if err := eng.Set(opts); err != nil {
		return err
	}
	logSuccess("Updated %q", args[0])
	return nil
}
