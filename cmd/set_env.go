package cmd

import (
	"github.com/spf13/cobra"
)

var setEnvCmd = &cobra.Command{
	Use:   "set-env <name> [KEY=VALUE ...]",
	Short: "Update per-sandbox environment variables",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSetEnv,
}

var setEnvUnset []string

func init() {
	setEnvCmd.Flags().StringArrayVar(&setEnvUnset, "unset", nil, "Key to remove (repeatable)")
	rootCmd.AddCommand(setEnvCmd)
}

func runSetEnv(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	if err := eng.SetEnv(args[0], args[1:], setEnvUnset); err != nil {
		return err
	}
	logSuccess("Updated env for %q", args[0])
	return nil
}
