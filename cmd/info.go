package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show one tracked sandbox",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var infoJSON bool

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output JSON")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	info, err := eng.Info(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if infoJSON {
		return writeJSON(out, info)
	}

	command := info.Command
	if command == "" {
		command = "(not set)"
	}
	createdAt := info.CreatedAt
	if createdAt == "" {
		createdAt = "(unknown)"
	}

	fmt.Fprintf(out, "name:    %s\n", info.Name)
	fmt.Fprintf(out, "agent:   %s\n", info.Agent)
	fmt.Fprintf(out, "branch:  %s\n", info.Branch)
	fmt.Fprintf(out, "base:    %s\n", info.Base)
	fmt.Fprintf(out, "path:    %s\n", info.Path)
	fmt.Fprintf(out, "status:  %s\n", info.Status)
	fmt.Fprintf(out, "dirty:   %s\n", formatBool(info.Dirty))
	fmt.Fprintf(out, "ahead:   %s, behind: %s, upstream: %s\n",
		formatInt(info.Ahead), formatInt(info.Behind), info.Upstream)
	fmt.Fprintf(out, "command: %s\n", command)
	if len(info.Env) > 0 {
		fmt.Fprintf(out, "env:     %d variable(s)\n", len(info.Env))
	}
	if info.Sandbox != nil && info.Sandbox.Enabled {
		network := "allowed"
		if info.Sandbox.DenyNetwork {
			network = "denied"
		}
		fmt.Fprintf(out, "sandbox: enabled (network %s)\n", network)
	}
	fmt.Fprintf(out, "created: %s\n", createdAt)
	return nil
}
