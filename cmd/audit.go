package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit [name]",
	Short: "Display the lifecycle audit trail",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAudit,
}

var auditJSON bool

func init() {
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Output events as JSON lines")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	events, err := eng.AuditEvents(name)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		if name != "" {
			fmt.Fprintf(out, "No events recorded for %q.\n", name)
		} else {
			fmt.Fprintln(out, "No events recorded.")
		}
		return nil
	}

	for _, e := range events {
		if auditJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
			if e.Details != "" {
				fmt.Fprintf(out, "[%s] %-8s %s (%s)\n", ts, e.Type, e.Sandbox, e.Details)
			} else {
				fmt.Fprintf(out, "[%s] %-8s %s\n", ts, e.Type, e.Sandbox)
			}
		}
	}

	return nil
}
