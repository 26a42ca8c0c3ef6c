package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paddock-dev/paddock/internal/engine"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked sandboxes with live status",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	infos, err := eng.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		return writeJSON(out, map[string][]engine.SandboxInfo{"sandboxes": infos})
	}

	if len(infos) == 0 {
		fmt.Fprintln(out, "No sandboxes are tracked yet. Use `paddock create <name>` to add one.")
		return nil
	}

	headers := []string{"name", "branch", "agent", "status", "dirty", "ahead", "behind", "path"}
	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{
			info.Name,
			info.Branch,
			info.Agent,
			info.Status,
			formatBool(info.Dirty),
			formatInt(info.Ahead),
			formatInt(info.Behind),
			info.Path,
		}
	}
	renderTable(out, headers, rows)
	return nil
}
