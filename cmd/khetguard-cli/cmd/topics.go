package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/khetguard/khetguard/internal/authview"
	"github.com/spf13/cobra"
)

var topicsFormat string

type topicInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// topicsCmd lists the auth event topics
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the auth event topics",
	Long: `List every topic the auth views publish to. The audit module subscribes to
all of them.

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var list []topicInfo
		for _, t := range authview.Topics() {
			list = append(list, topicInfo{Name: t.Name(), Description: t.Description()})
		}

		out := cmd.OutOrStdout()
		switch topicsFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		case "table":
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TOPIC\tDESCRIPTION")
			for _, t := range list {
				fmt.Fprintf(w, "%s\t%s\n", t.Name, t.Description)
			}
			return w.Flush()
		default:
			return fmt.Errorf("invalid format %q: valid formats are table, json", topicsFormat)
		}
	},
}

func init() {
	topicsCmd.Flags().StringVarP(&topicsFormat, "format", "f", "table", "output format (table, json)")
	rootCmd.AddCommand(topicsCmd)
}
