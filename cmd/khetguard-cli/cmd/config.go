package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/khetguard/khetguard/internal/config"
	"github.com/spf13/cobra"
)

var envFile string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the server configuration",
}

// configCheckCmd loads configuration exactly as the server does.
var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate configuration",
	Long: `Load .env (or --env-file) and the environment, validate the result and print
a summary with secrets masked. Exits non-zero when the configuration is invalid.

Examples:
  khetguard-cli config check
  khetguard-cli config check --env-file .env.production`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
		} else {
			_ = godotenv.Load()
		}

		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}

		summary := cfg.Redacted()
		keys := make([]string, 0, len(summary))
		for k := range summary {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, k := range keys {
			fmt.Fprintf(w, "%s\t%s\n", k, summary[k])
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nConfiguration OK")
		return nil
	},
}

func init() {
	configCheckCmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load instead of .env")
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}
