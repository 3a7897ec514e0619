package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "khetguard-cli",
	Short: "KhetGuard CLI tool",
	Long: `khetguard-cli inspects a KhetGuard deployment without starting the server.

Available commands:
  config check   Load and validate configuration, print a redacted summary
  topics         List the auth event topics published by the server
  version        Print the CLI version

Use "khetguard-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
