package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/storefront/cmd/do/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "do",
		Short:         "Development tools for the storefront",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(cmd.CustomerCmd())
	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.GenCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.WebhookCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
