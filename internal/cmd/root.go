package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - customers, products and orders over HTTP",
	Long: `Storefront serves a JSON API over an existing PostgreSQL schema
of customers, suppliers, products and orders.

Without a subcommand it starts the HTTP server, same as "storefront serve".`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
