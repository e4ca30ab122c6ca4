package cmd

import (
	"github.com/corray333/backend-labs/storefront/internal/app"
	"github.com/corray333/backend-labs/storefront/internal/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.MustLoad()

	return app.MustNewApp(cfg).Run(cmd.Context())
}
