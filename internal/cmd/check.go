package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/config"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkTimeout time.Duration

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the database is reachable and the schema is in place",
	Long: `Open one connection with the configured DATABASE_URI and verify that
every table the service uses exists. Exits non-zero if any is missing.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 10*time.Second, "Time allowed for the whole check")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnvFile("./.env"); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(viper.New())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	config.SetupLogger(cfg.Log)

	client, err := postgres.NewClientFromConfig(cfg.Postgres)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
	defer cancel()

	return checkSchema(ctx, client, cmd.OutOrStdout())
}

func checkSchema(ctx context.Context, client *postgres.Client, out io.Writer) error {
	var missing []string
	err := client.WithConn(ctx, func(ctx context.Context, conn postgres.Conn) error {
		var err error
		missing, err = postgres.MissingTables(ctx, conn, postgres.SchemaTables...)

		return err
	})
	if err != nil {
		return err
	}

	absent := make(map[string]bool, len(missing))
	for _, name := range missing {
		absent[name] = true
	}

	for _, name := range postgres.SchemaTables {
		status := "ok"
		if absent[name] {
			status = "missing"
		}
		fmt.Fprintf(out, "%-12s %s\n", name, status)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%d of %d tables missing: %v", len(missing), len(postgres.SchemaTables), missing)
	}

	return nil
}
