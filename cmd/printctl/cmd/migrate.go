package cmd

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/guttosm/print-quote-service/internal/repository"
)

var errMissingDSN = errors.New("no database: pass --dsn or set POSTGRES_DSN")

func newMigrateCommand() *cobra.Command {
	var dsn string

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL pricing schema",
	}
	migrateCmd.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")

	steps := []struct {
		use, short string
		run        func(context.Context, *sql.DB) error
	}{
		{"up", "Apply all pending migrations", repository.MigrateUp},
		{"down", "Roll back the latest migration", repository.MigrateDown},
		{"status", "Show the state of every migration", repository.MigrationStatus},
	}
	for _, step := range steps {
		migrateCmd.AddCommand(&cobra.Command{
			Use:   step.use,
			Short: step.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withPostgres(cmd.Context(), dsn, step.run)
			},
		})
	}

	return migrateCmd
}

func withPostgres(ctx context.Context, dsn string, fn func(context.Context, *sql.DB) error) error {
	if dsn == "" {
		return errMissingDSN
	}
	db, err := repository.OpenPostgres(ctx, dsn, repository.DefaultPostgresConfig())
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	return fn(ctx, db)
}
