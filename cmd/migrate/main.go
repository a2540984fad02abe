package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/stoicaandrei/monney2/internal/config"
	"github.com/stoicaandrei/monney2/internal/database"
	"github.com/stoicaandrei/monney2/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var source string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the postgres schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&source, "source", database.MigrationsSource, "migrations source URL")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return withMigrate(source, func(m *migrate.Migrate) error {
					if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
						return fmt.Errorf("migration up failed: %w", err)
					}
					logger.Get().Info("Migrations applied successfully")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down [N]",
			Short: "Roll back the last N migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("invalid step count %q", args[0])
					}
					steps = n
				}
				return withMigrate(source, func(m *migrate.Migrate) error {
					if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
						return fmt.Errorf("migration down failed: %w", err)
					}
					logger.Get().Infof("Rolled back %d migration(s)", steps)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return withMigrate(source, func(m *migrate.Migrate) error {
					version, dirty, err := m.Version()
					if err != nil {
						return fmt.Errorf("failed to get version: %w", err)
					}
					logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
					return nil
				})
			},
		},
	)

	return root
}

// withMigrate opens a migrate instance against the configured database,
// runs fn and closes it.
func withMigrate(source string, fn func(m *migrate.Migrate) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbConfig := database.NewConfig(cfg)
	if dbConfig.Driver == database.DriverSQLite {
		return fmt.Errorf("sqlite databases are migrated by the server on startup")
	}

	m, err := migrate.New(source, dbConfig.MigrateURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	return fn(m)
}
