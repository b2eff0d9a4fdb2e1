package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jannatkhandev/App-Todoist/internal/config"
	"github.com/jannatkhandev/App-Todoist/internal/repository"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the token and notification tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func runMigrate(ctx context.Context) error {
	cfg, logger, err := loadConfig(config.Config.ValidateDB)
	if err != nil {
		return err
	}

	db, err := repository.NewDB(ctx, cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("migrations applied", "driver", cfg.DB.Driver)
	return nil
}
