package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/fundledger/internal/app"
	"github.com/iho/fundledger/internal/infrastructure/config"
	"github.com/iho/fundledger/internal/infrastructure/logger"
	"github.com/iho/fundledger/internal/infrastructure/postgres"
)

// Admin commands act on the store directly, configured like the server.

func loadAdminConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load configuration: %w", err)
	}
	log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: "console"}, cmd.ErrOrStderr())
	return cfg, log, nil
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the postgres schema (DATABASE_URL)",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadAdminConfig(cmd)
			if err != nil {
				return err
			}
			return postgres.RunMigrations(cfg.DatabaseURL, log)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadAdminConfig(cmd)
			if err != nil {
				return err
			}
			return postgres.RunMigrationsDown(cfg.DatabaseURL, log)
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd)
	return migrateCmd
}

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload a ledger snapshot to S3 (S3_BUCKET)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadAdminConfig(cmd)
			if err != nil {
				return err
			}

			ledger, err := app.New(cmd.Context(), cfg, log, nil)
			if err != nil {
				return err
			}
			defer ledger.Close()

			key, err := ledger.Facade.Backups.Backup(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
