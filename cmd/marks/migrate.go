package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/marks/internal/config"
	"github.com/MrSnakeDoc/marks/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the PostgreSQL schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, err := databaseURL()
		if err != nil {
			return err
		}
		if err := migrate.Up(cmd.Context(), dsn); err != nil {
			return err
		}
		cmd.Println("migrations applied")
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, err := databaseURL()
		if err != nil {
			return err
		}
		return migrate.Status(cmd.Context(), dsn)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
}

func databaseURL() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Store != config.StorePostgres {
		return "", errors.New("migrations only apply to MARKS_STORE=postgres")
	}
	return cfg.DatabaseURL, nil
}
