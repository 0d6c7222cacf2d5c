package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/marks/internal/app"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logger.New(cfg.LogLevel, cfg.PrettyLog)

		a, err := app.New(cmd.Context(), cfg, log)
		if err != nil {
			log.Error("❌ marks failed to start", logger.Error(err))
			return err
		}
		return a.Run()
	},
}
