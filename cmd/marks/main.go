package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/marks/internal/app"
	"github.com/MrSnakeDoc/marks/internal/config"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "marks",
	Short:         "Personal bookmarking service",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, userCmd, importCmd, versionCmd)
}

// loadConfig reads the environment. config.Load panics on invalid
// settings; the CLI reports that as a plain error.
func loadConfig() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return config.Load(), nil
}

// openEnv loads the config and opens the stores. The caller must defer
// env.Close().
func openEnv(ctx context.Context) (*app.Env, logger.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	if cfg.Store == config.StoreMemory {
		log.Warn("MARKS_STORE=memory: changes made by this command are discarded on exit")
	}

	env, err := app.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing stores: %w", err)
	}
	return env, log, nil
}
