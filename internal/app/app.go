package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/marks/internal/config"
	"github.com/MrSnakeDoc/marks/internal/httpserver"
	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/version"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	env    *Env
	server *httpserver.Server
}

// New wires the stores, services and HTTP server for "marks serve".
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	if err := cfg.ValidateServe(); err != nil {
		return nil, err
	}

	env, err := Open(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		Auth:         env.Auth,
		Bookmarks:    env.Bookmarks,
		Collections:  env.Collections,
		StoreName:    env.StoreName,
		Store:        env.Health,
		AuthRate:     cfg.AuthRate,
		AuthBurst:    cfg.AuthBurst,
		CORSOrigins:  cfg.CORSOrigin,
	}
	if env.Cache != nil {
		d.Cache = env.Cache
	}

	return &App{
		cfg:    cfg,
		logger: loggerClient,
		env:    env,
		server: httpserver.New(cfg, loggerClient, d),
	}, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	defer a.env.Close()

	a.logger.Infof("🚀 Starting marks v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("marks %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ marks stopped cleanly")
	return nil
}
