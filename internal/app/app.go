package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/PolusVault/chess/internal/config"
	"github.com/PolusVault/chess/internal/core"
	"github.com/PolusVault/chess/internal/limiter"
	transporthttp "github.com/PolusVault/chess/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	hub := core.NewHub(cfg.MaxClients, cfg.MaxRoomsPerClient, logger)
	conns := limiter.NewConnLimiter(cfg.MaxConnsPerAddr, cfg.MaxTrackedAddrs, cfg.MaxBannedAddrs)
	rates := limiter.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	server := transporthttp.NewServer(hub, conns, rates, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
