package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"sample-dashboard/internal/config"
	"sample-dashboard/internal/handlers"
	"sample-dashboard/internal/middleware"
	"sample-dashboard/internal/observability"
	"sample-dashboard/internal/server"
	"sample-dashboard/internal/services"
)

// newHandler assembles the routes behind the middleware chain.
func newHandler(cfg *config.Config, dashboard *services.Dashboard, collector *observability.Collector, logger *slog.Logger) http.Handler {
	srv := server.NewServer(dashboard, collector, logger, cfg.Dashboard)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	return middlewareChain(srv)
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", handlers.Version,
		"addr", cfg.Address(),
		"response_delay", cfg.Dashboard.ResponseDelay,
		"live_interval", cfg.Dashboard.LiveInterval,
	)

	dashboard := services.NewDashboard(services.SystemClock)
	collector := observability.NewCollector()

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, dashboard, collector, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server.ShutdownTimeout)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("dashboard stats at shutdown", "stats", dashboard.Stats())
		return nil
	})

	if err := gracefulServer.ListenAndServe(context.Background()); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
