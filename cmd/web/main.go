package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/INTeniola/monie-hackathon/internal/clients/insights"
	"github.com/INTeniola/monie-hackathon/internal/config"
	"github.com/INTeniola/monie-hackathon/internal/middleware"
	"github.com/INTeniola/monie-hackathon/internal/observability"
	"github.com/INTeniola/monie-hackathon/internal/server"
	"github.com/INTeniola/monie-hackathon/internal/services"
	"github.com/INTeniola/monie-hackathon/internal/ui/templates"
)

const (
	renderTimeout  = 10 * time.Second
	preloadTimeout = 30 * time.Second
	cacheMaxAge    = "public, max-age=300"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheMaxAge)
	if err := templates.Dashboard().Render(ctx, w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"config", cfg,
	)

	analytics := services.NewAnalytics()

	if cfg.Data.Dir != "" {
		ctx, cancel := context.WithTimeout(context.Background(), preloadTimeout)
		if err := analytics.LoadFromDir(ctx, cfg.Data.Dir); err != nil {
			logger.Error("failed to preload transaction files", "dir", cfg.Data.Dir, "error", err)
			cancel()
			os.Exit(1)
		}
		cancel()
	}

	insightsClient := insights.NewClient(cfg.Insights)

	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}

	srv := server.NewServer(analytics, insightsClient, cfg.Upload, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
		middleware.Compress(logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down analytics service")
		return nil
	})

	logger.Info("starting graceful server")
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
