package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/folio/api"
	"github.com/use-agent/folio/config"
	"github.com/use-agent/folio/controller"
	"github.com/use-agent/folio/extractor"
	"github.com/use-agent/folio/metrics"
	"github.com/use-agent/folio/session"
	"github.com/use-agent/folio/webhook"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("folio starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"extractor", cfg.Extractor.BaseURL,
	)

	// ── 3. Extraction client and observers ──────────────────────────
	client := extractor.NewClient(cfg.Extractor.BaseURL, nil)
	m := metrics.New()

	opts := []controller.Option{
		controller.WithTimeout(cfg.Extractor.Timeout),
		controller.WithObserver(m.Observer()),
	}
	if cfg.Webhook.URL != "" {
		opts = append(opts, controller.WithObserver(webhook.NewNotifier(cfg.Webhook.URL, cfg.Webhook.Secret).Observer()))
		slog.Info("webhook notifications enabled", "url", cfg.Webhook.URL)
	}

	// ── 4. Session store ────────────────────────────────────────────
	store := session.New(cfg.Session.MaxSessions, cfg.Session.TTL, cfg.Session.Sweep, func() *controller.Controller {
		return controller.New(client, opts...)
	})
	defer store.Close()

	// ── 5. Setup router ─────────────────────────────────────────────
	bg, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	router, err := api.NewRouter(bg, cfg, store, m, time.Now())
	if err != nil {
		slog.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("folio stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
