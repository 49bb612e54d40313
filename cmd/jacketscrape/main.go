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

	"github.com/use-agent/jacketscrape/api"
	"github.com/use-agent/jacketscrape/config"
	"github.com/use-agent/jacketscrape/exporter"
	"github.com/use-agent/jacketscrape/scraper"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("jacketscrape starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"site", cfg.Site.Domain,
		"exportDir", cfg.Export.Dir,
	)

	// ── 3. Exporter and optional janitor ────────────────────────────
	exp := exporter.New(cfg.Export.Dir)

	var janitor *exporter.Janitor
	if cfg.Export.Retention > 0 {
		janitor = exporter.NewJanitor(exp, cfg.Export.Retention, cfg.Export.SweepInterval)
		janitor.Start()
		slog.Info("export janitor enabled",
			"retention", cfg.Export.Retention,
			"interval", cfg.Export.SweepInterval,
		)
	}
	if !cfg.Export.ConfineDownloads {
		slog.Warn("download confinement disabled: /download serves any readable path")
	}

	// ── 4. Scraper ──────────────────────────────────────────────────
	sc := scraper.New(cfg, exp)

	// ── 5. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(sc, exp, cfg, time.Now())

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

	if janitor != nil {
		janitor.Stop()
	}
	slog.Info("jacketscrape stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	slog.SetDefault(slog.New(newLogHandler(cfg, os.Stdout)))
}
