// Package main is the entry point for the Luach API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zapponejosh/luach-api/internal/api"
	"github.com/zapponejosh/luach-api/internal/config"
	"github.com/zapponejosh/luach-api/internal/database"
	"github.com/zapponejosh/luach-api/internal/logger"
	"github.com/zapponejosh/luach-api/internal/luach"
	"github.com/zapponejosh/luach-api/internal/scheduler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	log.Info("starting luach API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
		slog.Bool("in_israel", cfg.InIsrael),
		slog.String("mode", cfg.CalendarMode.String()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	svc := luach.NewService(db, luach.Flags{
		InIsrael: cfg.InIsrael,
		Modern:   cfg.ModernHolidays,
		Mode:     cfg.CalendarMode,
	})

	// Background cache warm-up
	sched := scheduler.New(5 * time.Minute)
	if cfg.CacheWarmSchedule != "" {
		warm := scheduler.NewWarmJob(svc)
		if err := sched.AddJob(cfg.CacheWarmSchedule, warm); err != nil {
			return fmt.Errorf("schedule cache warm-up: %w", err)
		}
		go func() {
			if err := sched.RunNow(warm); err != nil {
				log.Warn("initial cache warm-up failed", slog.Any("error", err))
			}
		}()
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	handlers, err := api.NewHandlers(db, svc, cfg, log)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.SetupRoutes(handlers, cfg, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("luach API ready", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
