package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"despesabot/internal/bot"
	"despesabot/internal/chat"
	"despesabot/internal/classify"
	"despesabot/internal/config"
	"despesabot/internal/interpret"
	"despesabot/internal/records"
	"despesabot/internal/report"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting despesabot")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := records.Open(ctx, records.Config{
		Backend:                  cfg.DataBackend,
		SQLiteDBPath:             cfg.SQLiteDBPath,
		FirestoreProjectID:       cfg.FirestoreProjectID,
		FirestoreCredentialsFile: cfg.FirestoreCredentialsFile,
		FirestoreCollection:      cfg.FirestoreCollection,
	})
	if err != nil {
		logger.Error("Failed to open record store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer closeStore()

	classifier := classify.NewClient(classify.Config{
		URL:     cfg.ClassifierURL,
		Token:   cfg.ClassifierToken,
		Timeout: cfg.ClassifierTimeout,
	})

	bridge := chat.NewClient(chat.Config{
		URL:          cfg.AMQPURL,
		Exchange:     cfg.AMQPExchange,
		InboundQueue: cfg.AMQPInboundQueue,
		OutboundKey:  cfg.AMQPOutboundKey,
		MinBackoff:   cfg.ReconnectMinBackoff,
		MaxBackoff:   cfg.ReconnectMaxBackoff,
	})
	defer bridge.Close()

	b := bot.New(interpret.NewInterpreter(classifier), bot.NewRouter(store), bridge)

	srv := report.NewServer(":"+cfg.Port, store, cfg.ChartCacheTTL)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bridge.Run(gctx, b.HandleMessage)
	})

	g.Go(func() error {
		logger.Info("Starting chart server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		return gctx.Err()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Despesabot stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Despesabot stopped gracefully")
}
