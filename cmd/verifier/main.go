// Command verifier consumes station pair messages from Kafka, verifies each
// model series against its observations and publishes the results.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/storm-surge-verify/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/storm-surge-verify/internal/adapter/kafka"
	"github.com/couchcryptid/storm-surge-verify/internal/config"
	"github.com/couchcryptid/storm-surge-verify/internal/observability"
	"github.com/couchcryptid/storm-surge-verify/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	opts, err := cfg.Verification.Options()
	if err != nil {
		logger.Error("invalid verification options", "error", err)
		os.Exit(1)
	}
	logger.Info("verification configured",
		"step_minutes", opts.StepMinutes,
		"extent", opts.Extent.String(),
		"publication_delay", opts.PublicationDelay,
		"concurrency", cfg.Verification.Concurrency,
	)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(opts, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize,
		pipeline.WithConcurrency(cfg.Verification.Concurrency))

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, opts.PublicationDelay, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start verification pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
