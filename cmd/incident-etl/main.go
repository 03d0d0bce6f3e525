package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/incident-data-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/incident-data-etl/internal/adapter/kafka"
	"github.com/couchcryptid/incident-data-etl/internal/adapter/sheet"
	"github.com/couchcryptid/incident-data-etl/internal/config"
	"github.com/couchcryptid/incident-data-etl/internal/domain"
	"github.com/couchcryptid/incident-data-etl/internal/gazetteer"
	"github.com/couchcryptid/incident-data-etl/internal/observability"
	"github.com/couchcryptid/incident-data-etl/internal/pipeline"
	"github.com/couchcryptid/incident-data-etl/internal/stationcache"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	g := gazetteer.Default()
	if cfg.GazetteerFile != "" {
		g, err = gazetteer.LoadFile(cfg.GazetteerFile)
		if err != nil {
			logger.Error("failed to load gazetteer", "path", cfg.GazetteerFile, "error", err)
			os.Exit(1)
		}
	}
	logger.Info("gazetteer loaded", "stations", len(g.Stations()), "aliases", len(g.Aliases()), "categories", len(g.Categories()))

	resolver := stationcache.New(domain.NewResolver(g), cfg.ResolverCacheSize, metrics)
	normalizer := domain.NewNormalizer(g, resolver)

	if cfg.SourceURL == "" {
		logger.Warn("SOURCE_CSV_URL not set, refreshes will fail until it is configured")
	}
	source := sheet.NewClient(cfg.SourceURL, cfg.FetchTimeout, cfg.FetchAttempts, logger, metrics)

	opts := []pipeline.Option{
		pipeline.WithWorkers(cfg.NormalizeWorkers),
		pipeline.WithRefreshTimeout(cfg.RefreshTimeout),
	}
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts = append(opts, pipeline.WithPublisher(writer))
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	}

	p := pipeline.New(source, normalizer, pipeline.NewStore(), logger, metrics, opts...)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh loop.
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := p.Run(ctx, cfg.RefreshInterval); err != nil {
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
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("refresh loop did not stop before shutdown timeout")
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
