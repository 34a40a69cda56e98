package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/earthquake-dashboard/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/earthquake-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/earthquake-dashboard/internal/adapter/usgs"
	"github.com/couchcryptid/earthquake-dashboard/internal/config"
	"github.com/couchcryptid/earthquake-dashboard/internal/domain"
	"github.com/couchcryptid/earthquake-dashboard/internal/observability"
	"github.com/couchcryptid/earthquake-dashboard/internal/quake"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	source := usgs.NewClient(cfg.USGSURL, cfg.USGSTimeout, metrics, logger)

	// Event publishing is feature-flagged via KAFKA_BROKERS.
	var (
		publisher quake.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("event publishing disabled")
	}

	svc := quake.NewService(source, publisher, logger, metrics)

	info := httpadapter.AppInfo{
		Name:        "Earthquake Dashboard",
		Version:     cfg.AppVersion,
		Author:      "Storm Data Team",
		Description: "Recent earthquake activity from the USGS feed, as JSON, charts, and pages",
		StartedAt:   domain.Now(),
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, info, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
