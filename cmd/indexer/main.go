package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillseek/course-search/internal/bootstrap"
	"github.com/skillseek/course-search/internal/config"
	"github.com/skillseek/course-search/internal/observability/logging"
	"github.com/skillseek/course-search/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("indexer", cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	buildMetrics := metrics.NewIndexerMetrics("indexer")
	metricsServer := &http.Server{
		Addr:    ":" + cfg.IndexerMetricsPort,
		Handler: buildMetrics.Handler(),
	}
	go func() {
		logger.Info("indexer metrics listening", "port", cfg.IndexerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("metrics server error: %v", err)
		}
	}()

	logger.Info("indexer subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeRebuildRequested(ctx, func(handlerCtx context.Context, reason string) error {
		buildCtx, cancel := context.WithTimeout(handlerCtx, 30*time.Minute)
		defer cancel()

		buildMetrics.StartBuild()
		start := time.Now()
		stats, buildErr := app.BuildUC.Rebuild(buildCtx)

		documents := 0
		if stats != nil {
			documents = stats.Documents
		}
		buildMetrics.FinishBuild("indexer", time.Since(start), documents, buildErr)

		if buildErr != nil {
			logger.Error("index rebuild failed", "reason", reason, "error", buildErr)
			return buildErr
		}
		logger.Info("index rebuilt",
			"reason", reason,
			"documents", stats.Documents,
			"model", stats.Model,
			"corpus_version", stats.CorpusVersion,
		)
		return nil
	})
	if err != nil {
		log.Fatalf("indexer subscribe error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
}
