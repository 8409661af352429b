package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/skillseek/course-search/internal/adapters/http"
	"github.com/skillseek/course-search/internal/bootstrap"
	"github.com/skillseek/course-search/internal/config"
	"github.com/skillseek/course-search/internal/observability/logging"
	"github.com/skillseek/course-search/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("api", cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	stats, err := app.BuildUC.LoadOrBuild(startCtx)
	cancel()
	if err != nil {
		log.Fatalf("index startup error: %v", err)
	}
	logger.Info("index ready",
		"documents", stats.Documents,
		"dimension", stats.Dimension,
		"model", stats.Model,
	)

	httpMetrics := metrics.NewHTTPServerMetrics("api")
	router := httpadapter.NewRouter(
		app.RetrieveUC,
		app.AnswerUC,
		app.ReadUC,
		app.Queue,
		httpMetrics,
		logger,
		cfg.RetrieveTopK,
		cfg.ScoreThreshold,
	)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown error", "error", err)
	}
}
