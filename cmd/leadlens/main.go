package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"leadlens/internal/amqp"
	"leadlens/internal/cache"
	"leadlens/internal/cli"
	apphttp "leadlens/internal/http"
	"leadlens/internal/ingest"
	applog "leadlens/internal/log"
	"leadlens/internal/metrics"
	"leadlens/internal/middleware/ratelimit"
	"leadlens/internal/notes"
	gsheet "leadlens/internal/sheets/google"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	appLogger := applog.New(applog.DefaultConfig())

	notesA := notes.NewStore()
	notesB := notes.NewStore()
	recorder := metrics.NewRecorder()

	resultCache := cache.NewLRUCache[ingest.Result](cfg.CacheSize, cfg.CacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(resultCache)
	cacheManager.StartCleanup(cfg.CacheTTL)

	pipelineOpts := []ingest.Option{
		ingest.WithCache(resultCache),
		ingest.WithRecorder(recorder),
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		pipelineOpts = append(pipelineOpts, ingest.WithPublisher(amqpClient))
		logger.Info("AMQP events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	pipeline := ingest.New(notesA, notesB, appLogger, pipelineOpts...)

	limiter := ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerMinute: cfg.RateLimitPerMinute,
	})

	serverOpts := []apphttp.ServerOption{
		apphttp.WithRecorder(recorder),
		apphttp.WithRateLimiter(limiter),
		apphttp.WithMaxUploadBytes(cfg.MaxUploadBytes),
	}

	if cfg.GoogleSpreadsheetID != "" {
		src, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets source", "error", err)
			os.Exit(1)
		}
		serverOpts = append(serverOpts, apphttp.WithSource(src))
		logger.Info("Google Sheets pull enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	}

	server := apphttp.NewServer(pipeline, notesA, notesB, appLogger, serverOpts...)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        server.Router(),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		limiter.Stop()
		cacheManager.Stop()
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Error("AMQP close error", "error", err)
			}
		}
	}
	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, cleanup)

	logger.Info("Starting leadlens server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
