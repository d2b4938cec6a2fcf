// cmd/tracker/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"podcast-guest-tracker/internal/cache"
	"podcast-guest-tracker/internal/common/config"
	"podcast-guest-tracker/internal/common/logger"
	"podcast-guest-tracker/internal/common/observability"
	"podcast-guest-tracker/internal/fetch"
	"podcast-guest-tracker/internal/features"
	"podcast-guest-tracker/internal/llm"
	"podcast-guest-tracker/internal/models"
	"podcast-guest-tracker/internal/scoring"
	"podcast-guest-tracker/internal/server"
	"podcast-guest-tracker/internal/tracker"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	var (
		serve     = flag.Bool("serve", false, "run the HTTP API server")
		guestName = flag.String("guest", "", "guest name for one-shot analysis")
		guestURL  = flag.String("guest-url", "", "guest profile URL for one-shot analysis")
		hostURL   = flag.String("host-url", "", "host channel URL for one-shot analysis")
		reportOut = flag.String("report", "", "write the markdown report to this file (one-shot mode)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting guest tracker...")

	obs := observability.New("guest-tracker")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Cache backend ---
	var store cache.Store
	switch cfg.Cache.Backend {
	case "redis":
		redisStore := cache.NewRedisStore(cfg.Cache.Redis, cfg.Cache.TTL())
		err = retryWithBackoff(func() error {
			return redisStore.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisStore.Close()
		zapLog.Info("Redis connected successfully")
		store = redisStore
	default:
		store = cache.NewMemoryStore(cfg.Cache.TTL())
	}

	// --- LLM client ---
	endpoints := make([]llm.Endpoint, 0, len(cfg.LLM.Endpoints))
	for _, ep := range cfg.LLM.Endpoints {
		endpoints = append(endpoints, llm.Endpoint{Model: ep.Model, BaseURL: ep.BaseURL})
	}
	llmClient := llm.NewClient(
		endpoints,
		time.Duration(cfg.LLM.RequestTimeout)*time.Second,
		cfg.LLM.MaxRetries,
		log,
	)

	// --- Profile sources ---
	sourceTimeout := time.Duration(cfg.Sources.Timeout) * time.Second
	guests := fetch.NewHTTPGuestSource(cfg.Sources.GuestBaseURL, sourceTimeout, log)
	hosts := fetch.NewHTTPHostSource(cfg.Sources.HostBaseURL, sourceTimeout, log)

	// --- Pipeline + orchestrator ---
	agg := features.NewAggregator(
		cfg.Analysis.MaxRecentVideos,
		cfg.Analysis.MaxRecentActivities,
		cfg.Analysis.MaxTopics,
	)
	pipeline := scoring.NewPipeline(llmClient, scoring.Config{
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}, log)
	t := tracker.New(guests, hosts, agg, pipeline, store, log)

	if !*serve {
		runOnce(ctx, t, *guestName, *guestURL, *hostURL, *reportOut, zapLog)
		return
	}

	// --- HTTP API Server ---
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: server.New(t, log).Routes(),
	}

	go func() {
		zapLog.Info("API server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down API server", zap.Error(err))
	}

	zapLog.Info("Guest tracker stopped gracefully")
}

func runOnce(ctx context.Context, t *tracker.Tracker, guestName, guestURL, hostURL, reportOut string, log *zap.Logger) {
	if guestName == "" || guestURL == "" || hostURL == "" {
		fmt.Fprintln(os.Stderr, "one-shot mode requires -guest, -guest-url and -host-url (or pass -serve)")
		os.Exit(2)
	}

	rec, report, err := t.AnalyzeWithReport(ctx, models.AnalysisRequest{
		GuestName:      guestName,
		GuestURL:       guestURL,
		HostChannelURL: hostURL,
	})
	if err != nil {
		log.Fatal("analysis failed", zap.Error(err))
	}

	log.Info("analysis complete",
		zap.String("guest", rec.GuestName),
		zap.Int("score", rec.Score),
		zap.String("verdict", string(rec.Verdict)),
		zap.String("model", rec.Model),
	)

	if reportOut != "" {
		if err := os.WriteFile(reportOut, []byte(report), 0o644); err != nil {
			log.Fatal("report write failed", zap.Error(err))
		}
		log.Info("report written", zap.String("path", reportOut))
		return
	}
	fmt.Println(report)
}
