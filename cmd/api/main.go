package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/slotwise/scheduler/internal/api/router"
	appconfig "github.com/slotwise/scheduler/internal/config"
	"github.com/slotwise/scheduler/internal/llm"
	"github.com/slotwise/scheduler/internal/observability/metrics"
	"github.com/slotwise/scheduler/internal/scheduler"
	"github.com/slotwise/scheduler/internal/suggest"
	"github.com/slotwise/scheduler/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting slot scheduling API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"llm_provider", cfg.LLMProvider,
	)

	// Metrics
	registry := prometheus.NewRegistry()
	schedulerMetrics := metrics.NewScheduler(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	// Scheduling engine
	engine := scheduler.New(scheduler.Defaults{
		SlotLength: cfg.DefaultSlotLength,
		Buffer:     cfg.DefaultBuffer,
	}, logger, schedulerMetrics)

	// LLM collaborators; the structured path works without them
	llmClient, err := newLLMClient(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize LLM client", "error", err)
		os.Exit(1)
	}
	var parser suggest.AvailabilityParser
	var explainer suggest.SlotExplainer
	if llmClient != nil {
		parser = suggest.NewParser(llmClient, logger)
		explainer = suggest.NewExplainer(llmClient, cfg.LLMTimeout, logger)
		if closer, ok := llmClient.(interface{ Close() error }); ok {
			defer closer.Close()
		}
	} else {
		logger.Warn("no LLM client configured, text availability parsing disabled")
	}

	suggestHandler := suggest.NewHandler(engine, parser, explainer, schedulerMetrics, logger)

	// Redis for rate limiting (optional)
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		SuggestHandler:     suggestHandler,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Redis:              redisClient,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// newLLMClient builds the configured provider client. Returns nil without
// error when the provider has no credentials configured.
func newLLMClient(cfg *appconfig.Config, logger *logging.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, nil
		}
		return llm.NewOpenAIClient(llm.OpenAIConfig{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.LLMTimeout,
		})
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		return llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	case "bedrock":
		if cfg.BedrockModelID == "" {
			return nil, nil
		}
		awsCfg, err := loadAWSConfig(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return llm.NewBedrockClient(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID)
	case "none", "":
		return nil, nil
	default:
		logger.Warn("unknown LLM provider, continuing without one", "provider", cfg.LLMProvider)
		return nil, nil
	}
}

func loadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
