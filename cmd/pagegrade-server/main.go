package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagegrade/internal/app"
	"github.com/hyperifyio/pagegrade/internal/server"
)

const shutdownGrace = 5 * time.Second

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := app.LoadEnvFiles(".env", ".env.local"); err != nil {
		log.Warn().Err(err).Msg("could not read .env files")
	}

	var (
		configPath   string
		listenAddr   string
		llmBaseURL   string
		llmModel     string
		llmKey       string
		systemPrompt string
		cacheDir     string
		cacheMaxAge  time.Duration
		rateLimit    float64
		burst        int
		release      bool
		verbose      bool
	)

	flag.StringVar(&configPath, "config", os.Getenv("PAGEGRADE_CONFIG"), "Path to YAML or JSON config file")
	flag.StringVar(&listenAddr, "listen", os.Getenv("LISTEN_ADDR"), "Listen address (default :8080)")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name (default gpt-4o)")
	flag.StringVar(&llmKey, "llm.key", "", "API key; defaults to OPENAI_API_KEY or LLM_API_KEY")
	flag.StringVar(&systemPrompt, "system.prompt", os.Getenv("SYSTEM_PROMPT"), "Override the reviewer system prompt")
	flag.StringVar(&cacheDir, "cache.dir", os.Getenv("CACHE_DIR"), "Cache directory path; empty disables caching")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge at startup; 0 disables")
	flag.Float64Var(&rateLimit, "rate", 0, "Requests per second allowed per client IP (default 2)")
	flag.IntVar(&burst, "burst", 0, "Burst size per client IP (default 5)")
	flag.BoolVar(&release, "release", false, "Run gin in release mode")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg, err := app.ResolveConfig(app.Config{
		LLMBaseURL:        llmBaseURL,
		LLMModel:          llmModel,
		LLMAPIKey:         llmKey,
		SystemPrompt:      systemPrompt,
		CacheDir:          cacheDir,
		CacheMaxAge:       cacheMaxAge,
		ListenAddr:        listenAddr,
		RateLimitPerSec:   rateLimit,
		RateLimitBurst:    burst,
		ServerReleaseMode: release,
		Verbose:           verbose,
	}, configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init app")
	}
	if !cfg.HasCredential() {
		log.Warn().Msg("no API key configured; every analysis returns the placeholder review")
	}

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: server.NewRouter(a, server.Options{
			RatePerSec: cfg.RateLimitPerSec,
			Burst:      cfg.RateLimitBurst,
			Release:    cfg.ServerReleaseMode,
			Version:    app.BuildVersion,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Str("version", app.BuildVersion).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
