package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagegrade/internal/analyze"
	"github.com/hyperifyio/pagegrade/internal/app"
	"github.com/hyperifyio/pagegrade/internal/review"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := app.LoadEnvFiles(".env", ".env.local"); err != nil {
		log.Warn().Err(err).Msg("could not read .env files")
	}

	var (
		pageURL      string
		configPath   string
		pdfPath      string
		llmBaseURL   string
		llmModel     string
		llmKey       string
		systemPrompt string
		fetchTimeout time.Duration
		cacheDir     string
		cacheMaxAge  time.Duration
		cacheClear   bool
		cacheStrict  bool
		verbose      bool
		showVersion  bool
	)

	flag.StringVar(&pageURL, "url", "", "Landing page URL to analyze (or first positional argument)")
	flag.StringVar(&configPath, "config", os.Getenv("PAGEGRADE_CONFIG"), "Path to YAML or JSON config file")
	flag.StringVar(&pdfPath, "pdf", "", "Also write the review as a PDF report to this path")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name (default gpt-4o)")
	flag.StringVar(&llmKey, "llm.key", "", "API key; defaults to OPENAI_API_KEY or LLM_API_KEY")
	flag.StringVar(&systemPrompt, "system.prompt", os.Getenv("SYSTEM_PROMPT"), "Override the reviewer system prompt")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Per-attempt page fetch timeout (default 15s)")
	flag.StringVar(&cacheDir, "cache.dir", os.Getenv("CACHE_DIR"), "Cache directory path; empty disables caching")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear cache directory before run")
	flag.BoolVar(&cacheStrict, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("pagegrade %s (%s)\n", app.BuildVersion, app.BuildCommit)
		return
	}
	if pageURL == "" && flag.NArg() > 0 {
		pageURL = flag.Arg(0)
	}

	cfg, err := app.ResolveConfig(app.Config{
		LLMBaseURL:       llmBaseURL,
		LLMModel:         llmModel,
		LLMAPIKey:        llmKey,
		SystemPrompt:     systemPrompt,
		FetchTimeout:     fetchTimeout,
		CacheDir:         cacheDir,
		CacheMaxAge:      cacheMaxAge,
		CacheClear:       cacheClear,
		CacheStrictPerms: cacheStrict,
		Verbose:          verbose,
	}, configPath)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, pageURL, pdfPath, os.Stdout); err != nil {
		log.Error().Err(err).Msg("analysis failed")
		os.Exit(exitCode(err))
	}
}

// exitCode maps input problems (no URL, a non-2xx page) to 2 and everything
// else to 1.
func exitCode(err error) int {
	var fe *analyze.FetchError
	if errors.Is(err, analyze.ErrMissingURL) || errors.As(err, &fe) {
		return 2
	}
	return 1
}

func run(ctx context.Context, cfg app.Config, pageURL, pdfPath string, out io.Writer) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	res, err := a.Analyze(ctx, pageURL)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if strings.TrimSpace(pdfPath) != "" {
		if err := writePDF(pdfPath, strings.TrimSpace(pageURL), res); err != nil {
			return err
		}
		log.Info().Str("path", pdfPath).Msg("wrote PDF report")
	}
	return nil
}

func writePDF(path, pageURL string, res review.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := review.WritePDF(f, pageURL, res); err != nil {
		_ = f.Close()
		return fmt.Errorf("render pdf: %w", err)
	}
	return f.Close()
}
