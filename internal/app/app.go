package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagegrade/internal/analyze"
	"github.com/hyperifyio/pagegrade/internal/cache"
	"github.com/hyperifyio/pagegrade/internal/extract"
	"github.com/hyperifyio/pagegrade/internal/fetch"
	"github.com/hyperifyio/pagegrade/internal/llm"
	"github.com/hyperifyio/pagegrade/internal/review"
)

// App wires configuration to a ready Analyzer.
type App struct {
	cfg      Config
	analyzer *analyze.Analyzer
}

// New validates cfg, prepares the cache directory and builds the page fetcher
// and, when a credential is configured, the model client.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	httpClient := newHTTPClient()

	fetcher := &fetch.Client{
		HTTPClient:        httpClient,
		UserAgent:         fetch.BrowserUserAgent,
		MaxAttempts:       cfg.FetchAttempts,
		PerRequestTimeout: cfg.FetchTimeout,
		RedirectMaxHops:   cfg.RedirectMaxHops,
	}
	a := &analyze.Analyzer{
		Fetcher:       fetcher,
		Extractor:     extract.PatternExtractor{},
		HasCredential: cfg.HasCredential(),
		Model:         cfg.LLMModel,
		SystemPrompt:  cfg.SystemPrompt,
	}

	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.Clear(cfg.CacheDir); err != nil {
				return nil, fmt.Errorf("clear cache: %w", err)
			}
		}
		if cfg.CacheMaxAge > 0 {
			removed, err := cache.Purge(cfg.CacheDir, cfg.CacheMaxAge)
			if err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache purge failed; continuing")
			} else if removed > 0 {
				log.Info().Int("removed", removed).Msg("purged expired cache entries")
			}
		}
		fetcher.Cache = &cache.PageCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
		a.Cache = &cache.ResponseCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	if a.HasCredential {
		a.Client = llm.NewOpenAI(cfg.LLMAPIKey, cfg.LLMBaseURL, httpClient)
	}
	log.Debug().Bool("has_key", a.HasCredential).Str("model", cfg.LLMModel).Str("base", cfg.LLMBaseURL).Msg("analyzer configured")

	return &App{cfg: cfg, analyzer: a}, nil
}

// Analyzer exposes the configured analyzer, e.g. for the HTTP server.
func (a *App) Analyzer() *analyze.Analyzer { return a.analyzer }

// Analyze reviews one URL.
func (a *App) Analyze(ctx context.Context, url string) (review.Result, error) {
	log.Info().Str("url", url).Msg("analyzing page")
	return a.analyzer.Analyze(ctx, url)
}
