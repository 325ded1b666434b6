// Package analyze runs one landing-page review: fetch, extract, prompt the
// model and parse its answer, substituting a fixed assessment whenever the
// model cannot be used.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/pagegrade/internal/cache"
	"github.com/hyperifyio/pagegrade/internal/extract"
	"github.com/hyperifyio/pagegrade/internal/fetch"
	"github.com/hyperifyio/pagegrade/internal/llm"
	"github.com/hyperifyio/pagegrade/internal/review"
)

const (
	// DefaultModel is used when no model name is configured.
	DefaultModel = "gpt-4o"
	// Temperature is the fixed sampling temperature for reviews.
	Temperature = 0.7
)

// PageFetcher retrieves raw page bytes. *fetch.Client satisfies it.
type PageFetcher interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

// Analyzer holds the collaborators of a review. It keeps no per-request state,
// so one value may serve concurrent Analyze calls.
type Analyzer struct {
	Fetcher   PageFetcher
	Extractor extract.Extractor
	Client    llm.Client
	// HasCredential reports whether a model API key is configured. Without
	// one the model is never contacted.
	HasCredential bool
	Model         string
	// SystemPrompt overrides DefaultSystemPrompt when non-empty.
	SystemPrompt string
	// Cache, when set, serves repeated prompts without a model call.
	Cache *cache.ResponseCache
}

// Analyze reviews the page at url. It returns ErrMissingURL for an empty URL
// and a *FetchError when the page answers with a non-2xx status. Transport
// failures and unusable URLs are returned as plain errors. Model problems are
// never returned: they produce review.ErrorFallback instead, and a missing
// credential produces review.NoCredentialFallback.
func (a *Analyzer) Analyze(ctx context.Context, url string) (review.Result, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return review.Result{}, ErrMissingURL
	}
	if a.Fetcher == nil {
		return review.Result{}, errors.New("analyzer not configured: no fetcher")
	}

	body, _, err := a.Fetcher.Get(ctx, url)
	if err != nil {
		var se *fetch.StatusError
		if errors.As(err, &se) {
			return review.Result{}, &FetchError{URL: url, Err: err}
		}
		return review.Result{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	var ex extract.Extractor = extract.PatternExtractor{}
	if a.Extractor != nil {
		ex = a.Extractor
	}
	page := ex.Extract(body)
	log.Debug().Str("url", url).Str("title", page.Title).Int("headlines", len(page.Headlines)).Int("ctas", len(page.CTAButtons)).Msg("page extracted")

	system := a.systemPrompt()
	user := BuildUserMessage(page)

	if !a.HasCredential {
		log.Info().Str("url", url).Bool("has_key", false).Msg("no model credential; using fallback review")
		return review.NoCredentialFallback(), nil
	}

	text, err := a.complete(ctx, system, user)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Str("model", a.model()).Msg("model call failed; using fallback review")
		return review.ErrorFallback(), nil
	}
	if strings.TrimSpace(text) == "" {
		log.Warn().Str("url", url).Str("model", a.model()).Msg("model returned no text; using fallback review")
		return review.ErrorFallback(), nil
	}
	return review.Parse(text), nil
}

func (a *Analyzer) complete(ctx context.Context, system, user string) (string, error) {
	if a.Client == nil {
		return "", errors.New("model client not configured")
	}
	model := a.model()
	var key string
	if a.Cache != nil {
		key = cache.KeyFor(model, system, user)
		if text, ok, _ := a.Cache.Get(ctx, key); ok && strings.TrimSpace(text) != "" {
			log.Debug().Str("stage", "review").Str("model", model).Msg("model response served from cache")
			return text, nil
		}
	}
	log.Debug().Str("stage", "review").Str("model", model).Int("system_len", len(system)).Int("user_len", len(user)).Msg("review prompt")
	resp, err := a.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("review call: %w", err)
	}
	text := llm.FirstContent(resp)
	if a.Cache != nil && strings.TrimSpace(text) != "" {
		if err := a.Cache.Save(ctx, key, text); err != nil {
			log.Debug().Err(err).Msg("response cache save failed")
		}
	}
	return text, nil
}

func (a *Analyzer) model() string {
	if m := strings.TrimSpace(a.Model); m != "" {
		return m
	}
	return DefaultModel
}

func (a *Analyzer) systemPrompt() string {
	if strings.TrimSpace(a.SystemPrompt) != "" {
		return a.SystemPrompt
	}
	return DefaultSystemPrompt
}
