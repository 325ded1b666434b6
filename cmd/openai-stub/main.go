// Command openai-stub serves a minimal OpenAI-compatible API that answers
// every chat completion with a fixed five-section landing page review. It is
// meant for local runs of pagegrade without a real model.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagegrade/internal/review"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// sampleReview is what every completion returns.
var sampleReview = review.Result{
	Grade: review.GradeB,
	Strengths: []string{
		"Headline: states the product category in plain words",
		"CTA: a single primary button above the fold",
	},
	Improvements: []string{
		"Value proposition: the benefit to the visitor is implied, not stated",
		"Trust: no testimonials, logos or numbers",
	},
	Suggestions: []string{
		"Rewrite the headline around the main outcome",
		"Add two short customer quotes near the CTA",
	},
	Overall: "Grade B: a clear page that undersells its benefit. Sharper messaging and some social proof would lift it.",
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	log.Info().Str("addr", addr).Str("model", model).Msg("openai-stub listening")
	if err := http.ListenAndServe(addr, newMux(model)); err != nil {
		log.Fatal().Err(err).Msg("openai-stub")
	}
}

func newMux(model string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		log.Debug().Str("model", req.Model).Int("messages", len(req.Messages)).Msg("chat completion")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": model,
			"choices": []map[string]any{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": review.Render(sampleReview)}},
			},
		})
	})
	return mux
}
