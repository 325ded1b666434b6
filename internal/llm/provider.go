package llm

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the single chat-completion call the reviewer needs. Any
// OpenAI-compatible backend, or a test fake, can satisfy it.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider adapts *openai.Client to Client.
type OpenAIProvider struct {
	Inner *openai.Client
}

// NewOpenAI builds a provider for apiKey. baseURL and httpClient are optional;
// empty values keep the go-openai defaults.
func NewOpenAI(apiKey, baseURL string, httpClient *http.Client) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}

// FirstContent returns the content of the first choice, or "" when the
// response carries no choices.
func FirstContent(resp openai.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}
