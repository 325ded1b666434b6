package main

import (
	"context"
	"net/http/httptest"
	"reflect"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/pagegrade/internal/llm"
	"github.com/hyperifyio/pagegrade/internal/review"
)

// The stub's reply must parse back into the sample review through the real client.
func TestStub_ReplyParsesToSample(t *testing.T) {
	srv := httptest.NewServer(newMux("stub-model"))
	defer srv.Close()

	c := llm.NewOpenAI("sk-any", srv.URL+"/v1", srv.Client())
	resp, err := c.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: "stub-model",
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "sys"},
			{Role: openai.ChatMessageRoleUser, Content: "page"},
		},
	})
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	got := review.Parse(llm.FirstContent(resp))
	if !reflect.DeepEqual(got, sampleReview) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, sampleReview)
	}
}
