package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hyperifyio/pagegrade/internal/analyze"
	apppkg "github.com/hyperifyio/pagegrade/internal/app"
	"github.com/hyperifyio/pagegrade/internal/review"
)

// Without a credential the CLI prints the no-credential review and can write a PDF.
func TestRun_NoCredential_WritesJSONAndPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<title>Demo</title><body><h1>Demo</h1></body>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	pdf := filepath.Join(dir, "report.pdf")
	cfg := apppkg.DefaultConfig()
	cfg.CacheDir = filepath.Join(dir, "cache")

	var out bytes.Buffer
	if err := run(context.Background(), cfg, "  "+srv.URL+"  ", pdf, &out); err != nil {
		t.Fatalf("run error: %v", err)
	}
	var got review.Result
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if !reflect.DeepEqual(got, review.NoCredentialFallback()) {
		t.Fatalf("unexpected result: %#v", got)
	}
	b, err := os.ReadFile(pdf)
	if err != nil || !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("expected PDF file, err=%v", err)
	}
}

func TestRun_MissingURL(t *testing.T) {
	err := run(context.Background(), apppkg.DefaultConfig(), " ", "", &bytes.Buffer{})
	if !errors.Is(err, analyze.ErrMissingURL) {
		t.Fatalf("expected ErrMissingURL, got %v", err)
	}
	if exitCode(err) != 2 {
		t.Fatalf("expected exit code 2")
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(&analyze.FetchError{URL: "x", Err: errors.New("down")}); got != 2 {
		t.Fatalf("fetch error exit = %d, want 2", got)
	}
	if got := exitCode(errors.New("other")); got != 1 {
		t.Fatalf("other error exit = %d, want 1", got)
	}
}
