package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/hyperifyio/pagegrade/internal/cache"
)

func TestGet_SendsBrowserUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 1, PerRequestTimeout: 2 * time.Second}
	body, ct, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "<html><body>ok</body></html>" || ct == "" {
		t.Fatalf("unexpected body=%q ct=%q", body, ct)
	}
	if gotUA != BrowserUserAgent {
		t.Fatalf("expected browser user agent, got %q", gotUA)
	}
}

func TestGet_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 3, RetryBackoff: time.Millisecond}
	_, _, err := c.Get(context.Background(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
}

func TestGet_RetryOn5xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("<title>ok</title>"))
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 2, RetryBackoff: time.Millisecond}
	if _, _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestGet_Conditional304UsesCache(t *testing.T) {
	var calls int
	etag := `"abc123"`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "text/html")
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
		_, _ = w.Write([]byte("first"))
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 1, Cache: &cache.PageCache{Dir: t.TempDir()}}
	b1, _, err := c.Get(context.Background(), srv.URL)
	if err != nil || string(b1) != "first" {
		t.Fatalf("first get: %q %v", b1, err)
	}
	b2, _, err := c.Get(context.Background(), srv.URL)
	if err != nil || string(b2) != "first" {
		t.Fatalf("expected cached body, got %q %v", b2, err)
	}
	if calls != 2 {
		t.Fatalf("expected revalidation request, calls=%d", calls)
	}
}

func TestGet_RejectsNonHTTP(t *testing.T) {
	c := &Client{MaxAttempts: 1}
	if _, _, err := c.Get(context.Background(), "file:///etc/hosts"); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
}

func TestGet_TooManyRedirects(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+"/again", http.StatusFound)
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 1, RedirectMaxHops: 2}
	if _, _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected redirect loop error")
	}
}

func TestGet_DecodesLatin1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<title>Caf\xe9</title>"))
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 1}
	body, _, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "<title>Café</title>" {
		t.Fatalf("expected utf-8 decoded body, got %q", body)
	}
}

func TestGet_LimiterHonoursContext(t *testing.T) {
	lim := rate.NewLimiter(rate.Every(time.Hour), 1)
	lim.Allow() // drain the only token
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	c := &Client{MaxAttempts: 1, Limiter: lim}
	if _, _, err := c.Get(ctx, "http://127.0.0.1:1/"); err == nil {
		t.Fatalf("expected limiter wait to fail")
	}
}
