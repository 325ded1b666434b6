package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"

	"github.com/hyperifyio/pagegrade/internal/cache"
)

// BrowserUserAgent is sent with every page request so that sites serve the
// same markup a desktop browser would get.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 8 << 20

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.StatusCode)
}

// Client fetches landing pages with a browser identity, bounded retry on
// transient failures and an optional on-disk cache.
type Client struct {
	HTTPClient *http.Client
	// UserAgent defaults to BrowserUserAgent.
	UserAgent string
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// PerRequestTimeout bounds each attempt.
	PerRequestTimeout time.Duration
	// RedirectMaxHops caps redirects. Zero means 5.
	RedirectMaxHops int
	// Cache, when set, enables conditional revalidation with ETag and
	// Last-Modified.
	Cache *cache.PageCache
	// Limiter, when set, paces outgoing requests.
	Limiter *rate.Limiter
	// RetryBackoff is the base delay between attempts. Zero means 200ms.
	RetryBackoff time.Duration
}

// Get fetches rawURL and returns the body decoded to UTF-8 together with the
// response content type.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, string, error) {
	var meta *cache.PageEntry
	if c.Cache != nil {
		if m, err := c.Cache.Meta(ctx, rawURL); err == nil {
			meta = m
		}
	}
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := c.RetryBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		res, err := c.tryOnce(ctx, rawURL, meta)
		if err == nil {
			return c.finish(ctx, rawURL, res)
		}
		lastErr = err
		if !isTransient(err) || i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-time.After(time.Duration(i+1) * backoff):
		}
	}
	return nil, "", lastErr
}

type response struct {
	status       int
	body         []byte
	contentType  string
	etag         string
	lastModified string
}

func (c *Client) finish(ctx context.Context, rawURL string, res response) ([]byte, string, error) {
	if res.status == http.StatusNotModified && c.Cache != nil {
		body, err := c.Cache.Body(ctx, rawURL)
		if err != nil {
			return nil, "", fmt.Errorf("cached body: %w", err)
		}
		meta, _ := c.Cache.Meta(ctx, rawURL)
		ct := res.contentType
		if meta != nil && ct == "" {
			ct = meta.ContentType
		}
		return body, ct, nil
	}
	body := toUTF8(res.body, res.contentType)
	if c.Cache != nil {
		_ = c.Cache.Save(ctx, cache.PageEntry{
			URL:          rawURL,
			ContentType:  res.contentType,
			ETag:         res.etag,
			LastModified: res.lastModified,
		}, body)
	}
	return body, res.contentType, nil
}

func (c *Client) tryOnce(ctx context.Context, rawURL string, meta *cache.PageEntry) (response, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return response{}, err
		}
	}
	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.PerRequestTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return response{}, fmt.Errorf("new request: %w", err)
	}
	if !isHTTPScheme(req.URL) {
		return response{}, fmt.Errorf("unsupported URL scheme: %q", req.URL.Scheme)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = BrowserUserAgent
	}
	req.Header.Set("User-Agent", ua)
	if meta != nil {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()

	out := response{
		status:       resp.StatusCode,
		contentType:  resp.Header.Get("Content-Type"),
		etag:         resp.Header.Get("ETag"),
		lastModified: resp.Header.Get("Last-Modified"),
	}
	if resp.StatusCode == http.StatusNotModified && meta != nil {
		return out, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &StatusError{StatusCode: resp.StatusCode}
	}
	out.body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return out, fmt.Errorf("read body: %w", err)
	}
	return out, nil
}

func (c *Client) httpClient() *http.Client {
	var base http.Client
	if c.HTTPClient != nil {
		// Copy so the caller's client keeps its own redirect policy.
		base = *c.HTTPClient
	} else {
		base.Timeout = c.PerRequestTimeout
	}
	base.CheckRedirect = c.checkRedirect
	return &base
}

func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	limit := c.RedirectMaxHops
	if limit <= 0 {
		limit = 5
	}
	if len(via) >= limit {
		return errors.New("too many redirects")
	}
	if !isHTTPScheme(req.URL) {
		return errors.New("redirect to unsupported scheme")
	}
	return nil
}

// isTransient treats 5xx responses, 429 and timeouts as worth retrying.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500 || se.StatusCode == http.StatusTooManyRequests
	}
	return false
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// toUTF8 decodes body using the charset from contentType or the document's
// own meta tags. Undecodable input is returned unchanged.
func toUTF8(body []byte, contentType string) []byte {
	enc, name, _ := charset.DetermineEncoding(body, contentType)
	if enc == nil || strings.EqualFold(name, "utf-8") {
		return body
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return body
	}
	return out
}
