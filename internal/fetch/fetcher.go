// Package fetch issues the crawler's HTTP requests: one timed, cancellable
// GET per page with a fixed user agent, and classifies the outcome.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Result is a successful page fetch.
type Result struct {
	HTML     string
	LoadTime time.Duration
}

// Fetcher retrieves pages over HTTP. It follows redirects, aborts in-flight
// requests when the per-request timeout expires, and never retries; retry
// policy belongs to the caller.
type Fetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	headers   map[string]string
}

// New creates a Fetcher with dependency injection. The client should not
// carry its own Timeout; the fetcher applies a per-request deadline instead
// so a timeout aborts only that request. headers are extra request headers
// applied after the defaults, so they may override Accept-Language but not
// the user agent.
func New(client *http.Client, timeout time.Duration, userAgent string, headers map[string]string) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		timeout:   timeout,
		headers:   headers,
	}
}

// FetchPage issues a single GET for url. It returns:
//   - (result, nil) on a 2xx HTML response
//   - (nil, nil) when the response is not HTML: the page is skipped, not an
//     error, since crawls frequently discover links to assets
//   - (nil, err) for HTTP status, timeout, DNS, TLS, and network failures
func (f *Fetcher) FetchPage(ctx context.Context, url string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for key, value := range f.headers {
		if http.CanonicalHeaderKey(key) == "User-Agent" {
			continue
		}
		req.Header.Set(key, value)
	}

	log.Debug().Str("url", url).Msg("Starting fetch")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, url)
		}
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        url,
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !isHTMLContentType(contentType) {
		log.Debug().
			Str("url", url).
			Str("content_type", contentType).
			Msg("Skipping non-HTML response")
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, url)
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	loadTime := time.Since(start)

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int64("load_time_ms", loadTime.Milliseconds()).
		Int("bytes", len(body)).
		Msg("Fetch completed")

	return &Result{
		HTML:     string(body),
		LoadTime: loadTime,
	}, nil
}

func isHTMLContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
