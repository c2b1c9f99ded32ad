package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sitesmith/crawl/internal/retry"
)

// Result records the outcome of one asset download.
type Result struct {
	URL      string
	FilePath string
	Size     int64
	Err      error
	Duration time.Duration
}

// DownloadError is a non-2xx response for an asset. It satisfies
// retry.StatusCoder so throttling and server errors get retried.
type DownloadError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed: HTTP %d %s (%s)", e.StatusCode, e.Status, e.URL)
}

func (e *DownloadError) GetStatusCode() int {
	return e.StatusCode
}

// Downloader streams assets to disk with a bounded retry policy.
type Downloader struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	retryCfg  retry.Config
}

// NewDownloader creates a Downloader sharing the given client.
func NewDownloader(client *http.Client, timeout time.Duration, userAgent string) *Downloader {
	if client == nil {
		client = &http.Client{}
	}
	return &Downloader{
		client:    client,
		userAgent: userAgent,
		timeout:   timeout,
		retryCfg:  retry.DefaultConfig(),
	}
}

// Download fetches one asset into dir, retrying transient failures. The
// filename is derived from the URL path and made collision-safe with a query
// hash.
func (d *Downloader) Download(ctx context.Context, assetURL, dir string) *Result {
	result := &Result{URL: assetURL}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	if err := os.MkdirAll(dir, 0755); err != nil {
		result.Err = fmt.Errorf("failed to create asset directory: %w", err)
		return result
	}

	filePath := filepath.Join(dir, fileNameFor(assetURL))
	result.FilePath = filePath

	result.Err = retry.WithRetry(ctx, d.retryCfg, func() error {
		size, err := d.fetchToFile(ctx, assetURL, filePath)
		result.Size = size
		return err
	})
	if result.Err != nil {
		result.FilePath = ""
		return result
	}

	log.Debug().
		Str("url", assetURL).
		Str("file", filePath).
		Int64("bytes", result.Size).
		Msg("Asset downloaded")
	return result
}

func (d *Downloader) fetchToFile(ctx context.Context, assetURL, filePath string) (int64, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return 0, fmt.Errorf("invalid asset URL: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("asset request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &DownloadError{URL: assetURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	outFile, err := os.Create(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	written, err := io.Copy(outFile, resp.Body)
	if err != nil {
		os.Remove(filePath)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	return written, nil
}

// fileNameFor derives a safe on-disk name from an asset URL. The last path
// segment is kept; query strings are folded into a short hash so two sizes
// of the same image do not collide.
func fileNameFor(assetURL string) string {
	name := assetURL
	var queryHash string
	if u, err := url.Parse(assetURL); err == nil && u.Host != "" {
		segments := strings.Split(u.Path, "/")
		name = segments[len(segments)-1]
		if u.RawQuery != "" {
			queryHash = "_" + hashString(u.RawQuery)
		}
	}

	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", "..", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
	)
	name = strings.Trim(strings.TrimSpace(replacer.Replace(name)), ".")

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if queryHash != "" {
		name = stem + queryHash + ext
	}

	if name == "" || name == queryHash {
		name = "asset" + queryHash + ext
	}
	if len(name) > 200 {
		name = name[:200]
	}
	return name
}

func hashString(s string) string {
	hash := 0
	for _, c := range s {
		hash = ((hash << 5) - hash) + int(c)
	}
	if hash < 0 {
		hash = -hash
	}
	return fmt.Sprintf("%08x", hash&0xffffffff)[:8]
}
