package assets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sitesmith/crawl/internal/retry"
)

func fastRetry() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func TestDownload_WritesFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	d := NewDownloader(server.Client(), 5*time.Second, "TestBot/1.0")
	result := d.Download(context.Background(), server.URL+"/logo.png", dir)

	if result.Err != nil {
		t.Fatalf("Download failed: %v", result.Err)
	}
	if result.Size != int64(len("png-bytes")) {
		t.Errorf("Expected size recorded, got %d", result.Size)
	}
	if result.FilePath != filepath.Join(dir, "logo.png") {
		t.Errorf("Unexpected file path: %s", result.FilePath)
	}

	content, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if string(content) != "png-bytes" {
		t.Errorf("Unexpected file content: %s", content)
	}
}

func TestDownload_RetriesServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	d := NewDownloader(server.Client(), 5*time.Second, "TestBot/1.0")
	d.retryCfg = fastRetry()

	result := d.Download(context.Background(), server.URL+"/logo.png", t.TempDir())
	if result.Err != nil {
		t.Fatalf("Expected success after retries, got %v", result.Err)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestDownload_NotFoundNotRetried(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	d := NewDownloader(server.Client(), 5*time.Second, "TestBot/1.0")
	d.retryCfg = fastRetry()

	result := d.Download(context.Background(), server.URL+"/logo.png", t.TempDir())
	if result.Err == nil {
		t.Fatal("Expected error for 404")
	}
	var dlErr *DownloadError
	if !errors.As(result.Err, &dlErr) || dlErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected DownloadError with 404, got %v", result.Err)
	}
	if result.FilePath != "" {
		t.Errorf("Expected empty file path on failure, got %s", result.FilePath)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("Expected a single attempt for 404, got %d", got)
	}
}

func TestDownload_SendsUserAgent(t *testing.T) {
	var ua string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	d := NewDownloader(server.Client(), 5*time.Second, "TestBot/1.0")
	d.Download(context.Background(), server.URL+"/a.png", t.TempDir())
	if ua != "TestBot/1.0" {
		t.Errorf("Expected configured user agent, got '%s'", ua)
	}
}

func TestWorkerPool_DownloadAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "content-of-%s", r.URL.Path)
	}))
	defer server.Close()

	d := NewDownloader(server.Client(), 5*time.Second, "TestBot/1.0")
	pool := NewWorkerPool(d, 3)

	var urls []string
	for i := 0; i < 6; i++ {
		urls = append(urls, fmt.Sprintf("%s/asset%d.png", server.URL, i))
	}

	dir := t.TempDir()
	results := pool.DownloadAll(context.Background(), urls, dir)
	if len(results) != len(urls) {
		t.Fatalf("Expected %d results, got %d", len(urls), len(results))
	}
	for _, result := range results {
		if result.Err != nil {
			t.Errorf("Download of %s failed: %v", result.URL, result.Err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read asset dir: %v", err)
	}
	if len(entries) != len(urls) {
		t.Errorf("Expected %d files on disk, got %d", len(urls), len(entries))
	}
}

func TestWorkerPool_EmptyInput(t *testing.T) {
	pool := NewWorkerPool(NewDownloader(nil, 0, ""), 2)
	if results := pool.DownloadAll(context.Background(), nil, t.TempDir()); results != nil {
		t.Errorf("Expected nil for no urls, got %v", results)
	}
}
