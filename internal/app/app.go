// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sitesmith/crawl/internal/assets"
	"github.com/sitesmith/crawl/internal/batch"
	"github.com/sitesmith/crawl/internal/cache"
	"github.com/sitesmith/crawl/internal/config"
	"github.com/sitesmith/crawl/internal/crawler"
	"github.com/sitesmith/crawl/internal/proxy"
	"github.com/sitesmith/crawl/internal/style"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	AnalysisCache *cache.Memory[*style.Analysis]
	HTTPClient    *http.Client
	Crawler       *crawler.Crawler
	StyleAnalyzer *style.Analyzer
	Batch         *batch.Analyzer
	Assets        *assets.WorkerPool
	startTime     time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the in-memory analysis cache
//   - Initializes the HTTP client with proper timeouts
//   - Creates the crawler and the style analyzer on top of the cache
//   - Creates the batch analyzer over the crawler
//
// If any step fails, an error is returned and no resources are allocated.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Initialize logger based on config
	logLevel := zerolog.ErrorLevel // default: suppress non-verbose info logs
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	analysisCache := cache.NewMemory[*style.Analysis](cfg.CacheMaxEntries)
	logger.Debug().
		Int("max_entries", cfg.CacheMaxEntries).
		Dur("ttl", cfg.CacheTTL).
		Msg("Analysis cache initialized")

	proxyPool, err := proxy.NewPool(cfg.Proxies)
	if err != nil {
		analysisCache.Close()
		return nil, err
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableKeepAlives:   false,
	}
	if proxyPool.Len() > 0 {
		transport.Proxy = proxyPool.ProxyFunc()
		logger.Debug().Int("proxies", proxyPool.Len()).Msg("Proxy rotation enabled")
	}
	httpClient := &http.Client{Transport: transport}
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Msg("HTTP client initialized")

	siteCrawler := crawler.New(httpClient, nil)
	styleAnalyzer := style.NewAnalyzer(analysisCache, cfg.CacheTTL)
	batchAnalyzer := batch.New(siteCrawler, cfg.BatchPoolSize)
	assetPool := assets.NewWorkerPool(
		assets.NewDownloader(httpClient, cfg.HTTPTimeout, cfg.UserAgent),
		cfg.BatchPoolSize,
	)

	app := &Application{
		Config:        cfg,
		Logger:        &logger,
		AnalysisCache: analysisCache,
		HTTPClient:    httpClient,
		Crawler:       siteCrawler,
		StyleAnalyzer: styleAnalyzer,
		Batch:         batchAnalyzer,
		Assets:        assetPool,
		startTime:     time.Now(),
	}

	logger.Debug().Msg("Application initialized successfully")
	return app, nil
}

// Close gracefully shuts down the application and all its resources.
//
// Any errors during shutdown are logged but do not prevent other shutdown
// steps.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Msg("Shutting down application")

	if a.AnalysisCache != nil {
		a.AnalysisCache.Close()
	}

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	uptime := time.Since(a.startTime)
	a.Logger.Debug().Dur("uptime", uptime).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
