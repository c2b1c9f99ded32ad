package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitesmith/crawl/internal/utils/headers"
	"github.com/sitesmith/crawl/pkg/models"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Crawling
	MaxPages    int
	MaxDepth    int
	RateLimit   time.Duration
	HTTPTimeout time.Duration
	UserAgent   string
	KeepHTML    bool
	Headers     map[string]string

	// Outbound proxies, rotated per request when more than one is given.
	Proxies []string

	// Style-analysis cache
	CacheTTL        time.Duration
	CacheMaxEntries int

	// Batch analysis
	BatchPoolSize int
}

// CrawlConfig projects the crawl-level knobs into the model type handed to
// the crawler.
func (c *Config) CrawlConfig() models.CrawlConfig {
	return models.CrawlConfig{
		MaxPages:  c.MaxPages,
		MaxDepth:  c.MaxDepth,
		RateLimit: c.RateLimit,
		Timeout:   c.HTTPTimeout,
		UserAgent: c.UserAgent,
		KeepHTML:  c.KeepHTML,
		Headers:   c.Headers,
	}
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags. Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:        DefaultLogLevel,
		JSONLog:         DefaultJSONLog,
		MaxPages:        DefaultMaxPages,
		MaxDepth:        DefaultMaxDepth,
		RateLimit:       DefaultRateLimit,
		HTTPTimeout:     DefaultHTTPTimeout,
		UserAgent:       DefaultUserAgent,
		CacheTTL:        DefaultCacheTTL,
		CacheMaxEntries: DefaultCacheMaxEntries,
		BatchPoolSize:   DefaultBatchPoolSize,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("SITECRAWL_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("SITECRAWL_MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxPages = n
		}
	}
	if v := os.Getenv("SITECRAWL_RATE_LIMIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RateLimit = d
		}
	}
	if v := os.Getenv("SITECRAWL_PROXY"); v != "" {
		for _, addr := range strings.Split(v, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				cfg.Proxies = append(cfg.Proxies, addr)
			}
		}
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("rate-limit"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.RateLimit = d
				}
			}
		}
		if f := cmd.Flags().Lookup("max-pages"); f != nil {
			if n, err := strconv.Atoi(f.Value.String()); err == nil && n > 0 {
				cfg.MaxPages = n
			}
		}
		if f := cmd.Flags().Lookup("max-depth"); f != nil {
			if n, err := strconv.Atoi(f.Value.String()); err == nil && n > 0 {
				cfg.MaxDepth = n
			}
		}
		if f := cmd.Flags().Lookup("keep-html"); f != nil {
			if f.Value.String() == "true" {
				cfg.KeepHTML = true
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if raw, err := cmd.Flags().GetStringArray("header"); err == nil && len(raw) > 0 {
			cfg.Headers = headers.ParseHeaders(raw)
		}
		if raw, err := cmd.Flags().GetStringArray("proxy"); err == nil && len(raw) > 0 {
			cfg.Proxies = raw
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
