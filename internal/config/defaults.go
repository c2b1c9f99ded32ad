package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel        = "info"
	DefaultJSONLog         = false
	DefaultUserAgent       = "SiteSmithBot/1.0 (+https://github.com/sitesmith/crawl)"
	DefaultMaxPages        = 20
	DefaultMaxDepth        = 3
	DefaultRateLimit       = 1 * time.Second
	DefaultHTTPTimeout     = 15 * time.Second
	DefaultCacheTTL        = 15 * time.Minute
	DefaultCacheMaxEntries = 256
	DefaultBatchPoolSize   = 5
	MaxBatchPoolSize       = 20
	MaxCrawlPages          = 200
	MaxCrawlDepth          = 10
)
