package config

import "fmt"

func validate(cfg *Config) error {
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.HTTPTimeout)
	}
	if cfg.MaxPages <= 0 || cfg.MaxPages > MaxCrawlPages {
		return fmt.Errorf("max-pages must be between 1 and %d, got %d", MaxCrawlPages, cfg.MaxPages)
	}
	if cfg.MaxDepth <= 0 || cfg.MaxDepth > MaxCrawlDepth {
		return fmt.Errorf("max-depth must be between 1 and %d, got %d", MaxCrawlDepth, cfg.MaxDepth)
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("rate-limit must not be negative, got %s", cfg.RateLimit)
	}
	if cfg.BatchPoolSize <= 0 || cfg.BatchPoolSize > MaxBatchPoolSize {
		return fmt.Errorf("pool size must be between 1 and %d, got %d", MaxBatchPoolSize, cfg.BatchPoolSize)
	}
	if cfg.CacheMaxEntries <= 0 {
		return fmt.Errorf("cache entries must be positive, got %d", cfg.CacheMaxEntries)
	}
	return nil
}
