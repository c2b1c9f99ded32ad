// Package batch runs independent site crawls with bounded concurrency. The
// crawler itself is strictly serial per site; the pool here is the caller's
// concurrency knob across sites.
package batch

import (
	"context"
	"sync"

	"github.com/sitesmith/crawl/internal/crawler"
	"github.com/sitesmith/crawl/pkg/models"
)

// DefaultConcurrency is the fixed pool size for batch analysis.
const DefaultConcurrency = 5

// SiteCrawler is the crawl entry point the analyzer fans out over.
type SiteCrawler interface {
	Crawl(ctx context.Context, seedURL string, cfg models.CrawlConfig, onProgress crawler.ProgressFunc) (*models.CrawledSiteData, error)
}

// Result is the outcome of one seed's crawl.
type Result struct {
	Seed string
	Data *models.CrawledSiteData
	Err  error
}

// Analyzer crawls many independent sites concurrently.
type Analyzer struct {
	crawler     SiteCrawler
	concurrency int
}

// New creates an Analyzer. Non-positive concurrency uses the default pool.
func New(c SiteCrawler, concurrency int) *Analyzer {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Analyzer{crawler: c, concurrency: concurrency}
}

// AnalyzeAll crawls every seed with at most the pool size in flight. Results
// arrive in completion order; the channel closes when all seeds are done or
// the context is cancelled.
func (a *Analyzer) AnalyzeAll(ctx context.Context, seeds []string, cfg models.CrawlConfig) <-chan Result {
	results := make(chan Result, len(seeds))
	sem := make(chan struct{}, a.concurrency)

	var wg sync.WaitGroup

	go func() {
		for _, seed := range seeds {
			select {
			case <-ctx.Done():
				results <- Result{Seed: seed, Err: ctx.Err()}
				continue
			case sem <- struct{}{}:
			}

			wg.Add(1)
			go func(seed string) {
				defer wg.Done()
				defer func() { <-sem }()

				data, err := a.crawler.Crawl(ctx, seed, cfg, nil)
				results <- Result{Seed: seed, Data: data, Err: err}
			}(seed)
		}

		wg.Wait()
		close(results)
	}()

	return results
}
