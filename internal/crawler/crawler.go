// Package crawler owns the bounded breadth-first traversal of a site: the
// visited set, the FIFO frontier, the politeness delay, and the page/depth
// budget, plus the post-crawl aggregation into a single site model.
package crawler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sitesmith/crawl/internal/aggregate"
	"github.com/sitesmith/crawl/internal/crawlctx"
	"github.com/sitesmith/crawl/internal/extract"
	"github.com/sitesmith/crawl/internal/fetch"
	"github.com/sitesmith/crawl/internal/ratelimit"
	urlutil "github.com/sitesmith/crawl/internal/utils/url"
	"github.com/sitesmith/crawl/pkg/models"
)

// Default crawl budget and politeness settings.
const (
	DefaultMaxPages  = 20
	DefaultMaxDepth  = 3
	DefaultRateLimit = 1 * time.Second
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "SiteSmithBot/1.0 (+https://github.com/sitesmith/crawl)"
)

// Crawler runs site crawls. A single Crawler may serve many crawls, but all
// per-crawl state (visited set, frontier, page list) is owned by one Crawl
// call and never shared; callers wanting concurrency run separate crawls.
type Crawler struct {
	client        *http.Client
	screenshotter Screenshotter
}

// New creates a Crawler with dependency injection. screenshotter may be nil
// to disable screenshot capture.
func New(client *http.Client, screenshotter Screenshotter) *Crawler {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &Crawler{client: client, screenshotter: screenshotter}
}

type frontierItem struct {
	url   string
	depth int
}

// Crawl performs a bounded breadth-first crawl from seedURL and aggregates
// the result. A page-level failure never aborts the crawl; the only error
// return is an unusable seed URL. Callers should treat a result with zero
// pages as a failure condition even though no error is returned.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, cfg models.CrawlConfig, onProgress ProgressFunc) (*models.CrawledSiteData, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = crawlctx.WithCrawl(ctx)
	logger := log.With().Str("crawl_id", crawlctx.FromContext(ctx).CrawlID).Logger()
	cfg = withDefaults(cfg)

	rep := newReporter(onProgress)
	rep.setPhase(models.PhaseInitializing)

	seed, err := urlutil.NormalizeSeed(seedURL)
	if err != nil {
		rep.setPhase(models.PhaseError)
		return nil, err
	}
	domain := urlutil.HostOf(seed)

	fetcher := fetch.New(c.client, cfg.Timeout, cfg.UserAgent, cfg.Headers)
	limiter := ratelimit.NewIntervalLimiter(cfg.RateLimit)

	start := time.Now()
	logger.Info().
		Str("seed", seed).
		Int("max_pages", cfg.MaxPages).
		Int("max_depth", cfg.MaxDepth).
		Msg("Starting crawl")

	rep.setPhase(models.PhaseDiscovering)

	visited := make(map[string]bool)
	queue := []frontierItem{{url: seed, depth: 0}}
	discovered := 1
	var pages []models.CrawledPage
	var rawPages []string

	for len(queue) > 0 && len(pages) < cfg.MaxPages {
		item := queue[0]
		queue = queue[1:]

		key := urlutil.NormalizeForVisit(item.url)
		if visited[key] || item.depth > cfg.MaxDepth {
			continue
		}
		visited[key] = true

		if err := limiter.Wait(ctx); err != nil {
			rep.pageFailed(item.url, err)
			break
		}

		rep.startPage(item.url, len(queue))

		result, err := fetcher.FetchPage(ctx, item.url)
		if err != nil {
			logger.Warn().
				Str("url", item.url).
				Str("kind", string(fetch.Classify(err))).
				Err(err).
				Msg("Page fetch failed")
			rep.pageFailed(item.url, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if result == nil {
			// Non-HTML response: an asset link, not a page.
			continue
		}

		page, err := extract.Page(result.HTML, item.url, item.depth, seed, result.LoadTime.Milliseconds())
		if err != nil {
			rep.pageFailed(item.url, err)
			continue
		}
		rawPages = append(rawPages, result.HTML)
		if cfg.KeepHTML {
			page.RawHTML = result.HTML
		}
		pages = append(pages, *page)

		if item.depth < cfg.MaxDepth {
			for _, link := range page.Links.Internal {
				if !visited[urlutil.NormalizeForVisit(link)] {
					queue = append(queue, frontierItem{url: link, depth: item.depth + 1})
					discovered++
				}
			}
		}

		rep.setPhase(models.PhaseCrawling)
		rep.pageCrawled(page, discovered, len(queue))
	}

	rep.setPhase(models.PhaseAggregating)

	colors := extract.ColorsFromHTML(rawPages)
	fonts := extract.FontsFromHTML(rawPages)

	data := &models.CrawledSiteData{
		Domain:     domain,
		SourceURL:  seed,
		CrawledAt:  start,
		Pages:      pages,
		Brand:      aggregate.Brand(pages, colors, fonts),
		Navigation: aggregate.Navigation(pages),
		Global:     aggregate.Globals(pages),
		Errors:     rep.errors(),
	}
	data.Stats = buildStats(pages, discovered, data.Errors)

	if c.screenshotter != nil {
		if shot, err := c.screenshotter.Capture(ctx, seed); err != nil {
			logger.Warn().Err(err).Msg("Screenshot capture failed")
		} else {
			data.Screenshot = shot
		}
	}

	data.CrawlDuration = time.Since(start)
	rep.setPhase(models.PhaseComplete)

	logger.Info().
		Int("pages", len(pages)).
		Int("errors", len(data.Errors)).
		Dur("duration", data.CrawlDuration).
		Msg("Crawl complete")

	return data, nil
}

func withDefaults(cfg models.CrawlConfig) models.CrawlConfig {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return cfg
}

func buildStats(pages []models.CrawledPage, discovered int, errs []models.PageError) models.CrawlStats {
	stats := models.CrawlStats{
		PagesCrawled:    len(pages),
		PagesDiscovered: discovered,
		ErrorCount:      len(errs),
	}
	for _, page := range pages {
		stats.SectionsFound += len(page.Sections)
		stats.ImagesFound += len(page.Images)
		stats.FormsFound += len(page.Forms)
	}
	return stats
}
