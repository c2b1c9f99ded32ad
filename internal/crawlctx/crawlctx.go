// Package crawlctx attaches a crawl-scoped identifier to a context so log
// lines from concurrent batch crawls can be told apart.
package crawlctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

type key int

const crawlKey key = 0

// CrawlContext identifies one crawl invocation.
type CrawlContext struct {
	CrawlID   string
	StartTime time.Time
}

// WithCrawl returns a context carrying a fresh crawl identifier. An existing
// identifier is kept, so nesting is safe.
func WithCrawl(ctx context.Context) context.Context {
	if _, ok := ctx.Value(crawlKey).(*CrawlContext); ok {
		return ctx
	}
	return context.WithValue(ctx, crawlKey, &CrawlContext{
		CrawlID:   generateID(),
		StartTime: time.Now(),
	})
}

// FromContext returns the crawl context, or a placeholder when the context
// was never tagged.
func FromContext(ctx context.Context) *CrawlContext {
	if cc, ok := ctx.Value(crawlKey).(*CrawlContext); ok {
		return cc
	}
	return &CrawlContext{CrawlID: "untagged", StartTime: time.Now()}
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
