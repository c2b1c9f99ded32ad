package style

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sitesmith/crawl/pkg/models"
)

// Analysis is the layout summary of one crawled site used for style
// selection.
type Analysis struct {
	Layout     models.LayoutPattern       `json:"layout"`
	SectionMix map[models.SectionType]int `json:"sectionMix"`
}

// Cache stores analyses between requests. The lifecycle is owned by the
// caller; passing nil disables caching. Keeping the cache injected avoids
// hidden cross-request state.
type Cache interface {
	Get(key string) (*Analysis, bool)
	Set(key string, value *Analysis, ttl time.Duration) error
	Invalidate(key string)
}

// Analyzer computes site layout analyses with an injected cache.
type Analyzer struct {
	cache Cache
	ttl   time.Duration
}

// NewAnalyzer creates an Analyzer. cache may be nil.
func NewAnalyzer(cache Cache, ttl time.Duration) *Analyzer {
	return &Analyzer{cache: cache, ttl: ttl}
}

// Analyze returns the layout analysis for a crawled site, keyed by domain.
func (a *Analyzer) Analyze(site *models.CrawledSiteData) *Analysis {
	if site == nil {
		return &Analysis{Layout: models.LayoutUnknown}
	}

	if a.cache != nil {
		if cached, ok := a.cache.Get(site.Domain); ok {
			log.Debug().Str("domain", site.Domain).Msg("Layout analysis cache hit")
			return cached
		}
	}

	analysis := &Analysis{
		Layout:     DetectLayout(site.Pages),
		SectionMix: make(map[models.SectionType]int),
	}
	for _, page := range site.Pages {
		for _, section := range page.Sections {
			analysis.SectionMix[section.Type]++
		}
	}

	if a.cache != nil {
		_ = a.cache.Set(site.Domain, analysis, a.ttl)
	}
	return analysis
}

// Invalidate drops a cached analysis, for callers that re-crawl a site.
func (a *Analyzer) Invalidate(domain string) {
	if a.cache != nil {
		a.cache.Invalidate(domain)
	}
}

// DetectLayout votes across pages for the dominant layout pattern. Sidebar
// layouts cannot be recognized from section structure alone and are only
// reported when supplied by an upstream signal.
func DetectLayout(pages []models.CrawledPage) models.LayoutPattern {
	if len(pages) == 0 {
		return models.LayoutUnknown
	}

	heroVotes := 0
	gridVotes := 0
	singleVotes := 0

	for _, page := range pages {
		if len(page.Sections) > 0 && page.Sections[0].Type == models.SectionHero {
			heroVotes++
		}
		gridSections := 0
		for _, section := range page.Sections {
			switch section.Type {
			case models.SectionGallery, models.SectionPortfolio, models.SectionFeatures, models.SectionStats, models.SectionClients:
				gridSections++
			}
		}
		if gridSections >= 2 {
			gridVotes++
		}
		if len(page.Sections) <= 2 {
			singleVotes++
		}
	}

	majority := len(pages)/2 + 1
	switch {
	case gridVotes >= majority:
		return models.LayoutGridBased
	case heroVotes >= majority:
		return models.LayoutHeroCentric
	case singleVotes >= majority:
		return models.LayoutSingleColumn
	default:
		return models.LayoutUnknown
	}
}
