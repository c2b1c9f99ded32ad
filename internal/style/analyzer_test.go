package style

import (
	"testing"
	"time"

	"github.com/sitesmith/crawl/internal/cache"
	"github.com/sitesmith/crawl/pkg/models"
)

func heroPage() models.CrawledPage {
	return models.CrawledPage{Sections: []models.PageSection{
		{Type: models.SectionHero},
		{Type: models.SectionServices},
		{Type: models.SectionFooter},
	}}
}

func gridPage() models.CrawledPage {
	return models.CrawledPage{Sections: []models.PageSection{
		{Type: models.SectionAbout},
		{Type: models.SectionGallery},
		{Type: models.SectionFeatures},
	}}
}

func TestDetectLayout_HeroMajority(t *testing.T) {
	pages := []models.CrawledPage{heroPage(), heroPage(), gridPage()}
	if got := DetectLayout(pages); got != models.LayoutHeroCentric {
		t.Errorf("Expected hero-centric, got %s", got)
	}
}

func TestDetectLayout_GridWinsOverHero(t *testing.T) {
	// Grid votes are checked before hero votes.
	page := models.CrawledPage{Sections: []models.PageSection{
		{Type: models.SectionHero},
		{Type: models.SectionGallery},
		{Type: models.SectionStats},
	}}
	pages := []models.CrawledPage{page, page}
	if got := DetectLayout(pages); got != models.LayoutGridBased {
		t.Errorf("Expected grid-based, got %s", got)
	}
}

func TestDetectLayout_SingleColumn(t *testing.T) {
	page := models.CrawledPage{Sections: []models.PageSection{
		{Type: models.SectionAbout},
		{Type: models.SectionFooter},
	}}
	pages := []models.CrawledPage{page, page, page}
	if got := DetectLayout(pages); got != models.LayoutSingleColumn {
		t.Errorf("Expected single-column, got %s", got)
	}
}

func TestDetectLayout_NoMajority(t *testing.T) {
	long := models.CrawledPage{Sections: []models.PageSection{
		{Type: models.SectionAbout},
		{Type: models.SectionServices},
		{Type: models.SectionContact},
	}}
	pages := []models.CrawledPage{heroPage(), gridPage(), long, long}
	if got := DetectLayout(pages); got != models.LayoutUnknown {
		t.Errorf("Expected unknown without a majority, got %s", got)
	}
}

func TestDetectLayout_Empty(t *testing.T) {
	if got := DetectLayout(nil); got != models.LayoutUnknown {
		t.Errorf("Expected unknown for no pages, got %s", got)
	}
}

func TestAnalyzer_ComputesSectionMix(t *testing.T) {
	analyzer := NewAnalyzer(nil, 0)
	site := &models.CrawledSiteData{
		Domain: "acme.test",
		Pages:  []models.CrawledPage{heroPage(), heroPage()},
	}

	analysis := analyzer.Analyze(site)
	if analysis.Layout != models.LayoutHeroCentric {
		t.Errorf("Expected hero-centric layout, got %s", analysis.Layout)
	}
	if analysis.SectionMix[models.SectionHero] != 2 {
		t.Errorf("Expected 2 hero sections counted, got %d", analysis.SectionMix[models.SectionHero])
	}
	if analysis.SectionMix[models.SectionServices] != 2 {
		t.Errorf("Expected 2 services sections counted, got %d", analysis.SectionMix[models.SectionServices])
	}
}

func TestAnalyzer_CachesByDomain(t *testing.T) {
	mc := cache.NewMemory[*Analysis](8)
	defer mc.Close()
	analyzer := NewAnalyzer(mc, time.Minute)

	site := &models.CrawledSiteData{
		Domain: "acme.test",
		Pages:  []models.CrawledPage{heroPage()},
	}

	first := analyzer.Analyze(site)

	// A second call with different pages must hit the cache, not recompute.
	site.Pages = []models.CrawledPage{gridPage(), gridPage()}
	second := analyzer.Analyze(site)
	if second != first {
		t.Error("Expected cached analysis returned on second call")
	}

	analyzer.Invalidate("acme.test")
	third := analyzer.Analyze(site)
	if third == first {
		t.Error("Expected recomputation after Invalidate")
	}
	if third.Layout != models.LayoutGridBased {
		t.Errorf("Expected grid-based after re-analysis, got %s", third.Layout)
	}
}

func TestAnalyzer_NilSite(t *testing.T) {
	analyzer := NewAnalyzer(nil, 0)
	analysis := analyzer.Analyze(nil)
	if analysis.Layout != models.LayoutUnknown {
		t.Errorf("Expected unknown layout for nil site, got %s", analysis.Layout)
	}
}
