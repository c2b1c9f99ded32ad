package style

import (
	"testing"

	"github.com/sitesmith/crawl/pkg/models"
)

func TestSelect_Deterministic(t *testing.T) {
	req := Request{
		LeadID:   "lead-42",
		Industry: "roofing",
		Layout:   models.LayoutHeroCentric,
	}

	first := Select(req)
	for i := 0; i < 10; i++ {
		if got := Select(req); got != first {
			t.Fatalf("Expected stable selection, got %s then %s", first, got)
		}
	}
}

func TestSelect_RespectsLayoutAndIndustry(t *testing.T) {
	req := Request{
		LeadID:   "lead-7",
		Industry: "law firm",
		Layout:   models.LayoutSidebar,
	}

	got := Select(req)
	// Sidebar ∧ legal leaves classic-professional, corporate-blue, monochrome.
	allowed := map[models.DesignStyle]bool{
		models.StyleClassicPro:    true,
		models.StyleCorporateBlue: true,
		models.StyleMonochrome:    true,
	}
	if !allowed[got] {
		t.Errorf("Expected a layout-and-industry compatible style, got %s", got)
	}
}

func TestSelect_AvoidsRecentStyles(t *testing.T) {
	req := Request{
		LeadID:   "lead-7",
		Industry: "law firm",
		Layout:   models.LayoutSidebar,
		RecentStyles: []models.DesignStyle{
			models.StyleClassicPro,
			models.StyleCorporateBlue,
		},
	}

	if got := Select(req); got != models.StyleMonochrome {
		t.Errorf("Expected the only non-recent candidate, got %s", got)
	}
}

func TestSelect_RepetitionBeatsFailure(t *testing.T) {
	req := Request{
		LeadID:   "lead-7",
		Industry: "law firm",
		Layout:   models.LayoutSidebar,
		RecentStyles: []models.DesignStyle{
			models.StyleClassicPro,
			models.StyleCorporateBlue,
			models.StyleMonochrome,
		},
	}

	got := Select(req)
	allowed := map[models.DesignStyle]bool{
		models.StyleClassicPro:    true,
		models.StyleCorporateBlue: true,
		models.StyleMonochrome:    true,
	}
	if !allowed[got] {
		t.Errorf("Expected a repeat rather than no style, got %s", got)
	}
}

func TestSelect_UnknownLayoutAndIndustryFallsBackToPalette(t *testing.T) {
	req := Request{LeadID: "lead-1", Industry: "zeppelin repair", Layout: models.LayoutUnknown}

	got := Select(req)
	found := false
	for _, s := range AllStyles {
		if s == got {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected a palette style, got %s", got)
	}
}

func TestSelect_DifferentLeadsSpread(t *testing.T) {
	// Not a distribution test; just confirm the lead ID participates.
	seen := make(map[models.DesignStyle]bool)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		seen[Select(Request{LeadID: id, Layout: models.LayoutHeroCentric})] = true
	}
	if len(seen) < 2 {
		t.Errorf("Expected lead ID to vary selection, got %d distinct styles", len(seen))
	}
}

func TestIndustryStyles_SubstringMatch(t *testing.T) {
	got := industryStyles("Residential Roofing & Gutters")
	if len(got) == 0 || got[0] != models.StyleBoldVibrant {
		t.Errorf("Expected construction preference list, got %v", got)
	}
	if all := industryStyles(""); len(all) != len(AllStyles) {
		t.Errorf("Expected full palette for empty industry, got %d styles", len(all))
	}
}

func TestFold32_StableAndOrderSensitive(t *testing.T) {
	if fold32("abc") != fold32("abc") {
		t.Error("Expected identical hash for identical input")
	}
	if fold32("abc") == fold32("cba") {
		t.Error("Expected order-sensitive hash")
	}
	if fold32("") != 0 {
		t.Errorf("Expected zero hash for empty string, got %d", fold32(""))
	}
}
