// Package style deterministically maps a crawled site's dominant layout and
// business industry to one of a fixed palette of design styles.
package style

import (
	"strings"

	"github.com/sitesmith/crawl/pkg/models"
)

// AllStyles is the full design palette, in canonical order.
var AllStyles = []models.DesignStyle{
	models.StyleModernMinimal,
	models.StyleBoldVibrant,
	models.StyleClassicPro,
	models.StyleElegantLuxury,
	models.StylePlayfulCreative,
	models.StyleTechStartup,
	models.StyleWarmOrganic,
	models.StyleDarkMode,
	models.StyleEditorial,
	models.StyleBrutalist,
	models.StyleGradientRich,
	models.StyleMonochrome,
	models.StyleRetro,
	models.StyleCorporateBlue,
	models.StyleArtisanCraft,
	models.StyleGeometric,
}

// layoutCompatibility narrows the palette by the extracted dominant layout.
var layoutCompatibility = map[models.LayoutPattern][]models.DesignStyle{
	models.LayoutHeroCentric: {
		models.StyleModernMinimal, models.StyleBoldVibrant, models.StyleTechStartup,
		models.StyleGradientRich, models.StyleElegantLuxury, models.StyleDarkMode,
		models.StyleCorporateBlue,
	},
	models.LayoutGridBased: {
		models.StyleModernMinimal, models.StyleGeometric, models.StylePlayfulCreative,
		models.StyleEditorial, models.StyleBrutalist, models.StyleMonochrome,
		models.StyleTechStartup,
	},
	models.LayoutSingleColumn: {
		models.StyleEditorial, models.StyleClassicPro, models.StyleModernMinimal,
		models.StyleWarmOrganic, models.StyleArtisanCraft, models.StyleRetro,
	},
	models.LayoutSidebar: {
		models.StyleClassicPro, models.StyleCorporateBlue, models.StyleEditorial,
		models.StyleMonochrome, models.StyleDarkMode,
	},
}

// industryPreference is matched by substring against a normalized industry
// string; the first matching entry wins. No match falls back to the full
// palette.
var industryPreference = []struct {
	Keywords []string
	Styles   []models.DesignStyle
}{
	{[]string{"restaurant", "cafe", "food", "bakery", "catering"},
		[]models.DesignStyle{models.StyleWarmOrganic, models.StyleArtisanCraft, models.StyleElegantLuxury, models.StyleRetro, models.StyleBoldVibrant}},
	{[]string{"law", "legal", "attorney"},
		[]models.DesignStyle{models.StyleClassicPro, models.StyleCorporateBlue, models.StyleElegantLuxury, models.StyleMonochrome}},
	{[]string{"health", "medical", "dental", "clinic", "therapy"},
		[]models.DesignStyle{models.StyleModernMinimal, models.StyleCorporateBlue, models.StyleClassicPro, models.StyleWarmOrganic}},
	{[]string{"tech", "software", "saas", "startup", "app"},
		[]models.DesignStyle{models.StyleTechStartup, models.StyleModernMinimal, models.StyleGradientRich, models.StyleDarkMode, models.StyleGeometric}},
	{[]string{"beauty", "salon", "spa", "cosmetic"},
		[]models.DesignStyle{models.StyleElegantLuxury, models.StyleWarmOrganic, models.StylePlayfulCreative, models.StyleModernMinimal}},
	{[]string{"construction", "roofing", "plumbing", "contractor", "hvac", "electric"},
		[]models.DesignStyle{models.StyleBoldVibrant, models.StyleClassicPro, models.StyleCorporateBlue, models.StyleBrutalist}},
	{[]string{"real estate", "realty", "property"},
		[]models.DesignStyle{models.StyleElegantLuxury, models.StyleModernMinimal, models.StyleClassicPro, models.StyleCorporateBlue}},
	{[]string{"fitness", "gym", "yoga", "crossfit"},
		[]models.DesignStyle{models.StyleBoldVibrant, models.StyleDarkMode, models.StyleTechStartup, models.StyleWarmOrganic}},
	{[]string{"education", "school", "tutor", "course"},
		[]models.DesignStyle{models.StyleClassicPro, models.StylePlayfulCreative, models.StyleCorporateBlue, models.StyleEditorial}},
	{[]string{"finance", "accounting", "insurance", "bank"},
		[]models.DesignStyle{models.StyleCorporateBlue, models.StyleClassicPro, models.StyleMonochrome, models.StyleModernMinimal}},
	{[]string{"creative", "design", "photo", "art", "studio"},
		[]models.DesignStyle{models.StylePlayfulCreative, models.StyleEditorial, models.StyleBrutalist, models.StyleGeometric, models.StyleMonochrome}},
	{[]string{"nonprofit", "charity", "church", "community"},
		[]models.DesignStyle{models.StyleWarmOrganic, models.StyleClassicPro, models.StylePlayfulCreative, models.StyleEditorial}},
}

// Request carries the signals for one style selection.
type Request struct {
	LeadID       string
	Industry     string
	Layout       models.LayoutPattern
	RecentStyles []models.DesignStyle
}

// Select picks a design style deterministically: the same request always
// yields the same style across calls and process restarts, so selection
// never uses randomness or the clock.
func Select(req Request) models.DesignStyle {
	layoutSet := layoutCompatibility[req.Layout]
	if len(layoutSet) == 0 {
		layoutSet = AllStyles
	}

	industrySet := industryStyles(req.Industry)

	candidates := intersect(layoutSet, industrySet)
	if len(candidates) == 0 {
		candidates = layoutSet
	}

	// Recently used styles are excluded unless that would leave nothing,
	// in which case repetition beats failure.
	if filtered := exclude(candidates, req.RecentStyles); len(filtered) > 0 {
		candidates = filtered
	}

	idx := int(fold32(req.LeadID)) % len(candidates)
	if idx < 0 {
		idx = -idx
	}
	return candidates[idx]
}

func industryStyles(industry string) []models.DesignStyle {
	normalized := strings.ToLower(strings.TrimSpace(industry))
	if normalized == "" {
		return AllStyles
	}
	for _, entry := range industryPreference {
		for _, keyword := range entry.Keywords {
			if strings.Contains(normalized, keyword) {
				return entry.Styles
			}
		}
	}
	return AllStyles
}

// fold32 is a rolling hash (shift-and-subtract-and-add per character) folded
// to a signed 32-bit value.
func fold32(s string) int32 {
	var h int32
	for _, c := range []byte(s) {
		h = (h << 5) - h + int32(c)
	}
	return h
}

func intersect(a, b []models.DesignStyle) []models.DesignStyle {
	inB := make(map[models.DesignStyle]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	var out []models.DesignStyle
	for _, s := range a {
		if inB[s] {
			out = append(out, s)
		}
	}
	return out
}

func exclude(candidates, recent []models.DesignStyle) []models.DesignStyle {
	if len(recent) == 0 {
		return candidates
	}
	skip := make(map[models.DesignStyle]bool, len(recent))
	for _, s := range recent {
		skip[s] = true
	}
	var out []models.DesignStyle
	for _, s := range candidates {
		if !skip[s] {
			out = append(out, s)
		}
	}
	return out
}
