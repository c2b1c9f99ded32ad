// Package aggregate derives the cross-page site model from the finalized
// page list: brand identity, navigation, and global elements. Two named
// strategies are used throughout: frequency-threshold voting (logo,
// navigation) and first-found-wins (social links, contact info).
package aggregate

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sitesmith/crawl/pkg/models"
)

const maxTaglineLen = 100
const maxTaglineHeadingLen = 80

// Brand votes on a single logo, company name, and tagline across the page
// set. Colors and fonts are computed separately over raw HTML and passed in.
func Brand(pages []models.CrawledPage, colors models.BrandColors, fonts []string) models.BrandData {
	brand := models.BrandData{Colors: colors, Fonts: fonts}

	brand.Logo, brand.LogoAlt = voteLogo(pages)

	home := homepage(pages)

	if brand.LogoAlt != "" {
		brand.CompanyName = brand.LogoAlt
	} else if home != nil {
		brand.CompanyName = companyNameFromTitle(home.Title)
	}

	if home != nil {
		brand.Tagline = tagline(home)
	}

	log.Debug().
		Str("logo", brand.Logo).
		Str("company", brand.CompanyName).
		Msg("Brand aggregated")

	return brand
}

// voteLogo picks the logo-flagged image that appears on the largest number
// of distinct pages, by identical resolved src. Ties break by first-seen
// order in the crawl.
func voteLogo(pages []models.CrawledPage) (src, alt string) {
	counts := make(map[string]int)
	alts := make(map[string]string)
	var order []string

	for _, page := range pages {
		seen := make(map[string]bool)
		for _, img := range page.Images {
			if !img.IsLogo || seen[img.Src] {
				continue
			}
			seen[img.Src] = true
			if _, ok := counts[img.Src]; !ok {
				order = append(order, img.Src)
				alts[img.Src] = img.Alt
			}
			counts[img.Src]++
		}
	}

	best := ""
	bestCount := 0
	for _, candidate := range order {
		if counts[candidate] > bestCount {
			best = candidate
			bestCount = counts[candidate]
		}
	}
	return best, alts[best]
}

func homepage(pages []models.CrawledPage) *models.CrawledPage {
	for i := range pages {
		if pages[i].PageType == models.PageTypeHome {
			return &pages[i]
		}
	}
	if len(pages) > 0 {
		return &pages[0]
	}
	return nil
}

// companyNameFromTitle takes the portion of a title before the first
// separator ("Acme Plumbing | Home" yields "Acme Plumbing").
func companyNameFromTitle(title string) string {
	for _, sep := range []string{"|", " - ", "–", "—"} {
		if i := strings.Index(title, sep); i > 0 {
			return strings.TrimSpace(title[:i])
		}
	}
	return strings.TrimSpace(title)
}

// tagline prefers a short homepage meta description, then a short first <h2>.
func tagline(home *models.CrawledPage) string {
	if desc := home.Meta.Description; desc != "" && len(desc) < maxTaglineLen {
		return desc
	}
	for _, heading := range home.Content.Headings {
		if heading.Level == 2 && len(heading.Text) < maxTaglineHeadingLen {
			return heading.Text
		}
	}
	return ""
}
