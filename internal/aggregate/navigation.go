package aggregate

import (
	"math"
	"sort"
	"strings"

	urlutil "github.com/sitesmith/crawl/internal/utils/url"
	"github.com/sitesmith/crawl/pkg/models"
)

// canonicalPageOrder fixes the display order of known navigation paths;
// unknown paths sort after all known ones in first-seen order.
var canonicalPageOrder = []string{"", "about", "services", "products", "portfolio", "blog", "contact"}

// pathOrderAliases folds common path spellings onto a canonical slot.
var pathOrderAliases = map[string]string{
	"home":      "",
	"index":     "",
	"about-us":  "about",
	"aboutus":   "about",
	"service":   "services",
	"solutions": "services",
	"product":   "products",
	"shop":      "products",
	"store":     "products",
	"work":      "portfolio",
	"projects":  "portfolio",
	"news":      "blog",
	"articles":  "blog",
	"contact-us": "contact",
	"contactus":  "contact",
}

// Navigation builds the primary and footer navigation by cross-page
// link-frequency voting: a link qualifies only if it appears on at least
// ceil(pageCount * 0.5) distinct pages. Majority presence is the operative
// definition of "this is navigation, not incidental content".
func Navigation(pages []models.CrawledPage) models.NavigationData {
	if len(pages) == 0 {
		return models.NavigationData{}
	}
	threshold := int(math.Ceil(float64(len(pages)) * 0.5))

	primarySource := func(page models.CrawledPage) []string {
		if len(page.Links.Nav) > 0 {
			return page.Links.Nav
		}
		return page.Links.Internal
	}
	footerSource := func(page models.CrawledPage) []string {
		return page.Links.Footer
	}

	return models.NavigationData{
		Primary: voteNav(pages, primarySource, threshold),
		Footer:  voteNav(pages, footerSource, threshold),
	}
}

// voteNav counts each path once per page, applies the frequency threshold,
// and orders qualifiers by the canonical page-order table.
func voteNav(pages []models.CrawledPage, source func(models.CrawledPage) []string, threshold int) []models.NavItem {
	counts := make(map[string]int)
	var order []string

	for _, page := range pages {
		seen := make(map[string]bool)
		for _, link := range source(page) {
			path := normalizeNavPath(link)
			if seen[path] {
				continue
			}
			seen[path] = true
			if _, ok := counts[path]; !ok {
				order = append(order, path)
			}
			counts[path]++
		}
	}

	var items []models.NavItem
	firstSeen := make(map[string]int, len(order))
	for i, path := range order {
		firstSeen[path] = i
		if counts[path] < threshold {
			continue
		}
		items = append(items, models.NavItem{
			Label: labelForPath(path),
			Path:  path,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		oi, oj := canonicalRank(items[i].Path), canonicalRank(items[j].Path)
		if oi != oj {
			return oi < oj
		}
		return firstSeen[items[i].Path] < firstSeen[items[j].Path]
	})

	return items
}

// normalizeNavPath reduces an internal link to its trailing-slash-free path.
func normalizeNavPath(link string) string {
	path := urlutil.PathOf(link)
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func canonicalRank(path string) int {
	slug := strings.ToLower(strings.Trim(path, "/"))
	if i := strings.Index(slug, "/"); i != -1 {
		slug = slug[:i]
	}
	if alias, ok := pathOrderAliases[slug]; ok {
		slug = alias
	}
	for i, known := range canonicalPageOrder {
		if slug == known {
			return i
		}
	}
	return len(canonicalPageOrder)
}

// labelForPath humanizes a path slug to Title Case ("/our-team" -> "Our Team").
func labelForPath(path string) string {
	slug := strings.Trim(path, "/")
	if slug == "" {
		return "Home"
	}
	if i := strings.LastIndex(slug, "/"); i != -1 {
		slug = slug[i+1:]
	}
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
