// Package assets downloads a crawled site's brand assets (logo, hero
// images, favicon) to disk with bounded concurrency and retry. The crawler
// itself never downloads assets; this runs after a crawl on demand.
package assets

import (
	"strings"

	"github.com/sitesmith/crawl/pkg/models"
)

// Collect gathers the downloadable brand asset URLs from a crawled site:
// the voted logo, the favicon, and every hero image, de-duplicated in
// first-seen order. Only absolute http(s) URLs qualify.
func Collect(data *models.CrawledSiteData) []string {
	if data == nil {
		return nil
	}

	var urls []string
	seen := make(map[string]bool)
	add := func(u string) {
		if u == "" || seen[u] {
			return
		}
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	}

	add(data.Brand.Logo)
	for _, page := range data.Pages {
		add(page.Meta.Favicon)
		for _, img := range page.Images {
			if img.IsLogo || img.IsHero {
				add(img.Src)
			}
		}
	}
	return urls
}
