package aggregate

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	urlutil "github.com/sitesmith/crawl/internal/utils/url"
	"github.com/sitesmith/crawl/pkg/models"
)

// socialHosts maps hostnames to platform names. Subdomains match too
// (www.facebook.com, m.facebook.com).
var socialHosts = map[string]string{
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"facebook.com":  "facebook",
	"instagram.com": "instagram",
	"linkedin.com":  "linkedin",
	"youtube.com":   "youtube",
	"youtu.be":      "youtube",
	"tiktok.com":    "tiktok",
	"pinterest.com": "pinterest",
	"github.com":    "github",
}

// Globals resolves site-wide elements with a first-found-wins strategy in
// crawl order: social links, contact email, and contact phone are typically
// unique per site, so the earliest sighting wins over any vote.
func Globals(pages []models.CrawledPage) models.GlobalElements {
	global := models.GlobalElements{}
	seenPlatforms := make(map[string]bool)

	for _, page := range pages {
		for _, link := range page.Links.External {
			platform, ok := socialPlatform(link)
			if !ok || seenPlatforms[platform] {
				continue
			}
			seenPlatforms[platform] = true
			global.SocialLinks = append(global.SocialLinks, models.SocialLink{
				Platform: platform,
				URL:      link,
			})
		}

		if global.Email == "" && len(page.Links.Email) > 0 {
			global.Email = page.Links.Email[0]
		}
		if global.Phone == "" && len(page.Links.Phone) > 0 {
			global.Phone = normalizePhone(page.Links.Phone[0])
		}
	}

	return global
}

func socialPlatform(link string) (string, bool) {
	host := urlutil.HostOf(link)
	if host == "" {
		return "", false
	}
	for candidate, platform := range socialHosts {
		if host == candidate || strings.HasSuffix(host, "."+candidate) {
			return platform, true
		}
	}
	return "", false
}

// normalizePhone formats a tel: number to E.164 when it parses; otherwise
// the raw value is kept, since a displayed number is better than none.
func normalizePhone(raw string) string {
	cleaned := strings.TrimSpace(raw)
	region := ""
	if !strings.HasPrefix(cleaned, "+") {
		region = "US"
	}
	number, err := phonenumbers.Parse(cleaned, region)
	if err != nil {
		return cleaned
	}
	if !phonenumbers.IsPossibleNumber(number) {
		return cleaned
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}
