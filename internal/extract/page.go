// Package extract turns raw HTML into the structured page model: metadata,
// body content, images, forms, links, and classified sections. Extraction
// degrades gracefully; missing elements yield absent fields, never errors.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	urlutil "github.com/sitesmith/crawl/internal/utils/url"
	"github.com/sitesmith/crawl/pkg/models"
)

// pageTypePrefixes maps URL path prefixes to page types, checked in order.
var pageTypePrefixes = []struct {
	prefix   string
	pageType models.PageType
}{
	{"/about", models.PageTypeAbout},
	{"/team", models.PageTypeTeam},
	{"/staff", models.PageTypeTeam},
	{"/service", models.PageTypeServices},
	{"/solution", models.PageTypeServices},
	{"/product", models.PageTypeProducts},
	{"/shop", models.PageTypeProducts},
	{"/store", models.PageTypeProducts},
	{"/portfolio", models.PageTypePortfolio},
	{"/work", models.PageTypePortfolio},
	{"/project", models.PageTypePortfolio},
	{"/pricing", models.PageTypePricing},
	{"/plans", models.PageTypePricing},
	{"/contact", models.PageTypeContact},
	{"/blog", models.PageTypeBlog},
	{"/news", models.PageTypeBlog},
	{"/article", models.PageTypeBlog},
	{"/faq", models.PageTypeFAQ},
	{"/privacy", models.PageTypeLegal},
	{"/terms", models.PageTypeLegal},
	{"/legal", models.PageTypeLegal},
}

// blogPostPattern recognizes date-stamped or ID-suffixed post paths such as
// /2024/03/some-post or /blog/some-post-123.
var blogPostPattern = regexp.MustCompile(`(?i)/\d{4}/\d{1,2}/|/(?:blog|news|article|post)s?/[^/]+|-\d+/?$`)

// ClassifyPageType derives the page type purely from the URL path.
func ClassifyPageType(path string) models.PageType {
	if path == "" || path == "/" {
		return models.PageTypeHome
	}
	lower := strings.ToLower(path)
	for _, entry := range pageTypePrefixes {
		if strings.HasPrefix(lower, entry.prefix) {
			if entry.pageType == models.PageTypeBlog && blogPostPattern.MatchString(lower) && strings.Count(strings.Trim(lower, "/"), "/") >= 1 {
				return models.PageTypeBlogPost
			}
			return entry.pageType
		}
	}
	if blogPostPattern.MatchString(lower) {
		return models.PageTypeBlogPost
	}
	return models.PageTypeOther
}

// Page parses one page's HTML into a CrawledPage. baseURL anchors relative
// resolution and the internal/external link partition.
func Page(html, pageURL string, depth int, baseURL string, loadTimeMs int64) (*models.CrawledPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	page := &models.CrawledPage{
		URL:      pageURL,
		Path:     urlutil.PathOf(pageURL),
		Depth:    depth,
		LoadTime: loadTimeMs,
	}
	page.PageType = ClassifyPageType(page.Path)

	page.Title = extractTitle(doc)
	page.Meta = extractMeta(doc, pageURL)
	page.Content = extractContent(doc)
	page.Images = extractImages(doc, pageURL)
	page.Forms = Forms(doc)
	page.Links = extractLinks(doc, pageURL, baseURL)
	page.Sections = Sections(doc, page.Images)

	log.Debug().
		Str("url", pageURL).
		Str("page_type", string(page.PageType)).
		Int("sections", len(page.Sections)).
		Int("images", len(page.Images)).
		Int("forms", len(page.Forms)).
		Msg("Page extracted")

	return page, nil
}

// extractTitle prefers <title>, falling back to the first <h1>.
func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func extractMeta(doc *goquery.Document, pageURL string) models.PageMeta {
	meta := models.PageMeta{}

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		content, _ := sel.Attr("content")
		if content == "" {
			return
		}
		if name, ok := sel.Attr("name"); ok {
			switch strings.ToLower(name) {
			case "description":
				meta.Description = strings.TrimSpace(content)
			case "keywords":
				meta.Keywords = strings.TrimSpace(content)
			}
		}
		if property, ok := sel.Attr("property"); ok {
			switch strings.ToLower(property) {
			case "og:title":
				meta.OgTitle = strings.TrimSpace(content)
			case "og:description":
				meta.OgDesc = strings.TrimSpace(content)
			case "og:image":
				meta.OgImage = urlutil.ResolveURL(pageURL, strings.TrimSpace(content))
			case "og:type":
				meta.OgType = strings.TrimSpace(content)
			}
		}
	})

	doc.Find("link[rel]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		rel, _ := sel.Attr("rel")
		if !strings.Contains(strings.ToLower(rel), "icon") {
			return true
		}
		if href, ok := sel.Attr("href"); ok && href != "" {
			meta.Favicon = urlutil.ResolveURL(pageURL, href)
			return false
		}
		return true
	})

	return meta
}

// extractContent gathers body text, excluding anything inside
// <nav>/<header>/<footer>; those are navigational chrome and would pollute
// section text downstream.
func extractContent(doc *goquery.Document) models.PageContent {
	content := models.PageContent{}

	for level := 1; level <= 6; level++ {
		tag := "h" + strconv.Itoa(level)
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			if inChrome(sel) {
				return
			}
			text := collapseSpace(sel.Text())
			if text != "" {
				content.Headings = append(content.Headings, models.Heading{Level: level, Text: text})
			}
		})
	}

	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if inChrome(sel) {
			return
		}
		text := collapseSpace(sel.Text())
		if text != "" {
			content.Paragraphs = append(content.Paragraphs, text)
		}
	})

	doc.Find("ul, ol").Each(func(_ int, sel *goquery.Selection) {
		if inChrome(sel) {
			return
		}
		var items []string
		sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			if text := collapseSpace(li.Text()); text != "" {
				items = append(items, text)
			}
		})
		if len(items) > 0 {
			content.Lists = append(content.Lists, items)
		}
	})

	return content
}

func extractImages(doc *goquery.Document, pageURL string) []models.PageImage {
	var images []models.PageImage
	seen := make(map[string]bool)

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		resolved := urlutil.ResolveURL(pageURL, src)
		if seen[resolved] {
			return
		}
		seen[resolved] = true

		alt, _ := sel.Attr("alt")
		img := models.PageImage{
			Src:    resolved,
			Alt:    strings.TrimSpace(alt),
			IsLogo: isLogoImage(sel, src, alt),
			IsHero: isHeroImage(sel),
		}
		if w, ok := sel.Attr("width"); ok {
			img.Width, _ = strconv.Atoi(w)
		}
		if h, ok := sel.Attr("height"); ok {
			img.Height, _ = strconv.Atoi(h)
		}
		images = append(images, img)
	})

	return images
}

// isLogoImage guesses whether an image is the site logo: a "logo" marker in
// its attributes, or placement inside header/nav within a home link.
func isLogoImage(sel *goquery.Selection, src, alt string) bool {
	class, _ := sel.Attr("class")
	id, _ := sel.Attr("id")
	haystack := strings.ToLower(class + " " + id + " " + alt + " " + src)
	if strings.Contains(haystack, "logo") {
		return true
	}
	if sel.ParentsFiltered("header, nav").Length() > 0 {
		if link := sel.ParentsFiltered("a[href]").First(); link.Length() > 0 {
			href, _ := link.Attr("href")
			if href == "/" || href == "" || strings.HasSuffix(href, "/#") {
				return true
			}
		}
	}
	return false
}

// isHeroImage guesses whether an image belongs to a hero region by its own
// class, an ancestor's class, or a large declared width.
func isHeroImage(sel *goquery.Selection) bool {
	class, _ := sel.Attr("class")
	if containsAny(strings.ToLower(class), heroMarkers) {
		return true
	}
	hero := false
	sel.Parents().EachWithBreak(func(_ int, parent *goquery.Selection) bool {
		pc, _ := parent.Attr("class")
		pid, _ := parent.Attr("id")
		if containsAny(strings.ToLower(pc+" "+pid), heroMarkers) {
			hero = true
			return false
		}
		return true
	})
	if hero {
		return true
	}
	if w, ok := sel.Attr("width"); ok {
		if width, err := strconv.Atoi(w); err == nil && width >= 800 {
			return true
		}
	}
	return false
}

var heroMarkers = []string{"hero", "banner", "jumbotron", "masthead", "cover", "splash"}

// extractLinks partitions a page's links by resolved hostname against the
// crawl's base hostname. Each list is deduplicated within the page.
func extractLinks(doc *goquery.Document, pageURL, baseURL string) models.PageLinks {
	links := models.PageLinks{}
	baseHost := urlutil.HostOf(baseURL)

	seenInternal := make(map[string]bool)
	seenExternal := make(map[string]bool)
	seenEmail := make(map[string]bool)
	seenPhone := make(map[string]bool)
	seenNav := make(map[string]bool)
	seenFooter := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == "#" || strings.HasPrefix(href, "javascript:") {
			return
		}

		switch {
		case strings.HasPrefix(href, "mailto:"):
			addr := strings.SplitN(strings.TrimPrefix(href, "mailto:"), "?", 2)[0]
			if addr != "" && !seenEmail[addr] {
				seenEmail[addr] = true
				links.Email = append(links.Email, addr)
			}
			return
		case strings.HasPrefix(href, "tel:"):
			num := strings.TrimPrefix(href, "tel:")
			if num != "" && !seenPhone[num] {
				seenPhone[num] = true
				links.Phone = append(links.Phone, num)
			}
			return
		}

		resolved := urlutil.ResolveURL(pageURL, href)
		host := urlutil.HostOf(resolved)
		if host == "" {
			return
		}

		if urlutil.SameSite(host, baseHost) {
			if !seenInternal[resolved] {
				seenInternal[resolved] = true
				links.Internal = append(links.Internal, resolved)
			}
			if sel.ParentsFiltered("nav, header").Length() > 0 && !seenNav[resolved] {
				seenNav[resolved] = true
				links.Nav = append(links.Nav, resolved)
			}
			if sel.ParentsFiltered("footer").Length() > 0 && !seenFooter[resolved] {
				seenFooter[resolved] = true
				links.Footer = append(links.Footer, resolved)
			}
		} else if !seenExternal[resolved] {
			seenExternal[resolved] = true
			links.External = append(links.External, resolved)
		}
	})

	return links
}

func inChrome(sel *goquery.Selection) bool {
	return sel.ParentsFiltered("nav, header, footer").Length() > 0
}

var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
