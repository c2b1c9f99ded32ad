package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sitesmith/crawl/pkg/models"
)

const (
	maxSectionSnippets = 6
	maxSnippetLen      = 300
	maxSectionImages   = 4
)

// sectionRule pairs a section type with the class/id substrings and the
// heading-text pattern that identify it. Rules are evaluated in order; the
// first match wins.
type sectionRule struct {
	Type     models.SectionType
	Markers  []string
	Headings *regexp.Regexp
}

// sectionRules is the classification table. Kept as data so the tables can
// be tested and extended independently of traversal logic.
var sectionRules = []sectionRule{
	{models.SectionHero, []string{"hero", "banner", "jumbotron", "masthead", "cover", "intro", "splash"},
		regexp.MustCompile(`(?i)welcome to|^we (are|build|make|help)`)},
	{models.SectionAbout, []string{"about", "story", "who-we-are", "mission", "history"},
		regexp.MustCompile(`(?i)about us|our story|who we are|founded in|our mission`)},
	{models.SectionServices, []string{"service", "offering", "solution", "what-we-do"},
		regexp.MustCompile(`(?i)our services|what we (do|offer)|solutions`)},
	{models.SectionFeatures, []string{"feature", "benefit", "why-us", "advantage"},
		regexp.MustCompile(`(?i)features|benefits|why (choose|us)`)},
	{models.SectionTeam, []string{"team", "staff", "people", "member", "crew"},
		regexp.MustCompile(`(?i)(meet |our |the )*team$|our people|our staff`)},
	{models.SectionTestimonials, []string{"testimonial", "review", "quote", "feedback"},
		regexp.MustCompile(`(?i)testimonial|what (our|people|clients) say|reviews`)},
	{models.SectionGallery, []string{"gallery", "carousel", "slideshow", "photos"},
		regexp.MustCompile(`(?i)gallery|photos`)},
	{models.SectionPortfolio, []string{"portfolio", "work", "project", "case-stud", "showcase"},
		regexp.MustCompile(`(?i)our work|portfolio|case stud|recent projects`)},
	{models.SectionPricing, []string{"pricing", "price", "plan", "package", "tier"},
		regexp.MustCompile(`(?i)pricing|plans|packages|per (month|year)`)},
	{models.SectionCTA, []string{"cta", "call-to-action", "get-started", "signup", "subscribe"},
		regexp.MustCompile(`(?i)get started|sign up|start (your|a|free)|join (us|now)|subscribe`)},
	{models.SectionContact, []string{"contact", "get-in-touch", "reach-us", "location", "map"},
		regexp.MustCompile(`(?i)contact( us)?|get in touch|reach (out|us)|visit us`)},
	{models.SectionFAQ, []string{"faq", "question", "accordion"},
		regexp.MustCompile(`(?i)\bfaqs?\b|frequently asked|common questions`)},
	{models.SectionStats, []string{"stat", "counter", "number", "metric", "milestone"},
		regexp.MustCompile(`(?i)\d+\+?\s*(years|clients|projects|customers|countries)`)},
	{models.SectionClients, []string{"client", "partner", "sponsor", "trusted", "logos"},
		regexp.MustCompile(`(?i)our (clients|partners)|trusted by|featured in`)},
	{models.SectionFooter, []string{"footer", "colophon", "bottom-bar"}, nil},
}

// ClassifyBlock assigns a semantic type from class/id markers first, then
// from heading text. Returns SectionOther when nothing matches.
func ClassifyBlock(identifiers, headingText string) models.SectionType {
	identifiers = strings.ToLower(identifiers)
	if identifiers != "" {
		for _, rule := range sectionRules {
			if containsAny(identifiers, rule.Markers) {
				return rule.Type
			}
		}
	}
	if headingText != "" {
		for _, rule := range sectionRules {
			if rule.Headings != nil && rule.Headings.MatchString(headingText) {
				return rule.Type
			}
		}
	}
	return models.SectionOther
}

// Sections detects and classifies the semantic blocks of a page. For any
// document with body content the result is non-empty: explicit section
// elements are tried first, then section-like containers, then synthetic
// sections built from heading boundaries, and finally a fully synthetic
// structure from the document's paragraphs.
func Sections(doc *goquery.Document, images []models.PageImage) []models.PageSection {
	sections := explicitSections(doc, images)
	if len(sections) == 0 {
		sections = containerSections(doc, images)
	}
	if len(sections) == 0 {
		sections = headingSections(doc, images)
	}

	if len(sections) > 0 {
		sections = supplementHeroAndFooter(doc, sections, images)
	} else if hero, ok := synthesizeHero(doc, images); ok {
		sections = appendFooterIfMissing(doc, []models.PageSection{hero})
	} else {
		sections = syntheticSections(doc, images)
	}

	for i := range sections {
		sections[i].Order = i
	}
	return sections
}

// explicitSections classifies <section>, [role=region], <article>, and
// .section elements. Nested candidates are skipped so one logical block
// yields one section.
func explicitSections(doc *goquery.Document, images []models.PageImage) []models.PageSection {
	const selector = `section, [role="region"], article, .section`
	var sections []models.PageSection

	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if sel.Parents().Is(selector) {
			return
		}
		if section, ok := buildSection(sel, images); ok {
			sections = append(sections, section)
		}
	})

	return sections
}

// containerSections broadens the search to any element whose class or id
// mentions "section" or "container".
func containerSections(doc *goquery.Document, images []models.PageImage) []models.PageSection {
	var sections []models.PageSection

	doc.Find("div, main").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		identifiers := strings.ToLower(class + " " + id)
		if !strings.Contains(identifiers, "section") && !strings.Contains(identifiers, "container") {
			return
		}
		if sel.Parents().Is(`div[class*="section"], div[class*="container"]`) {
			return
		}
		if section, ok := buildSection(sel, images); ok {
			sections = append(sections, section)
		}
	})

	return sections
}

// headingSections synthesizes sections from <h1>/<h2> boundaries: each
// heading starts a section running until the next one. The first section is
// always a hero; that is a convention, not a classification result.
func headingSections(doc *goquery.Document, images []models.PageImage) []models.PageSection {
	var sections []models.PageSection

	doc.Find("h1, h2").Each(func(i int, heading *goquery.Selection) {
		if inChrome(heading) {
			return
		}
		headingText := collapseSpace(heading.Text())
		if headingText == "" {
			return
		}

		section := models.PageSection{Heading: headingText}

		var snippets []string
		heading.NextUntil("h1, h2").Each(func(_ int, sibling *goquery.Selection) {
			sibling.AddSelection(sibling.Find("p, li")).Each(func(_ int, el *goquery.Selection) {
				name := goquery.NodeName(el)
				if name != "p" && name != "li" {
					return
				}
				if text := truncate(collapseSpace(el.Text()), maxSnippetLen); text != "" && len(snippets) < maxSectionSnippets+1 {
					snippets = append(snippets, text)
				}
			})
			if section.CTAText == "" {
				section.CTAText = findCTA(sibling)
			}
		})

		if len(snippets) > 0 {
			section.Subheading = snippets[0]
			if len(snippets) > 1 {
				section.Content = snippets[1:]
			}
		}

		if len(sections) == 0 {
			section.Type = models.SectionHero
		} else {
			section.Type = ClassifyBlock("", headingText)
		}
		section.Images = nearbyImages(heading.Parent(), images)
		sections = append(sections, section)
	})

	return sections
}

// supplementHeroAndFooter prepends a hero built from <header>/hero-like
// markup when classification found none, and always appends a footer section
// for an explicit <footer> when one was not already found.
func supplementHeroAndFooter(doc *goquery.Document, sections []models.PageSection, images []models.PageImage) []models.PageSection {
	hasHero := false
	hasFooter := false
	for _, section := range sections {
		switch section.Type {
		case models.SectionHero:
			hasHero = true
		case models.SectionFooter:
			hasFooter = true
		}
	}

	if !hasHero {
		if hero, ok := synthesizeHero(doc, images); ok {
			sections = append([]models.PageSection{hero}, sections...)
		}
	}

	if !hasFooter {
		sections = appendFooterIfMissing(doc, sections)
	}

	return sections
}

// appendFooterIfMissing adds a trailing footer section built from an
// explicit <footer> element, when the page has one with text.
func appendFooterIfMissing(doc *goquery.Document, sections []models.PageSection) []models.PageSection {
	for _, section := range sections {
		if section.Type == models.SectionFooter {
			return sections
		}
	}
	if footer := doc.Find("footer").First(); footer.Length() > 0 {
		if text := truncate(collapseSpace(footer.Text()), maxSnippetLen); text != "" {
			sections = append(sections, models.PageSection{
				Type:        models.SectionFooter,
				Content:     []string{text},
				Identifiers: "footer",
			})
		}
	}
	return sections
}

func synthesizeHero(doc *goquery.Document, images []models.PageImage) (models.PageSection, bool) {
	header := doc.Find("header").First()
	heroLike := doc.Find(`[class*="hero"], [class*="banner"], [class*="jumbotron"], [class*="masthead"]`).First()

	var source *goquery.Selection
	switch {
	case heroLike.Length() > 0:
		source = heroLike
	case header.Length() > 0:
		source = header
	default:
		return models.PageSection{}, false
	}

	hero := models.PageSection{Type: models.SectionHero, Identifiers: identifiersOf(source)}
	hero.Heading = collapseSpace(source.Find("h1, h2").First().Text())
	if hero.Heading == "" {
		hero.Heading = collapseSpace(doc.Find("title").First().Text())
	}
	hero.Subheading = truncate(collapseSpace(source.Find("p").First().Text()), maxSnippetLen)
	hero.CTAText = findCTA(source)
	hero.Images = nearbyImages(source, images)

	if hero.Heading == "" && hero.Subheading == "" {
		return models.PageSection{}, false
	}
	return hero, true
}

// syntheticSections is the last resort for pages with neither semantic tags
// nor headings: a hero from the first heading-or-title plus the first two
// paragraphs, one section per remaining heading consuming 2-3 paragraphs
// each, an optional CTA section for leftover paragraphs, and a footer from
// <footer> text.
func syntheticSections(doc *goquery.Document, images []models.PageImage) []models.PageSection {
	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if inChrome(sel) {
			return
		}
		if text := truncate(collapseSpace(sel.Text()), maxSnippetLen); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	var headings []string
	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if inChrome(sel) {
			return
		}
		if text := collapseSpace(sel.Text()); text != "" {
			headings = append(headings, text)
		}
	})

	title := collapseSpace(doc.Find("title").First().Text())
	if len(paragraphs) == 0 && len(headings) == 0 && title == "" {
		return nil
	}

	var sections []models.PageSection

	hero := models.PageSection{Type: models.SectionHero}
	if len(headings) > 0 {
		hero.Heading = headings[0]
		headings = headings[1:]
	} else {
		hero.Heading = title
	}
	if len(paragraphs) > 0 {
		hero.Subheading = paragraphs[0]
		paragraphs = paragraphs[1:]
	}
	if len(paragraphs) > 0 && hero.Subheading != "" {
		hero.Content = paragraphs[:1]
		paragraphs = paragraphs[1:]
	}
	hero.Images = nearbyImages(doc.Selection, images)
	sections = append(sections, hero)

	for _, heading := range headings {
		section := models.PageSection{
			Type:    ClassifyBlock("", heading),
			Heading: heading,
		}
		take := 2
		if len(paragraphs) >= 3 && len(headings) == 1 {
			take = 3
		}
		if take > len(paragraphs) {
			take = len(paragraphs)
		}
		if take > 0 {
			section.Content = paragraphs[:take]
			paragraphs = paragraphs[take:]
		}
		sections = append(sections, section)
	}

	if len(paragraphs) > 0 {
		cta := models.PageSection{Type: models.SectionCTA, Content: paragraphs}
		if len(cta.Content) > maxSectionSnippets {
			cta.Content = cta.Content[:maxSectionSnippets]
		}
		sections = append(sections, cta)
	}

	if footer := doc.Find("footer").First(); footer.Length() > 0 {
		if text := truncate(collapseSpace(footer.Text()), maxSnippetLen); text != "" {
			sections = append(sections, models.PageSection{
				Type:        models.SectionFooter,
				Content:     []string{text},
				Identifiers: "footer",
			})
		}
	}

	return sections
}

// buildSection turns one classified element into a PageSection. Returns
// false for blocks with no usable text.
func buildSection(sel *goquery.Selection, images []models.PageImage) (models.PageSection, bool) {
	identifiers := identifiersOf(sel)
	heading := collapseSpace(sel.Find("h1, h2, h3").First().Text())

	section := models.PageSection{
		Type:        ClassifyBlock(identifiers, heading),
		Heading:     heading,
		Identifiers: identifiers,
	}

	subheading := collapseSpace(sel.Find("h4, h5, h6").First().Text())
	if subheading == "" {
		subheading = truncate(collapseSpace(sel.Find("p").First().Text()), maxSnippetLen)
	}
	section.Subheading = subheading

	first := true
	sel.Find("p, li").Each(func(_ int, el *goquery.Selection) {
		text := truncate(collapseSpace(el.Text()), maxSnippetLen)
		if text == "" || len(section.Content) >= maxSectionSnippets {
			return
		}
		// The first paragraph already serves as the subheading.
		if first && text == section.Subheading {
			first = false
			return
		}
		first = false
		section.Content = append(section.Content, text)
	})

	section.CTAText = findCTA(sel)
	section.Images = nearbyImages(sel, images)

	if section.Heading == "" && section.Subheading == "" && len(section.Content) == 0 {
		return models.PageSection{}, false
	}
	return section, true
}

var backgroundImagePattern = regexp.MustCompile(`background(?:-image)?\s*:[^;]*url\(['"]?([^'")]+)['"]?\)`)

// nearbyImages attaches the page images that appear under this block,
// including background images declared in inline styles, capped to bound
// prompt size downstream.
func nearbyImages(sel *goquery.Selection, images []models.PageImage) []models.PageImage {
	if sel == nil || sel.Length() == 0 || len(images) == 0 {
		return nil
	}

	var srcs []string
	sel.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok {
			srcs = append(srcs, strings.TrimSpace(src))
		}
	})
	appendStyleURLs := func(style string) {
		for _, match := range backgroundImagePattern.FindAllStringSubmatch(style, -1) {
			srcs = append(srcs, strings.TrimSpace(match[1]))
		}
	}
	if style, ok := sel.Attr("style"); ok {
		appendStyleURLs(style)
	}
	sel.Find("[style]").Each(func(_ int, el *goquery.Selection) {
		if style, ok := el.Attr("style"); ok {
			appendStyleURLs(style)
		}
	})

	var attached []models.PageImage
	for _, src := range srcs {
		if len(attached) >= maxSectionImages {
			break
		}
		if src == "" {
			continue
		}
		for _, img := range images {
			if img.Src == src || strings.HasSuffix(img.Src, strings.TrimPrefix(src, ".")) {
				attached = append(attached, img)
				break
			}
		}
	}
	return attached
}

// ctaMarkers identify button-like links.
var ctaMarkers = []string{"btn", "button", "cta"}

func findCTA(sel *goquery.Selection) string {
	cta := ""
	sel.Find("a, button").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		class, _ := el.Attr("class")
		if goquery.NodeName(el) == "button" || containsAny(strings.ToLower(class), ctaMarkers) {
			if text := collapseSpace(el.Text()); text != "" {
				cta = text
				return false
			}
		}
		return true
	})
	return cta
}

func identifiersOf(sel *goquery.Selection) string {
	class, _ := sel.Attr("class")
	id, _ := sel.Attr("id")
	return strings.TrimSpace(strings.TrimSpace(class) + " " + strings.TrimSpace(id))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if i := strings.LastIndex(cut, " "); i > max/2 {
		cut = cut[:i]
	}
	return cut + "…"
}
