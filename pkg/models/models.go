// Package models defines the serializable data model shared by the crawler,
// extractors, aggregators, and downstream consumers. Everything here is plain
// data, safe to persist as JSON.
package models

import "time"

// CrawlConfig holds the knobs for a single crawl. It is immutable for the
// duration of one crawl invocation.
type CrawlConfig struct {
	MaxPages  int           `json:"maxPages"`
	MaxDepth  int           `json:"maxDepth"`
	RateLimit time.Duration `json:"rateLimitMs"`
	Timeout   time.Duration `json:"timeoutMs"`
	UserAgent string        `json:"userAgent"`

	// KeepHTML retains the raw HTML of each page on CrawledPage.RawHTML so
	// downstream tooling (markdown reports, re-extraction) can reprocess it.
	KeepHTML bool `json:"keepHtml,omitempty"`

	// Headers are extra request headers sent with every page fetch. The
	// user agent is controlled by UserAgent and cannot be overridden here.
	Headers map[string]string `json:"headers,omitempty"`
}

// PageType classifies a page from its URL path.
type PageType string

const (
	PageTypeHome      PageType = "home"
	PageTypeAbout     PageType = "about"
	PageTypeServices  PageType = "services"
	PageTypeProducts  PageType = "products"
	PageTypePortfolio PageType = "portfolio"
	PageTypePricing   PageType = "pricing"
	PageTypeContact   PageType = "contact"
	PageTypeBlog      PageType = "blog"
	PageTypeBlogPost  PageType = "blog-post"
	PageTypeTeam      PageType = "team"
	PageTypeFAQ       PageType = "faq"
	PageTypeLegal     PageType = "legal"
	PageTypeOther     PageType = "other"
)

// SectionType is the closed set of semantic section classifications.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionAbout        SectionType = "about"
	SectionServices     SectionType = "services"
	SectionFeatures     SectionType = "features"
	SectionTeam         SectionType = "team"
	SectionTestimonials SectionType = "testimonials"
	SectionGallery      SectionType = "gallery"
	SectionPortfolio    SectionType = "portfolio"
	SectionPricing      SectionType = "pricing"
	SectionCTA          SectionType = "cta"
	SectionContact      SectionType = "contact"
	SectionFAQ          SectionType = "faq"
	SectionStats        SectionType = "stats"
	SectionClients      SectionType = "clients"
	SectionFooter       SectionType = "footer"
	SectionOther        SectionType = "other"
)

// FormType classifies a form by its field composition.
type FormType string

const (
	FormContact    FormType = "contact"
	FormNewsletter FormType = "newsletter"
	FormLogin      FormType = "login"
	FormSignup     FormType = "signup"
	FormSearch     FormType = "search"
	FormQuote      FormType = "quote"
	FormBooking    FormType = "booking"
	FormOther      FormType = "other"
)

// Heading is a single heading element with its level (1-6).
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// PageMeta holds document metadata extracted from <head>.
type PageMeta struct {
	Description string `json:"description,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
	OgTitle     string `json:"ogTitle,omitempty"`
	OgDesc      string `json:"ogDescription,omitempty"`
	OgImage     string `json:"ogImage,omitempty"`
	OgType      string `json:"ogType,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
}

// PageContent is the body text of a page, excluding nav/header/footer chrome.
type PageContent struct {
	Headings   []Heading  `json:"headings,omitempty"`
	Paragraphs []string   `json:"paragraphs,omitempty"`
	Lists      [][]string `json:"lists,omitempty"`
}

// PageImage is an image reference with heuristic role flags. IsLogo and
// IsHero are best-effort guesses, not guarantees.
type PageImage struct {
	Src    string `json:"src"`
	Alt    string `json:"alt,omitempty"`
	IsLogo bool   `json:"isLogo,omitempty"`
	IsHero bool   `json:"isHero,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// PageSection is one semantically classified block of a page.
type PageSection struct {
	Type        SectionType `json:"type"`
	Order       int         `json:"order"`
	Heading     string      `json:"heading,omitempty"`
	Subheading  string      `json:"subheading,omitempty"`
	Content     []string    `json:"content,omitempty"`
	Images      []PageImage `json:"images,omitempty"`
	CTAText     string      `json:"ctaText,omitempty"`
	Identifiers string      `json:"identifiers,omitempty"`
}

// FormField is a single input of a form. Options is populated for
// select/radio/checkbox fields; radio and checkbox groups sharing a name are
// merged into one field.
type FormField struct {
	Type     string   `json:"type"`
	Name     string   `json:"name,omitempty"`
	Label    string   `json:"label,omitempty"`
	Required bool     `json:"required,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// PageForm is one <form> with its inferred purpose.
type PageForm struct {
	Method   string      `json:"method,omitempty"`
	Action   string      `json:"action,omitempty"`
	FormType FormType    `json:"formType"`
	Fields   []FormField `json:"fields,omitempty"`
}

// PageLinks partitions a page's links into disjoint, per-page-deduplicated
// lists. Nav and Footer are the internal links observed inside <nav>/<header>
// and <footer> respectively, used for navigation voting.
type PageLinks struct {
	Internal []string `json:"internal,omitempty"`
	External []string `json:"external,omitempty"`
	Email    []string `json:"email,omitempty"`
	Phone    []string `json:"phone,omitempty"`
	Nav      []string `json:"nav,omitempty"`
	Footer   []string `json:"footer,omitempty"`
}

// CrawledPage is the full extraction result for one fetched page. It is
// created once per successfully fetched HTML page and never mutated after.
type CrawledPage struct {
	URL      string        `json:"url"`
	Path     string        `json:"path"`
	Title    string        `json:"title,omitempty"`
	Meta     PageMeta      `json:"meta"`
	Content  PageContent   `json:"content"`
	Sections []PageSection `json:"sections"`
	Images   []PageImage   `json:"images,omitempty"`
	Forms    []PageForm    `json:"forms,omitempty"`
	Links    PageLinks     `json:"links"`
	PageType PageType      `json:"pageType"`
	Depth    int           `json:"depth"`
	LoadTime int64         `json:"loadTimeMs"`
	RawHTML  string        `json:"rawHtml,omitempty"`
}

// RankedColor is a color with its accumulated occurrence weight.
type RankedColor struct {
	Hex    string `json:"hex"`
	Weight int    `json:"weight"`
}

// BrandColors assigns extracted colors to semantic roles.
type BrandColors struct {
	Primary    string        `json:"primary,omitempty"`
	Secondary  string        `json:"secondary,omitempty"`
	Accent     string        `json:"accent,omitempty"`
	Background string        `json:"background,omitempty"`
	Text       string        `json:"text,omitempty"`
	AllColors  []RankedColor `json:"allColors,omitempty"`
}

// BrandData is the cross-page brand aggregate, derived once after the full
// page set is known.
type BrandData struct {
	Logo        string      `json:"logo,omitempty"`
	LogoAlt     string      `json:"logoAlt,omitempty"`
	CompanyName string      `json:"companyName,omitempty"`
	Tagline     string      `json:"tagline,omitempty"`
	Colors      BrandColors `json:"colors"`
	Fonts       []string    `json:"fonts,omitempty"`
}

// NavItem is one entry of a site navigation list.
type NavItem struct {
	Label      string `json:"label"`
	Path       string `json:"path"`
	IsExternal bool   `json:"isExternal,omitempty"`
}

// NavigationData holds the voted primary and footer navigation.
type NavigationData struct {
	Primary []NavItem `json:"primary,omitempty"`
	Footer  []NavItem `json:"footer,omitempty"`
}

// SocialLink is a recognized social profile link.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// GlobalElements are site-wide facts resolved first-found-wins in crawl order.
type GlobalElements struct {
	SocialLinks []SocialLink `json:"socialLinks,omitempty"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
}

// PageError records a single failed page fetch. Page failures never abort
// the crawl.
type PageError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CrawlStats summarizes one completed crawl.
type CrawlStats struct {
	PagesCrawled    int `json:"pagesCrawled"`
	PagesDiscovered int `json:"pagesDiscovered"`
	SectionsFound   int `json:"sectionsFound"`
	ImagesFound     int `json:"imagesFound"`
	FormsFound      int `json:"formsFound"`
	ErrorCount      int `json:"errorCount"`
}

// CrawledSiteData is the root aggregate returned by one crawl. Immutable
// once returned.
type CrawledSiteData struct {
	Domain        string         `json:"domain"`
	SourceURL     string         `json:"sourceUrl"`
	CrawledAt     time.Time      `json:"crawledAt"`
	CrawlDuration time.Duration  `json:"crawlDurationMs"`
	Pages         []CrawledPage  `json:"pages"`
	Brand         BrandData      `json:"brand"`
	Navigation    NavigationData `json:"navigation"`
	Global        GlobalElements `json:"globalElements"`
	Screenshot    string         `json:"screenshot,omitempty"`
	Stats         CrawlStats     `json:"stats"`
	Errors        []PageError    `json:"errors,omitempty"`
}

// CrawlPhase is the progress state machine phase.
type CrawlPhase string

const (
	PhaseInitializing CrawlPhase = "initializing"
	PhaseDiscovering  CrawlPhase = "discovering"
	PhaseCrawling     CrawlPhase = "crawling"
	PhaseAggregating  CrawlPhase = "aggregating"
	PhaseComplete     CrawlPhase = "complete"
	PhaseError        CrawlPhase = "error"
)

// CrawlProgress is the progress record emitted to the caller after every
// state change. Emitted values are snapshot copies.
type CrawlProgress struct {
	Phase           CrawlPhase  `json:"phase"`
	CurrentURL      string      `json:"currentUrl,omitempty"`
	PagesCrawled    int         `json:"pagesCrawled"`
	PagesDiscovered int         `json:"pagesDiscovered"`
	PagesQueued     int         `json:"pagesQueued"`
	SectionsFound   int         `json:"sectionsFound"`
	ImagesFound     int         `json:"imagesFound"`
	FormsFound      int         `json:"formsFound"`
	Errors          []PageError `json:"errors,omitempty"`
}

// DesignStyle is one of the fixed palette of design styles a generated site
// can be rendered in.
type DesignStyle string

const (
	StyleModernMinimal   DesignStyle = "modern-minimal"
	StyleBoldVibrant     DesignStyle = "bold-vibrant"
	StyleClassicPro      DesignStyle = "classic-professional"
	StyleElegantLuxury   DesignStyle = "elegant-luxury"
	StylePlayfulCreative DesignStyle = "playful-creative"
	StyleTechStartup     DesignStyle = "tech-startup"
	StyleWarmOrganic     DesignStyle = "warm-organic"
	StyleDarkMode        DesignStyle = "dark-mode"
	StyleEditorial       DesignStyle = "editorial"
	StyleBrutalist       DesignStyle = "brutalist"
	StyleGradientRich    DesignStyle = "gradient-rich"
	StyleMonochrome      DesignStyle = "monochrome"
	StyleRetro           DesignStyle = "retro"
	StyleCorporateBlue   DesignStyle = "corporate-blue"
	StyleArtisanCraft    DesignStyle = "artisan-craft"
	StyleGeometric       DesignStyle = "geometric"
)

// LayoutPattern is the dominant layout detected across a crawled site.
type LayoutPattern string

const (
	LayoutHeroCentric  LayoutPattern = "hero-centric"
	LayoutGridBased    LayoutPattern = "grid-based"
	LayoutSingleColumn LayoutPattern = "single-column"
	LayoutSidebar      LayoutPattern = "sidebar"
	LayoutUnknown      LayoutPattern = "unknown"
)
