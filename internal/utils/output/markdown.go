package output

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"

	urlutil "github.com/sitesmith/crawl/internal/utils/url"
	"github.com/sitesmith/crawl/pkg/models"
)

// SaveMarkdown writes a human-readable crawl report to filepath: brand and
// navigation summary, per-page section breakdown, and, when the crawl kept
// raw HTML, each page's content converted to markdown.
func SaveMarkdown(data *models.CrawledSiteData, filepath string) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Crawl Report: %s\n\n", data.Domain)
	fmt.Fprintf(&sb, "Source: %s  \n", data.SourceURL)
	fmt.Fprintf(&sb, "Crawled: %s  \n", data.CrawledAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Pages: %d, Sections: %d, Errors: %d\n\n",
		data.Stats.PagesCrawled, data.Stats.SectionsFound, data.Stats.ErrorCount)

	writeBrand(&sb, data.Brand)
	writeNavigation(&sb, data.Navigation)

	for i := range data.Pages {
		if err := writePage(&sb, data.SourceURL, &data.Pages[i]); err != nil {
			return err
		}
	}

	if len(data.Errors) > 0 {
		sb.WriteString("## Errors\n\n")
		for _, pageErr := range data.Errors {
			fmt.Fprintf(&sb, "- %s: %s\n", pageErr.URL, pageErr.Error)
		}
		sb.WriteString("\n")
	}

	return os.WriteFile(filepath, []byte(sb.String()), 0644)
}

func writeBrand(sb *strings.Builder, brand models.BrandData) {
	sb.WriteString("## Brand\n\n")
	if brand.CompanyName != "" {
		fmt.Fprintf(sb, "- Company: %s\n", brand.CompanyName)
	}
	if brand.Tagline != "" {
		fmt.Fprintf(sb, "- Tagline: %s\n", brand.Tagline)
	}
	if brand.Logo != "" {
		fmt.Fprintf(sb, "- Logo: %s\n", brand.Logo)
	}
	if brand.Colors.Primary != "" {
		fmt.Fprintf(sb, "- Colors: primary %s, secondary %s, accent %s\n",
			brand.Colors.Primary, brand.Colors.Secondary, brand.Colors.Accent)
	}
	if len(brand.Fonts) > 0 {
		fmt.Fprintf(sb, "- Fonts: %s\n", strings.Join(brand.Fonts, ", "))
	}
	sb.WriteString("\n")
}

func writeNavigation(sb *strings.Builder, nav models.NavigationData) {
	if len(nav.Primary) == 0 && len(nav.Footer) == 0 {
		return
	}
	sb.WriteString("## Navigation\n\n")
	for _, item := range nav.Primary {
		fmt.Fprintf(sb, "- [%s](%s)\n", item.Label, item.Path)
	}
	if len(nav.Footer) > 0 {
		sb.WriteString("\nFooter:\n")
		for _, item := range nav.Footer {
			fmt.Fprintf(sb, "- [%s](%s)\n", item.Label, item.Path)
		}
	}
	sb.WriteString("\n")
}

func writePage(sb *strings.Builder, baseURL string, page *models.CrawledPage) error {
	fmt.Fprintf(sb, "## %s (%s)\n\n", page.Title, page.Path)
	fmt.Fprintf(sb, "Type: %s, Depth: %d\n\n", page.PageType, page.Depth)

	for _, section := range page.Sections {
		fmt.Fprintf(sb, "### [%s] %s\n\n", section.Type, section.Heading)
		if section.Subheading != "" {
			fmt.Fprintf(sb, "%s\n\n", section.Subheading)
		}
	}

	if page.RawHTML != "" {
		converted, err := convertHTML(page.URL, page.RawHTML)
		if err != nil {
			return err
		}
		sb.WriteString(converted)
		sb.WriteString("\n\n")
	}
	return nil
}

// convertHTML converts a page's cleaned HTML to GitHub-flavored markdown with
// relative links resolved against the page URL.
func convertHTML(pageURL, rawHTML string) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	converter.AddRules(md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			href, exists := selec.Attr("href")
			if !exists {
				return nil
			}

			resolved := urlutil.ResolveURL(pageURL, href)
			title, hasTitle := selec.Attr("title")
			var titlePart string
			if hasTitle {
				titlePart = fmt.Sprintf(" %q", title)
			}
			str := fmt.Sprintf("[%s](%s)%s", selec.Text(), resolved, titlePart)
			return &str
		},
	})

	cleaned, err := CleanHTML(rawHTML)
	if err != nil {
		return "", err
	}
	return converter.ConvertString(cleaned)
}
