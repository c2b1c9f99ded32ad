// internal/cli/analyze.go
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/sitesmith/crawl/internal/assets"
	"github.com/sitesmith/crawl/internal/config"
	"github.com/sitesmith/crawl/internal/crawler"
	"github.com/sitesmith/crawl/internal/ui"
	"github.com/sitesmith/crawl/internal/utils/output"
	"github.com/sitesmith/crawl/pkg/models"
)

var (
	analyzeOutputs   []string
	analyzeAssetsDir string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Crawl a site and extract its content and brand model",
	Long: `Analyze performs a bounded breadth-first crawl of the given site, extracts
structured content from every page, and aggregates brand colors, fonts,
navigation, and site-wide contact details into a single site model.

A bare domain is accepted; https:// is assumed.`,
	Example: `  # Crawl with the default budget (20 pages, depth 3)
  sitecrawl analyze example.com

  # Deeper crawl with a larger page budget
  sitecrawl analyze https://example.com --max-pages=50 --max-depth=5

  # Save the site model and a markdown report
  sitecrawl analyze example.com -o site.json -o report.md --keep-html`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	config.RegisterCrawlFlags(analyzeCmd)
	analyzeCmd.Flags().StringArrayVarP(&analyzeOutputs, "output", "o", nil,
		"File path to save output, repeatable (supports .json, .md)")
	analyzeCmd.Flags().StringVar(&analyzeAssetsDir, "assets-dir", "",
		"Directory to download brand assets (logo, hero images) into")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	application := GetApp()
	cfg := application.Config.CrawlConfig()

	// Markdown reports need the cleaned page HTML.
	for _, out := range analyzeOutputs {
		if strings.HasSuffix(out, ".md") {
			cfg.KeepHTML = true
		}
	}

	var onProgress crawler.ProgressFunc
	if !isQuiet(cmd) {
		bar := newCrawlBar(cfg.MaxPages)
		onProgress = func(p models.CrawlProgress) {
			switch p.Phase {
			case models.PhaseCrawling, models.PhaseDiscovering:
				bar.Describe(describeProgress(p))
				_ = bar.Set(p.PagesCrawled)
			case models.PhaseComplete, models.PhaseError:
				_ = bar.Finish()
			}
		}
	}

	data, err := application.Crawler.Crawl(cmd.Context(), args[0], cfg, onProgress)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}
	if data.Stats.PagesCrawled == 0 {
		printErrors(data.Errors)
		return fmt.Errorf("no pages could be crawled from %s", args[0])
	}

	for _, out := range analyzeOutputs {
		if err := saveSiteData(data, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s\n", ui.Success("Saved "+out))
	}

	if analyzeAssetsDir != "" {
		downloadAssets(cmd, data)
	}

	printSummary(data)
	return nil
}

func downloadAssets(cmd *cobra.Command, data *models.CrawledSiteData) {
	application := GetApp()
	urls := assets.Collect(data)
	if len(urls) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", ui.Dim("No brand assets found to download"))
		return
	}

	results := application.Assets.DownloadAll(cmd.Context(), urls, analyzeAssetsDir)
	saved := 0
	for _, result := range results {
		if result.Err != nil {
			log.Warn().Str("url", result.URL).Err(result.Err).Msg("Asset download failed")
			continue
		}
		saved++
	}
	fmt.Fprintf(os.Stderr, "%s\n",
		ui.Success(fmt.Sprintf("Saved %d of %d brand assets to %s", saved, len(urls), analyzeAssetsDir)))
}

func newCrawlBar(maxPages int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxPages,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("crawling"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer: "=", SaucerHead: ">", SaucerPadding: " ", BarStart: "[", BarEnd: "]",
		}),
	)
}

func describeProgress(p models.CrawlProgress) string {
	url := p.CurrentURL
	if len(url) > 48 {
		url = url[:45] + "..."
	}
	return url
}

func saveSiteData(data *models.CrawledSiteData, filepath string) error {
	switch {
	case strings.HasSuffix(filepath, ".json"):
		return output.SaveJSON(data, filepath)
	case strings.HasSuffix(filepath, ".md"):
		return output.SaveMarkdown(data, filepath)
	default:
		return fmt.Errorf("unsupported output format: %s (use .json or .md)", filepath)
	}
}

func printSummary(data *models.CrawledSiteData) {
	fmt.Printf("\n%s\n", ui.Heading(data.Domain))
	fmt.Printf("  Pages: %d crawled, %d discovered, %d errors\n",
		data.Stats.PagesCrawled, data.Stats.PagesDiscovered, data.Stats.ErrorCount)
	fmt.Printf("  Content: %d sections, %d images, %d forms\n",
		data.Stats.SectionsFound, data.Stats.ImagesFound, data.Stats.FormsFound)
	fmt.Printf("  Duration: %s\n", data.CrawlDuration.Round(1e7))

	brand := data.Brand
	fmt.Printf("\n%s\n", ui.Bold("Brand"))
	if brand.CompanyName != "" {
		fmt.Printf("  Company: %s\n", brand.CompanyName)
	}
	if brand.Tagline != "" {
		fmt.Printf("  Tagline: %s\n", brand.Tagline)
	}
	if brand.Logo != "" {
		fmt.Printf("  Logo: %s\n", brand.Logo)
	}
	if brand.Colors.Primary != "" {
		fmt.Printf("  Primary: %s\n", ui.Swatch(brand.Colors.Primary))
	}
	if brand.Colors.Secondary != "" {
		fmt.Printf("  Secondary: %s\n", ui.Swatch(brand.Colors.Secondary))
	}
	if brand.Colors.Accent != "" {
		fmt.Printf("  Accent: %s\n", ui.Swatch(brand.Colors.Accent))
	}
	if len(brand.Fonts) > 0 {
		fmt.Printf("  Fonts: %s\n", strings.Join(brand.Fonts, ", "))
	}

	if len(data.Navigation.Primary) > 0 {
		fmt.Printf("\n%s\n", ui.Bold("Navigation"))
		for _, item := range data.Navigation.Primary {
			fmt.Printf("  %s  %s\n", item.Label, ui.Dim(item.Path))
		}
	}

	printErrors(data.Errors)
}

func printErrors(errs []models.PageError) {
	if len(errs) == 0 {
		return
	}
	fmt.Printf("\n%s\n", ui.Bold("Errors"))
	for _, pageErr := range errs {
		fmt.Printf("  %s %s\n", ui.Error(pageErr.URL), ui.Dim(pageErr.Error))
	}
}
