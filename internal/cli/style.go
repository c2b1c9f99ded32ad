// internal/cli/style.go
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitesmith/crawl/internal/config"
	"github.com/sitesmith/crawl/internal/style"
	"github.com/sitesmith/crawl/internal/ui"
	"github.com/sitesmith/crawl/pkg/models"
)

var (
	styleIndustry string
	styleLeadID   string
	styleRecent   []string
)

// styleCmd represents the style command
var styleCmd = &cobra.Command{
	Use:   "style <url-or-json>",
	Short: "Suggest a design style for a site",
	Long: `Style analyzes a site's dominant layout and, together with an industry
hint, suggests a design style from a fixed palette. The suggestion is
deterministic: the same lead always gets the same style.

The argument is either a URL to crawl or the path of a site model saved
earlier with "analyze -o site.json".`,
	Example: `  # Crawl and suggest a style
  sitecrawl style example.com --industry="law firm" --lead-id=lead-42

  # Reuse a saved crawl
  sitecrawl style site.json --industry=restaurant --lead-id=lead-42

  # Avoid styles used for recent leads
  sitecrawl style site.json --lead-id=lead-43 --recent=modern-minimal --recent=editorial`,
	Args: cobra.ExactArgs(1),
	RunE: runStyle,
}

func init() {
	rootCmd.AddCommand(styleCmd)

	config.RegisterCrawlFlags(styleCmd)
	styleCmd.Flags().StringVar(&styleIndustry, "industry", "", "Business industry hint (e.g. \"law firm\")")
	styleCmd.Flags().StringVar(&styleLeadID, "lead-id", "", "Stable lead identifier for deterministic selection")
	styleCmd.Flags().StringArrayVar(&styleRecent, "recent", nil, "Recently used style to avoid, repeatable")
}

func runStyle(cmd *cobra.Command, args []string) error {
	application := GetApp()

	data, err := loadOrCrawl(cmd, args[0])
	if err != nil {
		return err
	}

	analysis := application.StyleAnalyzer.Analyze(data)

	recent := make([]models.DesignStyle, 0, len(styleRecent))
	for _, s := range styleRecent {
		recent = append(recent, models.DesignStyle(s))
	}

	selected := style.Select(style.Request{
		LeadID:       styleLeadID,
		Industry:     styleIndustry,
		Layout:       analysis.Layout,
		RecentStyles: recent,
	})

	fmt.Printf("%s\n", ui.Heading(data.Domain))
	fmt.Printf("  Layout: %s\n", analysis.Layout)
	if styleIndustry != "" {
		fmt.Printf("  Industry: %s\n", styleIndustry)
	}
	fmt.Printf("  Style: %s\n", ui.Success(string(selected)))
	return nil
}

// loadOrCrawl treats a .json argument as a saved site model and anything else
// as a seed URL to crawl.
func loadOrCrawl(cmd *cobra.Command, arg string) (*models.CrawledSiteData, error) {
	if strings.HasSuffix(arg, ".json") {
		content, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read site model: %w", err)
		}
		var data models.CrawledSiteData
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to parse site model: %w", err)
		}
		return &data, nil
	}

	application := GetApp()
	data, err := application.Crawler.Crawl(cmd.Context(), arg, application.Config.CrawlConfig(), nil)
	if err != nil {
		return nil, fmt.Errorf("crawl failed: %w", err)
	}
	if data.Stats.PagesCrawled == 0 {
		return nil, fmt.Errorf("no pages could be crawled from %s", arg)
	}
	return data, nil
}
