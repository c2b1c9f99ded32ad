// internal/cli/batch.go
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sitesmith/crawl/internal/config"
	"github.com/sitesmith/crawl/internal/ui"
	"github.com/sitesmith/crawl/internal/utils/output"
	urlutil "github.com/sitesmith/crawl/internal/utils/url"
)

var batchOutputDir string

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <seed-file>",
	Short: "Crawl many sites concurrently from a seed list",
	Long: `Batch reads one seed URL per line from the given file and crawls each site
independently. Crawls run concurrently up to the pool size, while each
individual crawl stays serial and rate limited.

Lines that are empty or start with # are skipped.`,
	Example: `  # Crawl all sites listed in seeds.txt
  sitecrawl batch seeds.txt

  # Save one JSON model per site into ./out
  sitecrawl batch seeds.txt --out-dir=out`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	config.RegisterCrawlFlags(batchCmd)
	batchCmd.Flags().StringVar(&batchOutputDir, "out-dir", "", "Directory to save per-site JSON models")
}

func runBatch(cmd *cobra.Command, args []string) error {
	application := GetApp()

	seeds, err := readSeeds(args[0])
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return fmt.Errorf("no seeds found in %s", args[0])
	}

	if batchOutputDir != "" {
		if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	log.Info().Int("seeds", len(seeds)).Int("pool", application.Config.BatchPoolSize).Msg("Starting batch analysis")

	cfg := application.Config.CrawlConfig()
	results := application.Batch.AnalyzeAll(cmd.Context(), seeds, cfg)

	failed := 0
	for result := range results {
		if result.Err != nil {
			failed++
			fmt.Printf("%s %s\n", ui.Error("FAIL"), result.Seed)
			fmt.Printf("     %s\n", ui.Dim(result.Err.Error()))
			continue
		}

		fmt.Printf("%s %s (%d pages, %d sections)\n",
			ui.Success("OK  "), result.Seed,
			result.Data.Stats.PagesCrawled, result.Data.Stats.SectionsFound)

		if batchOutputDir != "" {
			path := filepath.Join(batchOutputDir, seedFileName(result.Seed))
			if err := output.SaveJSON(result.Data, path); err != nil {
				log.Warn().Str("seed", result.Seed).Err(err).Msg("Failed to save site model")
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d crawls failed", failed, len(seeds))
	}
	return nil
}

// readSeeds loads one seed per line, skipping blanks and # comments.
func readSeeds(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seeds = append(seeds, line)
	}
	return seeds, scanner.Err()
}

func seedFileName(seed string) string {
	var host string
	if normalized, err := urlutil.NormalizeSeed(seed); err == nil {
		host = urlutil.HostOf(normalized)
	}
	if host == "" {
		host = strings.NewReplacer("/", "_", ":", "_").Replace(seed)
	}
	return host + ".json"
}
