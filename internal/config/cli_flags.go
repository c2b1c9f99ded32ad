package config

import "github.com/spf13/cobra"

// RegisterGlobalFlags attaches the flags shared by every command to the root
// command as persistent flags.
func RegisterGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress output")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	cmd.PersistentFlags().String("timeout", DefaultHTTPTimeout.String(), "Per-request HTTP timeout")
	cmd.PersistentFlags().String("user-agent", "", "User-Agent header for requests")
	cmd.PersistentFlags().StringArrayP("header", "H", nil, "Extra request header (\"Key: Value\"), repeatable")
	cmd.PersistentFlags().StringArray("proxy", nil, "Outbound proxy URL, repeatable for rotation")
}

// RegisterCrawlFlags attaches the crawl-shaping flags to a command.
func RegisterCrawlFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-pages", DefaultMaxPages, "Maximum pages to crawl")
	cmd.Flags().Int("max-depth", DefaultMaxDepth, "Maximum link depth from the seed")
	cmd.Flags().String("rate-limit", DefaultRateLimit.String(), "Minimum delay between requests")
	cmd.Flags().Bool("keep-html", false, "Keep cleaned page HTML for markdown reports")
}
