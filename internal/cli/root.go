// internal/cli/root.go
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sitesmith/crawl/internal/app"
	"github.com/sitesmith/crawl/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "sitecrawl",
	Short:   "Crawl a website and extract its content, brand, and structure",
	Long:    `Sitecrawl walks a site breadth-first within a page and depth budget, extracts structured content and brand signals from every page, and aggregates them into a single site model for downstream design tooling.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterGlobalFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Lazily initialize the application before running commands so -h/help
	// stays cheap.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout*10)
		defer cancel()
		application, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}

		SetApp(application)
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		application := GetApp()
		if application == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), application.Config.HTTPTimeout)
		defer cancel()
		if err := application.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Shutdown reported an error")
		}
		SetApp(nil)
	}
}

func isQuiet(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup("quiet"); f != nil {
		return f.Value.String() == "true"
	}
	return false
}
