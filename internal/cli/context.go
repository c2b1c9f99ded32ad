// Package cli provides the command-line interface for the sitecrawl application.
package cli

import (
	"github.com/sitesmith/crawl/internal/app"
)

// Global reference set by the root command's PersistentPreRunE and cleared on
// PersistentPostRun. Commands run one at a time, so a single slot suffices.
var globalApp *app.Application

// SetApp stores the Application for the running command.
func SetApp(a *app.Application) {
	globalApp = a
}

// GetApp retrieves the Application for the running command.
func GetApp() *app.Application {
	return globalApp
}
