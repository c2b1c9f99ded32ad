// Package output writes crawl artifacts to disk: a JSON export of the full
// site model and a human-readable markdown report.
package output

import (
	"encoding/json"
	"os"

	"github.com/sitesmith/crawl/pkg/models"
)

// SaveJSON writes an indented JSON export of the crawled site to filepath.
// Raw page HTML is stripped from the export; it is an internal working copy,
// not part of the persisted artifact.
func SaveJSON(data *models.CrawledSiteData, filepath string) error {
	exportData := *data
	exportData.Pages = make([]models.CrawledPage, len(data.Pages))
	copy(exportData.Pages, data.Pages)
	for i := range exportData.Pages {
		exportData.Pages[i].RawHTML = ""
	}

	content, err := json.MarshalIndent(exportData, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, content, 0644)
}
