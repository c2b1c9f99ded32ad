package crawler

import (
	"github.com/sitesmith/crawl/pkg/models"
)

// ProgressFunc receives a progress snapshot after every state change. The
// crawl waits for the callback to return before proceeding, so delivery is
// strictly ordered and a slow consumer backpressures the crawl; that is
// acceptable since crawling is rate limited anyway.
type ProgressFunc func(models.CrawlProgress)

// reporter is the crawl's phase state machine:
// initializing -> discovering -> crawling -> aggregating -> complete,
// with error reachable from any phase.
type reporter struct {
	progress models.CrawlProgress
	onUpdate ProgressFunc
}

func newReporter(onUpdate ProgressFunc) *reporter {
	return &reporter{onUpdate: onUpdate}
}

// emit delivers a snapshot copy so the consumer never observes later
// mutations of the shared record.
func (r *reporter) emit() {
	if r.onUpdate == nil {
		return
	}
	snapshot := r.progress
	snapshot.Errors = append([]models.PageError(nil), r.progress.Errors...)
	r.onUpdate(snapshot)
}

func (r *reporter) setPhase(phase models.CrawlPhase) {
	if r.progress.Phase == phase {
		return
	}
	r.progress.Phase = phase
	r.emit()
}

func (r *reporter) startPage(url string, queued int) {
	r.progress.CurrentURL = url
	r.progress.PagesQueued = queued
	r.emit()
}

func (r *reporter) pageCrawled(page *models.CrawledPage, discovered, queued int) {
	r.progress.PagesCrawled++
	r.progress.PagesDiscovered = discovered
	r.progress.PagesQueued = queued
	r.progress.SectionsFound += len(page.Sections)
	r.progress.ImagesFound += len(page.Images)
	r.progress.FormsFound += len(page.Forms)
	r.emit()
}

func (r *reporter) pageFailed(url string, err error) {
	r.progress.Errors = append(r.progress.Errors, models.PageError{
		URL:   url,
		Error: err.Error(),
	})
	r.emit()
}

func (r *reporter) errors() []models.PageError {
	return append([]models.PageError(nil), r.progress.Errors...)
}
