package assets

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// WorkerPool downloads assets concurrently through a fixed set of workers.
type WorkerPool struct {
	downloader  *Downloader
	concurrency int
}

// NewWorkerPool wraps a Downloader with bounded concurrency. The pool is
// capped at 50 workers.
func NewWorkerPool(downloader *Downloader, concurrency int) *WorkerPool {
	if concurrency <= 0 {
		concurrency = 5
	}
	if concurrency > 50 {
		concurrency = 50
	}
	return &WorkerPool{
		downloader:  downloader,
		concurrency: concurrency,
	}
}

// DownloadAll fetches every URL into dir and returns one Result per URL in
// completion order.
func (wp *WorkerPool) DownloadAll(ctx context.Context, urls []string, dir string) []*Result {
	if len(urls) == 0 {
		return nil
	}

	jobs := make(chan string, len(urls))
	results := make(chan *Result, len(urls))

	var wg sync.WaitGroup
	for w := 0; w < wp.concurrency; w++ {
		wg.Add(1)
		go wp.worker(ctx, jobs, results, dir, &wg)
	}

	for _, u := range urls {
		jobs <- u
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	all := make([]*Result, 0, len(urls))
	for result := range results {
		all = append(all, result)
	}
	return all
}

func (wp *WorkerPool) worker(ctx context.Context, jobs <-chan string, results chan<- *Result, dir string, wg *sync.WaitGroup) {
	defer wg.Done()

	for u := range jobs {
		select {
		case <-ctx.Done():
			log.Debug().Msg("Asset worker cancelled")
			return
		default:
		}

		results <- wp.downloader.Download(ctx, u, dir)
	}
}
