package crawler

import "context"

// Screenshotter captures a rendered image of a URL through an external
// rendering API. It is invoked once per crawl on the homepage; a failure is
// non-fatal and simply omits the screenshot from the result.
type Screenshotter interface {
	// Capture returns a base64-encoded image payload for the given URL.
	Capture(ctx context.Context, url string) (string, error)
}
