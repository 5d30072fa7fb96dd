package imgseed

import (
	"context"
	"time"
)

// Session is a headless browser context owned by a single run.
// It loads pages and exposes the rendered document for querying.
// A Session is not safe for concurrent use.
type Session interface {
	// Navigate loads the URL, waits for the load event and then waits a
	// settle delay so client-side scripts can inject asset URLs.
	Navigate(ctx context.Context, url string) error

	// DismissOverlay closes the sign-up modal if it appears within a bounded
	// wait. It reports whether the overlay was found and dismissed.
	// Absence of the overlay is not an error.
	DismissOverlay(ctx context.Context) bool

	// WaitElement waits up to timeout for an element matching selector.
	// It reports whether the element appeared.
	WaitElement(ctx context.Context, selector string, timeout time.Duration) bool

	// HTML returns the rendered document of the current page.
	HTML(ctx context.Context) (string, error)

	// Close releases the browser process.
	Close() error
}
