package imgseed

import "context"

// AssetFetcher downloads binary assets over plain HTTP, independently of the
// rendering session.
type AssetFetcher interface {
	// Fetch downloads url into the file at dst and returns its size in bytes.
	// Returns EHTTP on non-2xx status, timeout or transport error.
	// Fetch never retries; fallbacks are the caller's responsibility.
	Fetch(ctx context.Context, url, dst string) (int64, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
