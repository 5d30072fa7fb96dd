package mock

import (
	"context"

	"github.com/fwojciec/imgseed"
)

// Compile-time interface verification.
var (
	_ imgseed.AssetFetcher  = (*AssetFetcher)(nil)
	_ imgseed.DomainLimiter = (*DomainLimiter)(nil)
)

// AssetFetcher is a mock implementation of imgseed.AssetFetcher.
type AssetFetcher struct {
	FetchFn func(ctx context.Context, url, dst string) (int64, error)
}

func (f *AssetFetcher) Fetch(ctx context.Context, url, dst string) (int64, error) {
	return f.FetchFn(ctx, url, dst)
}

// DomainLimiter is a mock implementation of imgseed.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
