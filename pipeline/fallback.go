package pipeline

import (
	"context"
	"errors"

	"github.com/fwojciec/imgseed"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// Candidates returns the URLs to try for a resolved asset: the high-resolution
// rewrite first, then the original. Identical URLs are tried once.
func Candidates(assetURL string) []string {
	high := imgseed.HighResURL(assetURL)
	if high == assetURL {
		return []string{assetURL}
	}
	return []string{high, assetURL}
}

// FetchFirst downloads the first candidate URL that succeeds into dst.
// Each failure moves on to the next candidate; the last error is returned
// when every candidate fails. Context cancellation stops immediately.
func FetchFirst(ctx context.Context, fetcher imgseed.AssetFetcher, candidates []string, dst string, logger LogFunc) (int64, error) {
	if len(candidates) == 0 {
		return 0, imgseed.Errorf(imgseed.ENOTFOUND, "no candidate URLs")
	}

	var lastErr error
	for i, u := range candidates {
		n, err := fetcher.Fetch(ctx, u, dst)
		if err == nil {
			return n, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return 0, err
		}

		if logger != nil && i < len(candidates)-1 {
			logger("fallback from %s: %v", u, err)
		}
	}

	return 0, lastErr
}
