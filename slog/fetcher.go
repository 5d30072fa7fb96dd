package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/imgseed"
)

// Ensure LoggingAssetFetcher implements imgseed.AssetFetcher.
var _ imgseed.AssetFetcher = (*LoggingAssetFetcher)(nil)

// LoggingAssetFetcher wraps an AssetFetcher with download logging.
type LoggingAssetFetcher struct {
	next   imgseed.AssetFetcher
	logger *slog.Logger
}

// NewLoggingAssetFetcher creates a new LoggingAssetFetcher.
func NewLoggingAssetFetcher(next imgseed.AssetFetcher, logger *slog.Logger) *LoggingAssetFetcher {
	return &LoggingAssetFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs bytes written.
func (f *LoggingAssetFetcher) Fetch(ctx context.Context, url, dst string) (n int64, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"dst", dst,
			"bytes", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url, dst)
}
