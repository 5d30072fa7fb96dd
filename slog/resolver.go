// Package slog provides structured logging decorators for imgseed services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/imgseed"
)

// Ensure LoggingResolver implements imgseed.Resolver.
var _ imgseed.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with logging of the resolved asset URL.
type LoggingResolver struct {
	next     imgseed.Resolver
	provider string
	logger   *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver. provider names the
// resolver in log records.
func NewLoggingResolver(next imgseed.Resolver, provider string, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, provider: provider, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the result.
func (r *LoggingResolver) Resolve(ctx context.Context, session imgseed.Session) (url string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("resolve",
			"provider", r.provider,
			"asset", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Resolve(ctx, session)
}
