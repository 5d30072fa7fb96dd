package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/imgseed"
)

// Ensure LoggingSession implements imgseed.Session.
var _ imgseed.Session = (*LoggingSession)(nil)

// LoggingSession wraps a Session with debug logging.
type LoggingSession struct {
	next   imgseed.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next imgseed.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// Navigate logs the URL being loaded and delegates to the wrapped session.
func (s *LoggingSession) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, url)
}

// DismissOverlay logs whether the overlay was dismissed.
func (s *LoggingSession) DismissOverlay(ctx context.Context) (dismissed bool) {
	defer func(begin time.Time) {
		s.logger.Info("dismiss overlay",
			"dismissed", dismissed,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.DismissOverlay(ctx)
}

// WaitElement logs the selector and whether it appeared.
func (s *LoggingSession) WaitElement(ctx context.Context, selector string, timeout time.Duration) (found bool) {
	defer func(begin time.Time) {
		s.logger.Debug("wait element",
			"selector", selector,
			"found", found,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.WaitElement(ctx, selector, timeout)
}

// HTML logs the size of the rendered document.
func (s *LoggingSession) HTML(ctx context.Context) (html string, err error) {
	defer func() {
		s.logger.Debug("html",
			"bytes", len(html),
			"err", err,
		)
	}()
	return s.next.HTML(ctx)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}
