package mock

import (
	"context"
	"time"

	"github.com/fwojciec/imgseed"
)

var _ imgseed.Session = (*Session)(nil)

// Session is a mock implementation of imgseed.Session.
type Session struct {
	NavigateFn       func(ctx context.Context, url string) error
	DismissOverlayFn func(ctx context.Context) bool
	WaitElementFn    func(ctx context.Context, selector string, timeout time.Duration) bool
	HTMLFn           func(ctx context.Context) (string, error)
	CloseFn          func() error
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) DismissOverlay(ctx context.Context) bool {
	return s.DismissOverlayFn(ctx)
}

func (s *Session) WaitElement(ctx context.Context, selector string, timeout time.Duration) bool {
	return s.WaitElementFn(ctx, selector, timeout)
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *Session) Close() error {
	return s.CloseFn()
}
