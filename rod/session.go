// Package rod implements imgseed.Session with headless Chrome driven by
// github.com/go-rod/rod.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/imgseed"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Defaults for page interaction.
const (
	DefaultSettle       = 3 * time.Second
	DefaultOverlayWait  = 8 * time.Second
	DefaultOverlayPause = 2 * time.Second
	DefaultNavTimeout   = 30 * time.Second
	ViewportWidth       = 1920
	ViewportHeight      = 1080
)

// Ensure Session implements imgseed.Session at compile time.
var _ imgseed.Session = (*Session)(nil)

// Session is a single headless Chrome tab reused for every page of a run.
// Close is safe to call multiple times; other methods are not safe for
// concurrent use.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page

	userAgent       string
	overlaySelector string
	settle          time.Duration
	overlayWait     time.Duration
	overlayPause    time.Duration
	navTimeout      time.Duration

	mu     sync.Mutex
	closed atomic.Bool
}

// Option configures a Session.
type Option func(*Session)

// WithUserAgent sets the user agent reported by the browser.
func WithUserAgent(ua string) Option {
	return func(s *Session) {
		s.userAgent = ua
	}
}

// WithOverlaySelector sets the CSS selector of the sign-up modal close control.
func WithOverlaySelector(selector string) Option {
	return func(s *Session) {
		s.overlaySelector = selector
	}
}

// WithSettle sets the delay applied after every navigation.
// Defaults to DefaultSettle (3s) if not specified.
func WithSettle(d time.Duration) Option {
	return func(s *Session) {
		s.settle = d
	}
}

// WithOverlayTiming sets how long DismissOverlay waits for the close control
// and how long it pauses after clicking it.
func WithOverlayTiming(wait, pause time.Duration) Option {
	return func(s *Session) {
		s.overlayWait = wait
		s.overlayPause = pause
	}
}

// WithNavigateTimeout bounds each page load and document snapshot.
// Non-positive values keep DefaultNavTimeout.
func WithNavigateTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.navTimeout = d
		}
	}
}

// NewSession launches a headless Chrome browser and opens the tab used for
// the whole run. Close must be called when the Session is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewSession(opts ...Option) (*Session, error) {
	cfg := imgseed.DefaultConfig()
	s := &Session{
		userAgent:       cfg.UserAgent,
		overlaySelector: cfg.OverlaySelector,
		settle:          DefaultSettle,
		overlayWait:     DefaultOverlayWait,
		overlayPause:    DefaultOverlayPause,
		navTimeout:      DefaultNavTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.launchBrowser(); err != nil {
		return nil, err
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = s.closeBrowser()
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  ViewportWidth,
		Height: ViewportHeight,
	}); err != nil {
		_ = s.closeBrowser()
		return nil, fmt.Errorf("setting viewport: %w", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: s.userAgent}); err != nil {
		_ = s.closeBrowser()
		return nil, fmt.Errorf("setting user agent: %w", err)
	}
	s.page = page

	return s, nil
}

// launchBrowser starts the browser process with flags suited to running
// headless inside containers.
func (s *Session) launchBrowser() error {
	lnchr := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("window-size", fmt.Sprintf("%d,%d", ViewportWidth, ViewportHeight)).
		Set("user-agent", s.userAgent).
		Leakless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill() // Clean up launched process on connection failure
		return fmt.Errorf("connecting to browser: %w", err)
	}

	s.browser = browser
	s.launcher = lnchr
	return nil
}

// Navigate loads the URL, waits for the load event and then the settle delay.
// Loading is bounded by the navigation timeout; a page that never finishes
// returns context.DeadlineExceeded.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if s.closed.Load() {
		return imgseed.Errorf(imgseed.EINVALID, "session closed")
	}

	p := s.page.Context(ctx).Timeout(s.navTimeout)
	defer p.CancelTimeout()

	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for %s to load: %w", url, err)
	}

	return sleep(ctx, s.settle)
}

// DismissOverlay clicks the sign-up modal close control if it shows up
// within the overlay wait.
func (s *Session) DismissOverlay(ctx context.Context) bool {
	if s.closed.Load() || s.overlaySelector == "" {
		return false
	}

	el, err := s.page.Context(ctx).Timeout(s.overlayWait).Element(s.overlaySelector)
	if err != nil {
		return false
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return false
	}

	_ = sleep(ctx, s.overlayPause)
	return true
}

// WaitElement waits up to timeout for selector to match.
func (s *Session) WaitElement(ctx context.Context, selector string, timeout time.Duration) bool {
	if s.closed.Load() {
		return false
	}
	_, err := s.page.Context(ctx).Timeout(timeout).Element(selector)
	return err == nil
}

// HTML returns the rendered document of the current page.
func (s *Session) HTML(ctx context.Context) (string, error) {
	if s.closed.Load() {
		return "", imgseed.Errorf(imgseed.EINVALID, "session closed")
	}
	p := s.page.Context(ctx).Timeout(s.navTimeout)
	defer p.CancelTimeout()
	return p.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closeBrowser()
}

// closeBrowser shuts down the browser and its launcher process.
func (s *Session) closeBrowser() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.launcher == nil {
		return 0
	}
	return s.launcher.PID()
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
