// Package http provides an HTTP-based implementation of imgseed.AssetFetcher
// for downloading resolved image assets without the browser.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/fwojciec/imgseed"
	"golang.org/x/net/publicsuffix"
)

// DefaultFetchTimeout is the default timeout for a whole asset download.
const DefaultFetchTimeout = 30 * time.Second

// Ensure AssetFetcher implements imgseed.AssetFetcher at compile time.
var _ imgseed.AssetFetcher = (*AssetFetcher)(nil)

// AssetFetcher downloads assets with a single GET request and streams the
// body to disk.
type AssetFetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	limiter   imgseed.DomainLimiter
}

// Option configures an AssetFetcher.
type Option func(*AssetFetcher)

// WithTimeout sets the timeout for a download.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *AssetFetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
// Defaults to imgseed.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *AssetFetcher) {
		f.userAgent = ua
	}
}

// WithLimiter paces requests per registrable domain (see LimiterKey).
func WithLimiter(l imgseed.DomainLimiter) Option {
	return func(f *AssetFetcher) {
		f.limiter = l
	}
}

// NewAssetFetcher creates a new AssetFetcher.
func NewAssetFetcher(opts ...Option) *AssetFetcher {
	f := &AssetFetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: imgseed.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch downloads rawURL into dst and returns the number of bytes written.
// A partially written dst is removed when the transfer fails.
func (f *AssetFetcher) Fetch(ctx context.Context, rawURL, dst string) (int64, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return 0, imgseed.Errorf(imgseed.EINVALID, "invalid asset URL %q", rawURL)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, LimiterKey(u.Hostname())); err != nil {
			return 0, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, imgseed.Errorf(imgseed.EINVALID, "building request: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, err
		}
		return 0, imgseed.Errorf(imgseed.EHTTP, "GET %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, imgseed.Errorf(imgseed.EHTTP, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	file, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(file, resp.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		if errors.Is(err, context.Canceled) {
			return 0, err
		}
		return 0, imgseed.Errorf(imgseed.EHTTP, "reading body of %s: %v", rawURL, err)
	}

	return n, nil
}

// LimiterKey returns the pacing key for host: its registrable domain, so
// i.pinimg.com and i2.pinimg.com share one limit. IP addresses and hosts
// without a public suffix are used as is.
func LimiterKey(host string) string {
	if net.ParseIP(host) != nil {
		return host
	}
	key, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return key
}
