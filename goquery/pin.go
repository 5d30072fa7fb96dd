package goquery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/imgseed"
)

// Pin page markers. These mirror the provider's current markup and are
// expected to drift.
const (
	PinAssetHost             = "pinimg.com"
	CloseupImageSelector     = `img[elementtiming="closeupImage"]`
	CloseupContainerSelector = `[data-test-id="pin-closeup-image"] img.iFOUS5`
	StyledImageSelector      = "img.iFOUS5"
	ThumbnailMarker          = "75x75"
)

// DefaultCloseupWait bounds the wait for the closeup image to render.
const DefaultCloseupWait = 10 * time.Second

// Ensure PinResolver implements imgseed.Resolver at compile time.
var _ imgseed.Resolver = (*PinResolver)(nil)

// PinResolver resolves the full-size image on a pin page.
type PinResolver struct {
	closeupWait time.Duration
	strategies  []Strategy
}

// PinOption configures a PinResolver.
type PinOption func(*PinResolver)

// WithCloseupWait sets how long Resolve waits for the closeup image.
// Defaults to DefaultCloseupWait (10s) if not specified.
func WithCloseupWait(d time.Duration) PinOption {
	return func(r *PinResolver) {
		r.closeupWait = d
	}
}

// NewPinResolver creates a PinResolver with the default strategy cascade.
func NewPinResolver(opts ...PinOption) *PinResolver {
	r := &PinResolver{
		closeupWait: DefaultCloseupWait,
		strategies:  PinStrategies(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PinStrategies returns the pin page cascade, most specific first.
// Every strategy only accepts URLs on the provider's asset host so that
// avatars and decorative images are never returned.
func PinStrategies() []Strategy {
	return []Strategy{
		CloseupImage(),
		CloseupContainerImage(),
		StyledImage(),
		OpenGraphImage(PinAssetHost),
	}
}

// CloseupImage matches the image tagged as the closeup asset.
func CloseupImage() Strategy {
	return Strategy{
		Name: "closeup",
		Find: func(doc *goquery.Document) (string, bool) {
			return FirstAttr(doc, CloseupImageSelector, "src", containsHost(PinAssetHost))
		},
	}
}

// CloseupContainerImage matches a styled image inside the closeup container.
func CloseupContainerImage() Strategy {
	return Strategy{
		Name: "closeup-container",
		Find: func(doc *goquery.Document) (string, bool) {
			return FirstAttr(doc, CloseupContainerSelector, "src", containsHost(PinAssetHost))
		},
	}
}

// StyledImage scans every styled image and skips thumbnails.
func StyledImage() Strategy {
	return Strategy{
		Name: "styled",
		Find: func(doc *goquery.Document) (string, bool) {
			return FirstAttr(doc, StyledImageSelector, "src", func(src string) bool {
				return strings.Contains(src, PinAssetHost) && !strings.Contains(src, ThumbnailMarker)
			})
		},
	}
}

// Resolve waits for the closeup image, then runs the cascade over the
// rendered document. A wait timeout only means the first strategy will miss.
func (r *PinResolver) Resolve(ctx context.Context, session imgseed.Session) (string, error) {
	session.WaitElement(ctx, CloseupImageSelector, r.closeupWait)

	html, err := session.HTML(ctx)
	if err != nil {
		return "", fmt.Errorf("reading rendered page: %w", err)
	}

	doc, err := ParseHTML(html)
	if err != nil {
		return "", err
	}

	if u, _, ok := Cascade(doc, r.strategies); ok {
		return u, nil
	}
	return "", imgseed.Errorf(imgseed.ENOTFOUND, "could not find image URL")
}
