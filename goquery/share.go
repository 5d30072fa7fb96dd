package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/imgseed"
)

// ShareHostMarkers identify hosted images on share pages, in priority order.
var ShareHostMarkers = []string{"googleusercontent", "lh3.", "lh5."}

// Ensure ShareResolver implements imgseed.Resolver at compile time.
var _ imgseed.Resolver = (*ShareResolver)(nil)

// ShareResolver resolves the shared image on a photo share page.
type ShareResolver struct {
	strategies []Strategy
}

// NewShareResolver creates a ShareResolver with the default cascade.
func NewShareResolver() *ShareResolver {
	return &ShareResolver{strategies: ShareStrategies()}
}

// ShareStrategies returns the share page cascade: hosted images by marker
// priority, then og:image.
func ShareStrategies() []Strategy {
	return []Strategy{
		HostedImage(ShareHostMarkers),
		OpenGraphImage(""),
	}
}

// HostedImage tries each marker as an img src substring selector in turn and
// accepts the first image whose src contains any of the markers.
func HostedImage(markers []string) Strategy {
	hasMarker := func(src string) bool {
		for _, m := range markers {
			if strings.Contains(src, m) {
				return true
			}
		}
		return false
	}
	return Strategy{
		Name: "hosted",
		Find: func(doc *goquery.Document) (string, bool) {
			for _, m := range markers {
				if u, ok := FirstAttr(doc, fmt.Sprintf(`img[src*=%q]`, m), "src", hasMarker); ok {
					return u, true
				}
			}
			return "", false
		},
	}
}

// Resolve runs the cascade over the rendered share page.
func (r *ShareResolver) Resolve(ctx context.Context, session imgseed.Session) (string, error) {
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
	return "", imgseed.Errorf(imgseed.ENOTFOUND, "could not find image on share page")
}
