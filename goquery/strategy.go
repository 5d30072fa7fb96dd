// Package goquery implements imgseed.Resolver by querying rendered pages
// with github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/imgseed"
)

// Strategy is one extraction heuristic in a resolver cascade.
// Find is pure: it only inspects the document.
type Strategy struct {
	Name string
	Find func(doc *goquery.Document) (string, bool)
}

// Cascade evaluates strategies in order and returns the first hit
// along with the name of the strategy that produced it.
func Cascade(doc *goquery.Document, strategies []Strategy) (url string, name string, ok bool) {
	for _, s := range strategies {
		if u, ok := s.Find(doc); ok {
			return u, s.Name, true
		}
	}
	return "", "", false
}

// ParseHTML parses a rendered page into a queryable document.
func ParseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, imgseed.Errorf(imgseed.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// FirstAttr returns the first non-empty attr value among elements matching
// selector for which accept returns true.
func FirstAttr(doc *goquery.Document, selector, attr string, accept func(string) bool) (string, bool) {
	var found string
	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		v, exists := sel.Attr(attr)
		if !exists || v == "" {
			return true
		}
		if accept != nil && !accept(v) {
			return true
		}
		found = v
		return false
	})
	return found, found != ""
}

// OpenGraphImage returns a strategy reading the og:image meta tag.
// When host is non-empty the content must contain it.
func OpenGraphImage(host string) Strategy {
	return Strategy{
		Name: "og:image",
		Find: func(doc *goquery.Document) (string, bool) {
			return FirstAttr(doc, `meta[property="og:image"]`, "content", containsHost(host))
		},
	}
}

// containsHost returns an accept func requiring host as a substring.
// An empty host accepts everything.
func containsHost(host string) func(string) bool {
	return func(v string) bool {
		return host == "" || strings.Contains(v, host)
	}
}
