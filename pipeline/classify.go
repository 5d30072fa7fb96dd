package pipeline

import "strings"

// Provider identifies which resolution path handles a source URL.
type Provider int

const (
	// ProviderPrimary is the pin provider, resolved via the closeup cascade.
	ProviderPrimary Provider = iota
	// ProviderShare is a photo share link, resolved and saved as .jpg.
	ProviderShare
)

// String returns the provider name used in logs.
func (p Provider) String() string {
	switch p {
	case ProviderShare:
		return "share"
	default:
		return "primary"
	}
}

// ShareMarkers route a source URL to the share-link path when contained in it.
var ShareMarkers = []string{"share.google", "google.com"}

// Classify returns the provider responsible for sourceURL.
func Classify(sourceURL string) Provider {
	for _, m := range ShareMarkers {
		if strings.Contains(sourceURL, m) {
			return ProviderShare
		}
	}
	return ProviderPrimary
}
