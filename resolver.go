package imgseed

import "context"

// Resolver finds the direct asset URL on the page currently loaded in a Session.
type Resolver interface {
	// Resolve returns the best direct asset URL for the rendered page.
	// Returns ENOTFOUND if no extraction strategy produced a usable URL.
	Resolve(ctx context.Context, session Session) (string, error)
}
