package mock

import (
	"context"

	"github.com/fwojciec/imgseed"
)

var _ imgseed.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of imgseed.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, session imgseed.Session) (string, error)
}

func (r *Resolver) Resolve(ctx context.Context, session imgseed.Session) (string, error) {
	return r.ResolveFn(ctx, session)
}
