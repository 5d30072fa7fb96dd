package mock

import (
	"context"

	"github.com/fwojciec/imgseed"
)

var _ imgseed.FailureWriter = (*FailureWriter)(nil)

// FailureWriter is a mock implementation of imgseed.FailureWriter.
type FailureWriter struct {
	WriteFailuresFn func(ctx context.Context, items []imgseed.Item) error
}

func (w *FailureWriter) WriteFailures(ctx context.Context, items []imgseed.Item) error {
	return w.WriteFailuresFn(ctx, items)
}
