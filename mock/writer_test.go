package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/imgseed"
	"github.com/fwojciec/imgseed/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where FailureWriter is expected
	var _ imgseed.FailureWriter = &mock.FailureWriter{}
}

func TestFailureWriter_WriteFailures(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteFailuresFn", func(t *testing.T) {
		t.Parallel()

		var calledWith []imgseed.Item
		w := &mock.FailureWriter{
			WriteFailuresFn: func(_ context.Context, items []imgseed.Item) error {
				calledWith = items
				return nil
			},
		}

		items := []imgseed.Item{{Name: "Almonds", Image: "https://pinterest.com/pin/1"}}

		err := w.WriteFailures(context.Background(), items)

		require.NoError(t, err)
		assert.Equal(t, items, calledWith)
	})
}
