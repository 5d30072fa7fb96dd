package imgseed_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/imgseed"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := imgseed.Errorf(imgseed.ENOTFOUND, "no image for %q", "Almonds")

	assert.Equal(t, imgseed.ENOTFOUND, imgseed.ErrorCode(err))
	assert.Equal(t, "no image for \"Almonds\"", imgseed.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, imgseed.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, imgseed.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("resolving: %w", imgseed.Errorf(imgseed.EHTTP, "HTTP 403"))

	assert.Equal(t, imgseed.EHTTP, imgseed.ErrorCode(err))
	assert.Equal(t, "HTTP 403", imgseed.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection reset")

	assert.Equal(t, imgseed.EINTERNAL, imgseed.ErrorCode(err))
	assert.Equal(t, "connection reset", imgseed.ErrorMessage(err))
}
