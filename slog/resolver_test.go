package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/imgseed"
	"github.com/fwojciec/imgseed/mock"
	isslog "github.com/fwojciec/imgseed/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("logs provider and resolved asset", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			ResolveFn: func(_ context.Context, _ imgseed.Session) (string, error) {
				return "https://i.pinimg.com/736x/a.jpg", nil
			},
		}

		r := isslog.NewLoggingResolver(inner, "primary", logger)
		url, err := r.Resolve(context.Background(), &mock.Session{})

		require.NoError(t, err)
		assert.Equal(t, "https://i.pinimg.com/736x/a.jpg", url)
		output := buf.String()
		assert.Contains(t, output, "resolve")
		assert.Contains(t, output, "provider=primary")
		assert.Contains(t, output, "asset=https://i.pinimg.com/736x/a.jpg")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error when nothing is found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			ResolveFn: func(_ context.Context, _ imgseed.Session) (string, error) {
				return "", imgseed.Errorf(imgseed.ENOTFOUND, "could not find image URL")
			},
		}

		r := isslog.NewLoggingResolver(inner, "share", logger)
		_, err := r.Resolve(context.Background(), &mock.Session{})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "provider=share")
		assert.Contains(t, output, "could not find image URL")
	})

	t.Run("passes session through", func(t *testing.T) {
		t.Parallel()

		session := &mock.Session{}
		var got imgseed.Session
		inner := &mock.Resolver{
			ResolveFn: func(_ context.Context, s imgseed.Session) (string, error) {
				got = s
				return "u", nil
			},
		}

		r := isslog.NewLoggingResolver(inner, "primary", slog.New(slog.DiscardHandler))
		_, err := r.Resolve(context.Background(), session)

		require.NoError(t, err)
		assert.Same(t, session, got)
	})
}
