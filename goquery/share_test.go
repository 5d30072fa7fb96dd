package goquery_test

import (
	"context"
	"testing"

	"github.com/fwojciec/imgseed"
	"github.com/fwojciec/imgseed/goquery"
	"github.com/fwojciec/imgseed/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shareSession(html string) *mock.Session {
	return &mock.Session{
		HTMLFn: func(_ context.Context) (string, error) {
			return html, nil
		},
	}
}

func TestHostedImage(t *testing.T) {
	t.Parallel()

	t.Run("prefers markers in priority order", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseHTML(`<html><body>
<img src="https://lh5.example.com/second.jpg">
<img src="https://lh3.googleusercontent.com/first=w1024">
</body></html>`)
		require.NoError(t, err)

		u, ok := goquery.HostedImage(goquery.ShareHostMarkers).Find(doc)

		require.True(t, ok)
		assert.Equal(t, "https://lh3.googleusercontent.com/first=w1024", u)
	})

	t.Run("falls back to later markers", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseHTML(`<html><body>
<img src="https://www.gstatic.com/logo.png">
<img src="https://lh5.ggpht.com/photo.jpg">
</body></html>`)
		require.NoError(t, err)

		u, ok := goquery.HostedImage(goquery.ShareHostMarkers).Find(doc)

		require.True(t, ok)
		assert.Equal(t, "https://lh5.ggpht.com/photo.jpg", u)
	})

	t.Run("misses when no image carries a marker", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseHTML(`<html><body><img src="https://www.gstatic.com/logo.png"></body></html>`)
		require.NoError(t, err)

		_, ok := goquery.HostedImage(goquery.ShareHostMarkers).Find(doc)

		assert.False(t, ok)
	})
}

func TestShareResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("returns hosted image", func(t *testing.T) {
		t.Parallel()

		session := shareSession(`<html><body><img src="https://lh3.googleusercontent.com/pw/abc"></body></html>`)

		u, err := goquery.NewShareResolver().Resolve(context.Background(), session)

		require.NoError(t, err)
		assert.Equal(t, "https://lh3.googleusercontent.com/pw/abc", u)
	})

	t.Run("falls back to og:image without host validation", func(t *testing.T) {
		t.Parallel()

		session := shareSession(`<html><head>
<meta property="og:image" content="https://photos.example.com/preview.jpg">
</head><body></body></html>`)

		u, err := goquery.NewShareResolver().Resolve(context.Background(), session)

		require.NoError(t, err)
		assert.Equal(t, "https://photos.example.com/preview.jpg", u)
	})

	t.Run("returns ENOTFOUND on empty page", func(t *testing.T) {
		t.Parallel()

		session := shareSession(`<html><body></body></html>`)

		_, err := goquery.NewShareResolver().Resolve(context.Background(), session)

		require.Error(t, err)
		assert.Equal(t, imgseed.ENOTFOUND, imgseed.ErrorCode(err))
	})
}
