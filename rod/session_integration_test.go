//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/imgseed"
	"github.com/fwojciec/imgseed/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Session implements imgseed.Session.
var _ imgseed.Session = (*rod.Session)(nil)

func newTestSession(t *testing.T, opts ...rod.Option) *rod.Session {
	t.Helper()
	opts = append([]rod.Option{
		rod.WithSettle(0),
		rod.WithOverlayTiming(500*time.Millisecond, 0),
	}, opts...)
	session, err := rod.NewSession(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func TestSession_Navigate_RendersScriptInjectedImage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><body>
<div id="pin"></div>
<script>
setTimeout(function() {
  var img = document.createElement('img');
  img.setAttribute('elementtiming', 'closeupImage');
  img.src = 'https://i.pinimg.com/736x/aa/bb/cc.jpg';
  document.getElementById('pin').appendChild(img);
}, 200);
</script>
</body></html>`))
	}))
	defer srv.Close()

	session := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, session.Navigate(ctx, srv.URL))
	found := session.WaitElement(ctx, `img[elementtiming="closeupImage"]`, 5*time.Second)
	require.True(t, found)

	html, err := session.HTML(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "i.pinimg.com/736x/aa/bb/cc.jpg")
}

func TestSession_WaitElement_TimesOut(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>nothing here</body></html>`))
	}))
	defer srv.Close()

	session := newTestSession(t)
	ctx := context.Background()
	require.NoError(t, session.Navigate(ctx, srv.URL))

	start := time.Now()
	found := session.WaitElement(ctx, "img.missing", 300*time.Millisecond)

	assert.False(t, found)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestSession_DismissOverlay(t *testing.T) {
	t.Parallel()

	t.Run("clicks close control when present", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body>
<div id="modal"><button class="close-modal" onclick="document.getElementById('modal').remove()">x</button></div>
</body></html>`))
		}))
		defer srv.Close()

		session := newTestSession(t, rod.WithOverlaySelector(".close-modal"))
		ctx := context.Background()
		require.NoError(t, session.Navigate(ctx, srv.URL))

		assert.True(t, session.DismissOverlay(ctx))

		html, err := session.HTML(ctx)
		require.NoError(t, err)
		assert.NotContains(t, html, `id="modal"`)
	})

	t.Run("reports false when overlay never appears", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body>no modal</body></html>`))
		}))
		defer srv.Close()

		session := newTestSession(t, rod.WithOverlaySelector(".close-modal"))
		ctx := context.Background()
		require.NoError(t, session.Navigate(ctx, srv.URL))

		assert.False(t, session.DismissOverlay(ctx))
	})
}

func TestSession_Close_Idempotent(t *testing.T) {
	t.Parallel()

	session, err := rod.NewSession()
	require.NoError(t, err)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())
}

func TestSession_Navigate_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	session, err := rod.NewSession()
	require.NoError(t, err)
	require.NoError(t, session.Close())

	err = session.Navigate(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, imgseed.EINVALID, imgseed.ErrorCode(err))
	assert.Contains(t, imgseed.ErrorMessage(err), "closed")
}

func TestSession_Navigate_ContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	session := newTestSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := session.Navigate(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSession_Navigate_TimesOutOnStalledPage(t *testing.T) {
	t.Parallel()

	// Headers and a partial body are sent, but the response never completes,
	// so the load event never fires.
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>partial`))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	session := newTestSession(t, rod.WithNavigateTimeout(300*time.Millisecond))

	start := time.Now()
	err := session.Navigate(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestSession_Navigate_RecoversAfterTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	stalled := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer stalled.Close()
	defer close(release)

	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p id="ready">ready</p></body></html>`))
	}))
	defer ok.Close()

	session := newTestSession(t, rod.WithNavigateTimeout(300*time.Millisecond))

	require.Error(t, session.Navigate(context.Background(), stalled.URL))

	require.NoError(t, session.Navigate(context.Background(), ok.URL))
	html, err := session.HTML(context.Background())
	require.NoError(t, err)
	assert.Contains(t, html, "ready")
}
