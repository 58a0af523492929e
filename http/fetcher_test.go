package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/pulse"
	pulsehttp "github.com/fwojciec/pulse/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := pulsehttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends browser headers", func(t *testing.T) {
		t.Parallel()

		var ua, lang string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
			lang = r.Header.Get("Accept-Language")
		}))
		defer server.Close()

		fetcher := pulsehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, pulsehttp.DefaultUserAgent, ua)
		assert.Equal(t, "en-US,en;q=0.9", lang)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := pulsehttp.NewFetcher(
			pulsehttp.WithTimeout(10*time.Millisecond),
			pulsehttp.WithRetryDelays(nil),
		)
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := pulsehttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns error for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := pulsehttp.NewFetcher(pulsehttp.WithRetryDelays(nil))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("returns EINVALID for malformed URL", func(t *testing.T) {
		t.Parallel()

		fetcher := pulsehttp.NewFetcher(pulsehttp.WithRetryDelays(nil))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://[::1")
		require.Error(t, err)
		assert.Equal(t, pulse.EINVALID, pulse.ErrorCode(err))
	})
}

func TestFetcher_Retry(t *testing.T) {
	t.Parallel()

	t.Run("retries until the server recovers", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := pulsehttp.NewFetcher(pulsehttp.WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}))

		html, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		fetcher := pulsehttp.NewFetcher(pulsehttp.WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond}))

		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("stops waiting when context is cancelled", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher := pulsehttp.NewFetcher(pulsehttp.WithRetryDelays([]time.Duration{time.Hour}))
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := fetcher.Fetch(ctx, server.URL)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
