package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajjad-MoBe/fetchprobe/outcome"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"a":1}`))
		case "/array":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[1,"two",null]`))
		case "/error":
			http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
		case "/teapot":
			http.Error(w, "short and stout", http.StatusTeapot)
		case "/truncated":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"a":`))
		case "/text":
			w.Write([]byte("plain text, not structured data"))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestFetchSuccess(t *testing.T) {
	server := setupTestServer(t)
	defer server.Close()

	c := New(DefaultConfig())

	out := c.Fetch(context.Background(), server.URL+"/ok")
	require.True(t, out.IsSuccess())
	require.Nil(t, out.Err())

	doc, ok := out.Document()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"a": float64(1)}, doc.Value())
}

func TestFetchArrayBody(t *testing.T) {
	server := setupTestServer(t)
	defer server.Close()

	c := New(DefaultConfig())

	out := c.Fetch(context.Background(), server.URL+"/array")
	require.True(t, out.IsSuccess())

	doc, _ := out.Document()
	arr, ok := doc.Array()
	require.True(t, ok)
	assert.Equal(t, []any{float64(1), "two", nil}, arr)
}

func TestFetchTransportFailure(t *testing.T) {
	server := setupTestServer(t)
	// Closing up front guarantees a refused connection
	server.Close()

	c := New(DefaultConfig())

	out := c.Fetch(context.Background(), server.URL+"/ok")
	require.False(t, out.IsSuccess())
	assert.Equal(t, outcome.KindTransport, out.Err().Kind)
	_, ok := out.Document()
	assert.False(t, ok)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := setupTestServer(t)
	defer server.Close()

	c := New(DefaultConfig())

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "server error", path: "/error", wantStatus: http.StatusInternalServerError},
		{name: "client error", path: "/teapot", wantStatus: http.StatusTeapot},
		{name: "not found", path: "/missing", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := c.Fetch(context.Background(), server.URL+tt.path)
			require.False(t, out.IsSuccess())
			// The body is never parsed on a non-success status, even
			// when it happens to be valid JSON
			assert.Equal(t, outcome.KindStatus, out.Err().Kind)
			assert.Equal(t, tt.wantStatus, out.Err().StatusCode)
		})
	}
}

func TestFetchMalformedBody(t *testing.T) {
	server := setupTestServer(t)
	defer server.Close()

	c := New(DefaultConfig())

	for _, path := range []string{"/truncated", "/text"} {
		out := c.Fetch(context.Background(), server.URL+path)
		require.False(t, out.IsSuccess(), path)
		assert.Equal(t, outcome.KindParse, out.Err().Kind, path)
	}
}

func TestFetchIdempotence(t *testing.T) {
	server := setupTestServer(t)
	defer server.Close()

	c := New(DefaultConfig())

	first := c.Fetch(context.Background(), server.URL+"/ok")
	second := c.Fetch(context.Background(), server.URL+"/ok")

	require.True(t, first.IsSuccess())
	require.True(t, second.IsSuccess())

	firstDoc, _ := first.Document()
	secondDoc, _ := second.Document()
	assert.True(t, firstDoc.Equal(secondDoc))
}

func TestFetchNoRetryByDefault(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := New(DefaultConfig())

	out := c.Fetch(context.Background(), server.URL)
	assert.False(t, out.IsSuccess())
	assert.Equal(t, int64(1), attempts.Load())
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	config := DefaultConfig()
	config.MaxRetries = 3
	config.RetryDelay = time.Millisecond
	c := New(config)

	out := c.Fetch(context.Background(), server.URL)
	require.True(t, out.IsSuccess())
	assert.Equal(t, int64(3), attempts.Load())
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	config := DefaultConfig()
	config.MaxRetries = 3
	config.RetryDelay = time.Millisecond
	c := New(config)

	out := c.Fetch(context.Background(), server.URL)
	assert.False(t, out.IsSuccess())
	assert.Equal(t, outcome.KindStatus, out.Err().Kind)
	assert.Equal(t, int64(1), attempts.Load())
}

func TestFetchBodyCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/long-number":
			// A truncated prefix of this body is itself valid JSON
			w.Write([]byte(`123456789012345`))
		case "/long-object":
			w.Write([]byte(`{"key":"a long value that does not fit the cap"}`))
		case "/fits":
			w.Write([]byte(`{"a":1}`))
		}
	}))
	defer server.Close()

	config := DefaultConfig()
	config.MaxBodyBytes = 8
	c := New(config)

	tests := []struct {
		name string
		path string
	}{
		{name: "scalar prefix decodes but body is capped", path: "/long-number"},
		{name: "object larger than cap", path: "/long-object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := c.Fetch(context.Background(), server.URL+tt.path)
			require.False(t, out.IsSuccess())
			assert.Equal(t, outcome.KindParse, out.Err().Kind)
			_, ok := out.Document()
			assert.False(t, ok)
		})
	}

	t.Run("body within cap succeeds", func(t *testing.T) {
		config := DefaultConfig()
		config.MaxBodyBytes = int64(len(`{"a":1}`))
		out := New(config).Fetch(context.Background(), server.URL+"/fits")
		require.True(t, out.IsSuccess())
		doc, _ := out.Document()
		assert.Equal(t, map[string]any{"a": float64(1)}, doc.Value())
	})
}

func TestFetchNegativeRetriesMeansNoRetry(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	config := DefaultConfig()
	config.MaxRetries = -1
	config.RetryDelay = time.Millisecond
	c := New(config)

	out := c.Fetch(context.Background(), server.URL)
	assert.False(t, out.IsSuccess())
	assert.Equal(t, int64(1), attempts.Load())
}

func TestFetchContextCancellation(t *testing.T) {
	server := setupTestServer(t)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(DefaultConfig())
	out := c.Fetch(ctx, server.URL+"/ok")

	require.False(t, out.IsSuccess())
	assert.Equal(t, outcome.KindTransport, out.Err().Kind)
}
