package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := NewClient(zap.NewNop())
	body, err := c.Get(context.Background(), srv.URL, Options{}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestGetSetsHeaders(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
	}))
	defer srv.Close()

	c := NewClient(zap.NewNop())
	_, err := c.Get(context.Background(), srv.URL, Options{
		UserAgent: "custom-agent",
		Headers:   map[string]string{"Accept-Language": "ko-KR"},
	}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "custom-agent", gotUA)
	assert.Equal(t, "ko-KR", gotLang)
}

func TestGetDefaultsToBrowserUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := NewClient(zap.NewNop())
	_, err := c.Get(context.Background(), srv.URL, Options{}, time.Second)
	require.NoError(t, err)
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestGetNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(zap.NewNop())
	_, err := c.Get(context.Background(), srv.URL, Options{}, time.Second)
	assert.Error(t, err)
}

func TestGetHonorsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	c := NewClient(zap.NewNop())
	start := time.Now()
	_, err := c.Get(context.Background(), srv.URL, Options{}, 50*time.Millisecond)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGetWithRetryRecoversFromTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c := NewClient(zap.NewNop())
	body, err := c.GetWithRetry(context.Background(), srv.URL, Options{}, time.Second, 3)
	require.NoError(t, err)
	assert.Equal(t, "recovered", string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetWithRetryExhaustsAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(zap.NewNop())
	_, err := c.GetWithRetry(context.Background(), srv.URL, Options{}, time.Second, 2)
	assert.Error(t, err)
	assert.Equal(t, int32(3), calls.Load(), "one initial attempt plus two retries")
}

func TestGetWithRetryStopsOnCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(zap.NewNop())
	start := time.Now()
	_, err := c.GetWithRetry(ctx, srv.URL, Options{}, time.Second, 5)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "must not sit out the full backoff schedule")
}
