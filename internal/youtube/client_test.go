package youtube_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/jonesrussell/alsahih/infrastructure/circuitbreaker"
	infraerrors "github.com/jonesrussell/alsahih/infrastructure/errors"
	"github.com/jonesrussell/alsahih/internal/youtube"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObserveUpstream(endpoint, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, endpoint+":"+outcome)
}

func TestSearchRecent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "chan", q.Get("channelId"))
		assert.Equal(t, "date", q.Get("order"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "15", q.Get("maxResults"))
		assert.Equal(t, "k", q.Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"id":{"kind":"youtube#video","videoId":"a"}},
			{"id":{"kind":"youtube#channel"}},
			{"id":{"videoId":"b"}}
		]}`))
	}))
	defer server.Close()

	obs := &recordingObserver{}
	client := youtube.NewClient(youtube.Config{BaseURL: server.URL, Observer: obs})

	ids, err := client.SearchRecent(context.Background(), "k", "chan", 15)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, []string{"search:ok"}, obs.outcomes)
}

func TestVideos(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "contentDetails,snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "a,b", r.URL.Query().Get("id"))

		_, _ = w.Write([]byte(`{"items":[
			{"id":"a","snippet":{"title":"A","publishedAt":"2024-01-02T00:00:00Z",
				"thumbnails":{"high":{"url":"https://img/a-high.jpg","width":480,"height":360}}},
			 "contentDetails":{"duration":"PT45S"}},
			{"id":"b","snippet":{"title":"B","publishedAt":"2024-01-01T00:00:00Z"},
			 "contentDetails":{"duration":"PT2M"}}
		]}`))
	}))
	defer server.Close()

	client := youtube.NewClient(youtube.Config{BaseURL: server.URL})

	videos, err := client.Videos(context.Background(), "k", []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "A", videos[0].Snippet.Title)
	assert.Equal(t, "PT45S", videos[0].ContentDetails.Duration)
	require.NotNil(t, videos[0].Snippet.Thumbnails.High)
	assert.Equal(t, "https://img/a-high.jpg", videos[0].Snippet.Thumbnails.High.URL)
	assert.Nil(t, videos[1].Snippet.Thumbnails.Maxres)
}

func TestVideos_EmptyIDsMakesNoRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := youtube.NewClient(youtube.Config{BaseURL: server.URL})

	videos, err := client.Videos(context.Background(), "k", nil)
	require.NoError(t, err)
	assert.Empty(t, videos)
	assert.Zero(t, calls.Load())
}

func TestVideos_BatchTooLarge(t *testing.T) {
	t.Parallel()

	client := youtube.NewClient(youtube.Config{BaseURL: "http://unused.invalid"})
	ids := make([]string, youtube.MaxBatchSize+1)

	_, err := client.Videos(context.Background(), "k", ids)
	require.Error(t, err)
}

func TestClient_UpstreamErrorEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded","errors":[{"reason":"quotaExceeded"}]}}`))
	}))
	defer server.Close()

	obs := &recordingObserver{}
	client := youtube.NewClient(youtube.Config{BaseURL: server.URL, Observer: obs})

	_, err := client.SearchRecent(context.Background(), "secret-key", "chan", 15)
	require.Error(t, err)

	code, ok := infraerrors.GetHTTPStatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.NotContains(t, err.Error(), "secret-key")
	assert.Equal(t, []string{"search:http_error"}, obs.outcomes)
}

func TestClient_DecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	obs := &recordingObserver{}
	client := youtube.NewClient(youtube.Config{BaseURL: server.URL, Observer: obs})

	_, err := client.SearchRecent(context.Background(), "k", "chan", 15)
	require.Error(t, err)
	assert.Equal(t, []string{"search:decode_error"}, obs.outcomes)
}

func TestClient_TransportErrorRedactsKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := youtube.NewClient(youtube.Config{BaseURL: baseURL})

	_, err := client.SearchRecent(context.Background(), "secret-key", "chan", 15)
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "secret-key"), "error leaked key: %v", err)
}

func TestClient_BreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	breaker := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 2, Timeout: time.Hour})
	obs := &recordingObserver{}
	client := youtube.NewClient(youtube.Config{BaseURL: server.URL, Breaker: breaker, Observer: obs})

	for range 2 {
		_, err := client.SearchRecent(context.Background(), "k", "chan", 15)
		require.Error(t, err)
	}
	assert.Equal(t, circuitbreaker.StateOpen, client.BreakerState())

	_, err := client.SearchRecent(context.Background(), "k", "chan", 15)
	require.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "search:circuit_open", obs.outcomes[len(obs.outcomes)-1])
}

func TestClient_RateLimitedWhenContextEnds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	// One token, refilled once an hour.
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	client := youtube.NewClient(youtube.Config{BaseURL: server.URL, Limiter: limiter})

	_, err := client.SearchRecent(context.Background(), "k", "chan", 15)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.SearchRecent(ctx, "k", "chan", 15)
	require.ErrorIs(t, err, youtube.ErrRateLimited)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_BreakerStateWithoutBreaker(t *testing.T) {
	t.Parallel()

	client := youtube.NewClient(youtube.Config{})
	assert.Equal(t, circuitbreaker.StateClosed, client.BreakerState())
}
