package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/alsahih/infrastructure/circuitbreaker"
	infragin "github.com/jonesrussell/alsahih/infrastructure/gin"
	"github.com/jonesrussell/alsahih/infrastructure/logger"
	"github.com/jonesrussell/alsahih/internal/api"
	"github.com/jonesrussell/alsahih/internal/config"
	"github.com/jonesrussell/alsahih/internal/feed"
	"github.com/jonesrussell/alsahih/internal/handler"
	"github.com/jonesrussell/alsahih/internal/telemetry"
	"github.com/jonesrussell/alsahih/internal/youtube"
)

type fakeUpstream struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			_, _ = w.Write([]byte(`{"items":[{"id":{"videoId":"a"}},{"id":{"videoId":"b"}}]}`))
		case "/videos":
			_, _ = w.Write([]byte(`{"items":[
				{"id":"a","snippet":{"title":"A","publishedAt":"2024-01-01T00:00:00Z"},"contentDetails":{"duration":"PT30S"}},
				{"id":"b","snippet":{"title":"B","publishedAt":"2024-02-01T00:00:00Z"},"contentDetails":{"duration":"PT2M"}}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func newServer(t *testing.T, apiKey, baseURL string) (*infragin.Server, *telemetry.Metrics) {
	t.Helper()

	indexPath := filepath.Join(t.TempDir(), "index_min.json")
	require.NoError(t, os.WriteFile(indexPath, []byte(`[{"id":"1"},{"uid":"2"}]`), 0o600))

	cfg := &config.Config{
		Service: config.ServiceConfig{Name: "alsahih-feed", Port: 8095, Version: "test"},
		Catalog: config.CatalogConfig{IndexPath: indexPath},
	}

	metrics := telemetry.New()
	client := youtube.NewClient(youtube.Config{
		BaseURL:  baseURL,
		Breaker:  circuitbreaker.New(circuitbreaker.Config{Timeout: time.Minute}),
		Observer: metrics,
	})
	resolver := feed.NewResolver(client, feed.Config{APIKey: apiKey, ChannelID: "UCtest"}, logger.NewNop())
	feedHandler := handler.NewFeedHandler(resolver, feed.FailureFail, metrics, logger.NewNop())

	server := api.NewServer(api.Dependencies{
		FeedHandler:    feedHandler,
		MetricsHandler: metrics.Handler(),
		RequestMetrics: metrics.HTTP.Middleware(),
		Upstream:       client,
		HasAPIKey:      resolver.HasAPIKey(),
	}, cfg, logger.NewNop())
	return server, metrics
}

func get(server *infragin.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return rec
}

func TestFeedEndpoint(t *testing.T) {
	upstream := newFakeUpstream(t)
	server, _ := newServer(t, "key", upstream.server.URL)

	rec := get(server, api.FeedPath)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, s-maxage=900, stale-while-revalidate=86400", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0]["id"])
	assert.Equal(t, "https://www.youtube.com/watch?v=b", items[0]["url"])
	assert.Equal(t, int32(2), upstream.calls.Load())
}

func TestFeedEndpoint_MissingKey(t *testing.T) {
	upstream := newFakeUpstream(t)
	server, _ := newServer(t, "", upstream.server.URL)

	rec := get(server, api.FeedPath)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Cache-Control"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "YT_API_KEY")
	assert.Zero(t, upstream.calls.Load())
}

func TestHealthEndpoint(t *testing.T) {
	upstream := newFakeUpstream(t)
	server, _ := newServer(t, "key", upstream.server.URL)

	rec := get(server, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body infragin.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, infragin.HealthStatusHealthy, body.Status)
	assert.Equal(t, infragin.HealthStatusHealthy, body.Checks["youtube"].Status)
	assert.Equal(t, "2 entries", body.Checks["content_index"].Message)
}

func TestHealthEndpoint_DegradedWithoutKey(t *testing.T) {
	server, _ := newServer(t, "", "http://unused.invalid")

	rec := get(server, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body infragin.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, infragin.HealthStatusDegraded, body.Status)
	assert.Equal(t, infragin.HealthStatusDegraded, body.Checks["youtube"].Status)
}

func TestMetricsEndpoint(t *testing.T) {
	upstream := newFakeUpstream(t)
	server, _ := newServer(t, "key", upstream.server.URL)

	_ = get(server, api.FeedPath)
	rec := get(server, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `alsahih_youtube_requests_total{endpoint="search",outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(), `alsahih_feed_resolutions_total{outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(),
		`alsahih_http_requests_total{method="GET",route="/api/youtube/shorts",status="200"} 1`)
}
