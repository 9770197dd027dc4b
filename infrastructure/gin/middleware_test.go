package gin_test

import (
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ginpkg "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infragin "github.com/jonesrussell/alsahih/infrastructure/gin"
	"github.com/jonesrussell/alsahih/infrastructure/logger"
)

func newTestRouter(t *testing.T, handler ginpkg.HandlerFunc) *ginpkg.Engine {
	t.Helper()

	log := logger.NewNop()
	router := ginpkg.New()
	router.Use(infragin.RecoveryMiddleware(log))
	router.Use(infragin.RequestIDLoggerMiddleware(log))
	router.Use(infragin.LoggerMiddleware(log))
	router.Use(infragin.CORSMiddleware(infragin.CORSConfig{Enabled: true, AllowedOrigins: []string{"https://alsa7i7.com"}}))
	if handler == nil {
		handler = func(c *ginpkg.Context) { c.String(http.StatusOK, "ok") }
	}
	router.GET("/test", handler)
	return router
}

func TestRequestIDLoggerMiddleware_GeneratesHexID(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	id := w.Header().Get(infragin.RequestIDHeader)
	require.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
}

func TestRequestIDLoggerMiddleware_PreservesInboundID(t *testing.T) {
	t.Parallel()

	var seen string
	router := newTestRouter(t, func(c *ginpkg.Context) {
		seen = c.GetString(infragin.RequestIDKey)
		assert.NotNil(t, logger.FromContext(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(infragin.RequestIDHeader, "upstream-trace-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "upstream-trace-1", w.Header().Get(infragin.RequestIDHeader))
	assert.Equal(t, "upstream-trace-1", seen)
}

func TestRequestIDLoggerMiddleware_RejectsOversizedID(t *testing.T) {
	t.Parallel()

	oversized := strings.Repeat("x", 200)
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(infragin.RequestIDHeader, oversized)
	w := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(w, req)

	got := w.Header().Get(infragin.RequestIDHeader)
	assert.NotEqual(t, oversized, got)
	assert.NotEmpty(t, got)
}

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{name: "allowed origin", method: http.MethodGet, origin: "https://alsa7i7.com", wantStatus: http.StatusOK, wantOrigin: "https://alsa7i7.com"},
		{name: "foreign origin gets no header", method: http.MethodGet, origin: "https://evil.example", wantStatus: http.StatusOK},
		{name: "same origin request", method: http.MethodGet, wantStatus: http.StatusOK, wantOrigin: "*"},
		{name: "preflight", method: http.MethodOptions, origin: "https://alsa7i7.com", wantStatus: http.StatusNoContent, wantOrigin: "https://alsa7i7.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tc.method, "/test", http.NoBody)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			w := httptest.NewRecorder()
			newTestRouter(t, nil).ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, func(*ginpkg.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
