package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"insights_api/internal/metrics"
	"insights_api/internal/middleware"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := middleware.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(middleware.RequestIDHeader)
	}))

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))

		id := w.Header().Get(middleware.RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, id, seen)
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/data", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, "abc123", w.Header().Get(middleware.RequestIDHeader))
		require.Equal(t, "abc123", seen)
	})
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	h := middleware.MetricsMiddleware(m, func(*http.Request) string { return "/data" })(
		middleware.LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})),
	)

	for i := 0; i < 2; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/data", nil))
	}

	require.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/data", "500")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/data", "200")))
}
