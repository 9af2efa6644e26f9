package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jonanatree/cardcheck/internal/middleware"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newRouter(buf *bytes.Buffer) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	r := chi.NewRouter()
	r.Use(middleware.NewStructuredLogger(logger))
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		middleware.LoggerFrom(r.Context(), nil).Info("inside handler")
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func TestStructuredLogger_AssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(&buf)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(middleware.RequestIDHeader)
	require.NotEmpty(t, id)
	require.Contains(t, buf.String(), "request_id="+id)
	require.Contains(t, buf.String(), "inside handler")
	require.Contains(t, buf.String(), "status=200")
}

func TestStructuredLogger_ReusesIncomingID(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(&buf)

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
	require.Contains(t, buf.String(), "level=ERROR")
	require.Contains(t, buf.String(), "status=500")
}

func TestLoggerFrom_Fallback(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Same(t, fallback, middleware.LoggerFrom(req.Context(), fallback))
}
