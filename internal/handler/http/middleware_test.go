package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/utils"
)

// ---- withTraceID ----

func executeWithTraceID(h *Handler, incoming string) (*httptest.ResponseRecorder, *http.Request) {
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if incoming != "" {
		req.Header.Set(traceIDHeader, incoming)
	}

	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestWithTraceID_TableTest(t *testing.T) {
	tests := []struct {
		name          string
		incoming      string
		wantSame      bool
		wantGenerated bool
	}{
		{name: "trace ID from request header is reused", incoming: "my-custom-trace-id", wantSame: true},
		{name: "no trace ID in request", wantGenerated: true},
		{name: "UUID string is preserved", incoming: "550e8400-e29b-41d4-a716-446655440000", wantSame: true},
		{name: "oversized trace ID is replaced", incoming: strings.Repeat("x", maxTraceIDLength+1), wantGenerated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}

			rec, captured := executeWithTraceID(h, tt.incoming)
			require.NotNil(t, captured)

			got := rec.Header().Get(traceIDHeader)
			if tt.wantSame {
				assert.Equal(t, tt.incoming, got)
			}
			if tt.wantGenerated {
				_, err := uuid.Parse(got)
				assert.NoError(t, err, "expected a generated UUID, got %q", got)
			}

			fromCtx, ok := utils.GetTraceIDFromContext(captured.Context())
			assert.True(t, ok)
			assert.Equal(t, got, fromCtx)
		})
	}
}

func TestWithTraceID_LoggerCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(traceIDHeader, "trace-42")

	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"trace_id":"trace-42"`)
}

// ---- withLogging ----

func executeWithLogging(t *testing.T, status int, body string) string {
	t.Helper()
	var buf bytes.Buffer
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != 0 {
			w.WriteHeader(status)
		}
		if body != "" {
			_, _ = w.Write([]byte(body))
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/runs?limit=5", nil)
	req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))

	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), req)
	return buf.String()
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains []string
	}{
		{
			name:   "explicit 200",
			status: http.StatusOK,
			body:   "OK",
			contains: []string{
				`"level":"info"`,
				`"method":"GET"`,
				`"uri":"/api/runs?limit=5"`,
				`"status":200`,
				`"duration":`,
				`"size":2`,
			},
		},
		{
			name:     "implicit 200 without body",
			contains: []string{`"status":200`, `"size":0`},
		},
		{
			name:     "client error",
			status:   http.StatusBadRequest,
			body:     "bad",
			contains: []string{`"level":"info"`, `"status":400`},
		},
		{
			name:     "server error is a warning",
			status:   http.StatusBadGateway,
			contains: []string{`"level":"warn"`, `"status":502`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := executeWithLogging(t, tt.status, tt.body)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

// ---- responseWriter ----

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, rw.status)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestResponseWriter_WriteAccumulatesSize(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	_, _ = rw.Write([]byte("abc"))
	_, _ = rw.Write([]byte("de"))

	assert.Equal(t, http.StatusOK, rw.status)
	assert.Equal(t, 5, rw.size)
	assert.Equal(t, "abcde", rec.Body.String())
	assert.Same(t, rec, rw.Unwrap())
}

// ---- withGZip ----

func gzipHandler(status int, body string) http.Handler {
	return withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if body != "" {
			_, _ = w.Write([]byte(body))
		}
	}))
}

func TestWithGZip_CompressesWhenAccepted(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rec := httptest.NewRecorder()

	gzipHandler(http.StatusOK, `{"runs":[]}`).ServeHTTP(rec, req)

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, `{"runs":[]}`, string(plain))
}

func TestWithGZip_PlainWhenNotAccepted(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()

	gzipHandler(http.StatusOK, "plain").ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "plain", rec.Body.String())
}

func TestWithGZip_NoContentIsNotEncoded(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	gzipHandler(http.StatusNoContent, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Zero(t, rec.Body.Len())
}

func TestWithGZip_DecompressesRequestBody(t *testing.T) {
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, _ = zw.Write([]byte("hello"))
	require.NoError(t, zw.Close())

	var got string
	h := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		got = string(b)
		assert.Empty(t, r.Header.Get("Content-Encoding"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/runs", &compressed)
	req.Header.Set("Content-Encoding", "gzip")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "hello", got)
}

func TestWithGZip_InvalidRequestBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/runs", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	gzipHandler(http.StatusOK, "unreachable").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- CheckHTTPMethod ----

func buildRouter() *chi.Mux {
	router := chi.NewRouter()
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

	router.Get("/api/items", ok)
	router.Post("/api/items", ok)
	router.Put("/api/items", ok)
	router.Route("/api/nested", func(r chi.Router) {
		r.Delete("/resource", ok)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))
	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{name: "registered method passes", method: http.MethodGet, path: "/api/items", wantStatus: http.StatusOK},
		{name: "unregistered method", method: http.MethodDelete, path: "/api/items", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET, POST, PUT"},
		{name: "nested route", method: http.MethodGet, path: "/api/nested/resource", wantStatus: http.StatusMethodNotAllowed, wantAllow: "DELETE"},
		{name: "unknown path", method: http.MethodGet, path: "/api/missing", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Allow"))
		})
	}
}
