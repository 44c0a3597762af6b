package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"budget-app-go/pkg/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogTagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(&buf, slog.LevelDebug, "json")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context(), logger.Discard()).Info("goals.create: saved")
		w.WriteHeader(http.StatusCreated)
	})
	handler := chimw.RequestID(RequestLog(base)(next))

	req := httptest.NewRequest(http.MethodPost, "/goals", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var inner, access map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &inner))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &access))

	assert.Equal(t, "goals.create: saved", inner["msg"])
	assert.Equal(t, "req-42", inner["request_id"])
	assert.Equal(t, "req-42", access["request_id"])
	assert.Equal(t, "INFO", access["level"])
	assert.Equal(t, float64(http.StatusCreated), access["status"])
	assert.Equal(t, "/goals", access["path"])
}

func TestRequestLogWarnsOnServerError(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(&buf, slog.LevelInfo, "json")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	RequestLog(base)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "http.request: failed", entry["msg"])
}

func TestRequestLogKeepsHealthChecksAtDebug(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(&buf, slog.LevelInfo, "json")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	RequestLog(base)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Zero(t, buf.Len())
}
