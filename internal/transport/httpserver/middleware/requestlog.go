package middleware

import (
	"net/http"
	"strings"
	"time"

	"budget-app-go/pkg/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog writes one record per request and hands downstream handlers a
// logger tagged with the request id. Place it after chi's RequestID.
func RequestLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With("request_id", chimw.GetReqID(r.Context()))
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logger.NewContext(r.Context(), reqLog)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			switch {
			case status >= http.StatusInternalServerError:
				reqLog.Warn("http.request: failed", args...)
			case r.URL.Path == "/health" || strings.HasPrefix(r.URL.Path, "/static/"):
				reqLog.Debug("http.request: served", args...)
			default:
				reqLog.Info("http.request: served", args...)
			}
		})
	}
}
