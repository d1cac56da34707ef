package middleware

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Logging writes one entry per request once the response has been sent.
func Logging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status_code", m.Code),
				zap.Int64("response_size", m.Written),
				zap.String("remote", r.RemoteAddr),
				zap.String("origin", r.Header.Get("Origin")),
				zap.Duration("took", m.Duration),
			}
			if reqID := chimw.GetReqID(r.Context()); reqID != "" {
				fields = append(fields, zap.String("request_id", reqID))
			}

			switch {
			case m.Code >= http.StatusInternalServerError:
				log.Error("Request", fields...)
			case m.Code >= http.StatusBadRequest:
				log.Warn("Request", fields...)
			default:
				log.Info("Request", fields...)
			}
		})
	}
}
