package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

// Logger returns middleware that logs each HTTP request with method, path,
// status code, duration and the request, learner and role identifiers.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.written),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			// Auth runs inside Logger, so identity is read from the inner request.
			if sw.learnerID != "" {
				attrs = append(attrs, slog.String("learner_id", sw.learnerID), slog.String("role", sw.role))
			}

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code,
// the body size and the identity resolved further down the chain.
type statusWriter struct {
	http.ResponseWriter
	status      int
	written     int
	wroteHeader bool
	learnerID   string
	role        string
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// identityRecorder is implemented by statusWriter so that Auth can report the
// caller back to the access log.
type identityRecorder interface {
	recordIdentity(learnerID, role string)
}

func (w *statusWriter) recordIdentity(learnerID, role string) {
	w.learnerID = learnerID
	w.role = role
}
