package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

// panicBody matches the REST error envelope.
const panicBody = `{"error":"internal server error"}` + "\n"

// Recovery returns middleware that recovers from panics, logs the value with
// a stack trace and answers 500 with a JSON error.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				ctx := r.Context()
				attrs := []slog.Attr{
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
				}
				if id, ok := ctxutil.LearnerIDFromCtx(ctx); ok {
					attrs = append(attrs, slog.String("learner_id", id.String()))
				}
				logger.LogAttrs(ctx, slog.LevelError, "panic recovered", attrs...)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(panicBody))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
