package middleware

import (
	"net/http"

	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

// RequireLearner rejects anonymous requests with 401.
func RequireLearner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.LearnerIDFromCtx(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admin callers
// with 403. Services check the role again; this keeps admin routes closed
// before any body is read.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireLearner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ctxutil.IsAdminCtx(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
