package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

type tokenValidator interface {
	Validate(token string) (uuid.UUID, domain.Role, error)
}

// Auth resolves a Bearer token into the learner ID and role stored in the
// request context. Requests without a token pass through anonymously; an
// invalid token is rejected with 401.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			learnerID, role, err := validator.Validate(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if rec, ok := w.(identityRecorder); ok {
				rec.recordIdentity(learnerID.String(), role.String())
			}
			ctx := ctxutil.WithLearnerID(r.Context(), learnerID)
			ctx = ctxutil.WithRole(ctx, role.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
