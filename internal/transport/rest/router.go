package rest

import (
	"net/http"

	"github.com/heartmarshall/lingo-backend/internal/transport/middleware"
)

// Handlers groups every REST handler the router mounts.
type Handlers struct {
	Health       *HealthHandler
	Words        *WordsHandler
	Learner      *LearnerHandler
	Conversation *ConversationHandler
	Admin        *AdminHandler
}

// NewRouter registers all routes. Probes are public; everything under
// /api/v1 needs a learner identity and /api/v1/admin the admin role.
// Cross-cutting middleware is applied by the caller.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	learner := func(fn http.HandlerFunc) http.Handler { return middleware.RequireLearner(fn) }
	admin := func(fn http.HandlerFunc) http.Handler { return middleware.RequireAdmin(fn) }

	mux.Handle("POST /api/v1/me", learner(h.Learner.Register))
	mux.Handle("GET /api/v1/me", learner(h.Learner.Profile))
	mux.Handle("PATCH /api/v1/me/preferences", learner(h.Learner.UpdatePreferences))
	mux.Handle("PATCH /api/v1/me/daily", learner(h.Learner.UpdateDaily))

	mux.Handle("POST /api/v1/words", learner(h.Words.Add))
	mux.Handle("GET /api/v1/words", learner(h.Words.List))
	mux.Handle("POST /api/v1/words/bulk", learner(h.Words.AddBulk))
	mux.Handle("POST /api/v1/words/manual", learner(h.Words.AddManual))
	mux.Handle("POST /api/v1/words/import", learner(h.Words.Import))
	mux.Handle("GET /api/v1/words/mine", learner(h.Words.ListMine))
	mux.Handle("DELETE /api/v1/words/mine", learner(h.Words.ClearMine))
	mux.Handle("POST /api/v1/words/pick", learner(h.Words.Pick))
	mux.Handle("POST /api/v1/words/daily", learner(h.Words.Daily))

	mux.Handle("POST /api/v1/conversations/manual", learner(h.Conversation.Start))
	mux.Handle("POST /api/v1/conversations/manual/step", learner(h.Conversation.Step))

	mux.Handle("PATCH /api/v1/admin/entries/{id}", admin(h.Admin.EditField))
	mux.Handle("DELETE /api/v1/admin/entries", admin(h.Admin.Clear))
	mux.Handle("GET /api/v1/admin/export", admin(h.Admin.Export))
	mux.Handle("PUT /api/v1/admin/learners/{id}/role", admin(h.Admin.SetRole))
	mux.Handle("GET /api/v1/admin/daily-recipients", admin(h.Admin.DailyRecipients))

	return mux
}
