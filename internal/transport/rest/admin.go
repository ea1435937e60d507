package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/service/dictionary"
)

type adminCatalogService interface {
	EditField(ctx context.Context, input dictionary.EditFieldInput) (domain.Entry, error)
	ClearCatalog(ctx context.Context, topic string) (int64, error)
	ExportEntries(ctx context.Context, topic string) (*dictionary.ExportResult, error)
}

type adminLearnerService interface {
	SetRole(ctx context.Context, targetID uuid.UUID, role domain.Role) error
	DailyRecipients(ctx context.Context) ([]domain.Learner, error)
}

// AdminHandler serves admin REST endpoints. Routes are wrapped in
// middleware.RequireAdmin and the services check the role again.
type AdminHandler struct {
	catalog  adminCatalogService
	learners adminLearnerService
	log      *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(catalog adminCatalogService, learners adminLearnerService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		catalog:  catalog,
		learners: learners,
		log:      logger.With("handler", "admin"),
	}
}

type editFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// EditField handles PATCH /api/v1/admin/entries/{id}.
func (h *AdminHandler) EditField(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	var req editFieldRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	e, err := h.catalog.EditField(r.Context(), dictionary.EditFieldInput{
		EntryID: id,
		Field:   domain.EntryField(strings.ToLower(strings.TrimSpace(req.Field))),
		Value:   req.Value,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(e))
}

// Clear handles DELETE /api/v1/admin/entries?topic=. Without a topic the
// whole public catalog is removed.
func (h *AdminHandler) Clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.catalog.ClearCatalog(r.Context(), r.URL.Query().Get("topic"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

// Export handles GET /api/v1/admin/export?topic=&format=json|yaml.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalog.ExportEntries(r.Context(), r.URL.Query().Get("topic"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	if r.URL.Query().Get("format") == dictionary.FormatYAML {
		data, err := dictionary.MarshalYAML(res.Items)
		if err != nil {
			respondError(h.log, w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		w.Write(data) //nolint:errcheck
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":      res.Items,
		"exportedAt": res.ExportedAt,
	})
}

type setRoleRequest struct {
	Role string `json:"role"`
}

// SetRole handles PUT /api/v1/admin/learners/{id}/role.
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	target, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid learner id")
		return
	}

	var req setRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.learners.SetRole(r.Context(), target, domain.Role(strings.ToLower(req.Role))); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DailyRecipients handles GET /api/v1/admin/daily-recipients.
func (h *AdminHandler) DailyRecipients(w http.ResponseWriter, r *http.Request) {
	learners, err := h.learners.DailyRecipients(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]learnerResponse, len(learners))
	for i, l := range learners {
		out[i] = toLearnerResponse(l)
	}
	writeJSON(w, http.StatusOK, map[string]any{"learners": out})
}
