package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/service/learner"
)

type learnerService interface {
	Register(ctx context.Context, input learner.RegisterInput) (domain.Learner, error)
	GetProfile(ctx context.Context) (*learner.Profile, error)
	UpdatePreferences(ctx context.Context, input learner.UpdatePreferencesInput) (domain.Learner, error)
	UpdateDaily(ctx context.Context, input learner.UpdateDailyInput) (domain.Learner, error)
}

// LearnerHandler serves the caller's own account endpoints.
type LearnerHandler struct {
	svc learnerService
	log *slog.Logger
}

// NewLearnerHandler creates a LearnerHandler.
func NewLearnerHandler(svc learnerService, logger *slog.Logger) *LearnerHandler {
	return &LearnerHandler{svc: svc, log: logger.With("handler", "learner")}
}

type registerRequest struct {
	Username string `json:"username"`
}

// Register handles POST /api/v1/me.
func (h *LearnerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.svc.Register(r.Context(), learner.RegisterInput{Username: req.Username})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLearnerResponse(l))
}

// Profile handles GET /api/v1/me.
func (h *LearnerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

type preferencesRequest struct {
	Levels         []string `json:"levels"`
	Topics         []string `json:"topics"`
	PartsOfSpeech  []string `json:"partsOfSpeech"`
	SourcePriority []string `json:"sourcePriority"`
}

// UpdatePreferences handles PATCH /api/v1/me/preferences. Omitted lists are
// left unchanged; an empty list clears the filter.
func (h *LearnerHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.svc.UpdatePreferences(r.Context(), learner.UpdatePreferencesInput{
		Levels:         req.Levels,
		Topics:         req.Topics,
		PartsOfSpeech:  req.PartsOfSpeech,
		SourcePriority: req.SourcePriority,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLearnerResponse(l))
}

type dailyRequest struct {
	Enabled *bool   `json:"enabled"`
	Count   *int    `json:"count"`
	Time    *string `json:"time"`
}

// UpdateDaily handles PATCH /api/v1/me/daily.
func (h *LearnerHandler) UpdateDaily(w http.ResponseWriter, r *http.Request) {
	var req dailyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.svc.UpdateDaily(r.Context(), learner.UpdateDailyInput{
		Enabled: req.Enabled,
		Count:   req.Count,
		Time:    req.Time,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLearnerResponse(l))
}
