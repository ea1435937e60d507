package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/service/conversation"
)

type conversationService interface {
	Start() conversation.StepResult
	Step(ctx context.Context, draft domain.ManualAddDraft, input string) (conversation.StepResult, error)
}

// ConversationHandler serves the step-by-step manual add. The client echoes
// the returned draft back with every answer.
type ConversationHandler struct {
	svc conversationService
	log *slog.Logger
}

// NewConversationHandler creates a ConversationHandler.
func NewConversationHandler(svc conversationService, logger *slog.Logger) *ConversationHandler {
	return &ConversationHandler{svc: svc, log: logger.With("handler", "conversation")}
}

type stepRequest struct {
	Draft *domain.ManualAddDraft `json:"draft"`
	Input string                 `json:"input"`
}

type stepResponse struct {
	Draft  domain.ManualAddDraft `json:"draft"`
	Prompt string                `json:"prompt"`
	Done   bool                  `json:"done"`
	Saved  *addWordResponse      `json:"saved,omitempty"`
}

// stepErrorResponse carries the draft to continue from alongside the
// rejected fields.
type stepErrorResponse struct {
	stepResponse
	Error  string          `json:"error"`
	Fields []fieldResponse `json:"fields,omitempty"`
}

// Start handles POST /api/v1/conversations/manual.
func (h *ConversationHandler) Start(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStepResponse(h.svc.Start()))
}

// Step handles POST /api/v1/conversations/manual/step.
func (h *ConversationHandler) Step(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var draft domain.ManualAddDraft
	if req.Draft != nil {
		draft = *req.Draft
	}

	res, err := h.svc.Step(r.Context(), draft, req.Input)
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		resp := stepErrorResponse{stepResponse: toStepResponse(res), Error: "validation error"}
		for _, fe := range verr.Errors {
			resp.Fields = append(resp.Fields, fieldResponse{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	case err != nil:
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStepResponse(res))
}

func toStepResponse(res conversation.StepResult) stepResponse {
	resp := stepResponse{Draft: res.Draft, Prompt: res.Prompt, Done: res.Draft.Done()}
	if res.Saved != nil {
		saved := toAddWordResponse(*res.Saved)
		resp.Saved = &saved
	}
	return resp
}
