// Package conversation drives the multi-step manual add. The draft travels
// with the client between steps; the service keeps no per-learner state.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/service/acquisition"
)

type manualAdder interface {
	AddManual(ctx context.Context, input acquisition.ManualInput) (acquisition.AddWordResult, error)
}

// Service advances manual-add drafts.
type Service struct {
	log   *slog.Logger
	adder manualAdder
}

// NewService creates a new conversation service instance.
func NewService(logger *slog.Logger, adder manualAdder) *Service {
	return &Service{
		log:   logger.With("service", "conversation"),
		adder: adder,
	}
}

// StepResult is the outcome of one answered question.
type StepResult struct {
	Draft  domain.ManualAddDraft
	Prompt string
	// Saved is set once the last answer has been stored.
	Saved *acquisition.AddWordResult
}

// Start returns a fresh draft and its first question.
func (s *Service) Start() StepResult {
	d := domain.NewManualAddDraft()
	return StepResult{Draft: d, Prompt: d.Prompt()}
}

// Step records input as the answer to the draft's current question. When the
// draft is complete its entry is completed by the gap filler and stored. On a
// validation error the draft is returned unchanged so the client can retry,
// except when the entry could not get a definition: the draft then goes back
// to the definition question.
func (s *Service) Step(ctx context.Context, draft domain.ManualAddDraft, input string) (StepResult, error) {
	if draft.Step == "" {
		draft = domain.NewManualAddDraft()
	}

	next, err := draft.Advance(input)
	if err != nil {
		return StepResult{Draft: draft, Prompt: draft.Prompt()}, err
	}

	if !next.Done() {
		return StepResult{Draft: next, Prompt: next.Prompt()}, nil
	}

	res, err := s.adder.AddManual(ctx, acquisition.ManualInput{Entry: next.Entry()})
	if err != nil {
		back := draft
		if missingDefinition(err) {
			back.Step = domain.StepDefinition
			back.Definition = ""
		}
		return StepResult{Draft: back, Prompt: back.Prompt()}, fmt.Errorf("conversation.Step: %w", err)
	}

	s.log.DebugContext(ctx, "manual add finished",
		slog.String("headword", next.Headword),
		slog.Int("inserted", res.Inserted),
	)
	return StepResult{Draft: next, Prompt: next.Prompt(), Saved: &res}, nil
}

func missingDefinition(err error) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve.Errors {
		if fe.Field == "definition" {
			return true
		}
	}
	return false
}
