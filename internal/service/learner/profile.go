package learner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

// Profile is a learner with delivery statistics.
type Profile struct {
	domain.Learner
	SeenCount int
}

// Register creates the authenticated learner's account, or returns the
// existing one unchanged. New learners get the user role, no filters and
// daily delivery disabled.
func (s *Service) Register(ctx context.Context, input RegisterInput) (domain.Learner, error) {
	if err := input.Validate(); err != nil {
		return domain.Learner{}, err
	}

	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return domain.Learner{}, domain.ErrUnauthorized
	}

	l, err := s.learners.Register(ctx, learnerID, strings.TrimSpace(input.Username), domain.RoleUser)
	if err != nil {
		return domain.Learner{}, fmt.Errorf("learner.Register: %w", err)
	}

	s.log.InfoContext(ctx, "learner registered", slog.String("learner_id", learnerID.String()))
	return l, nil
}

// GetProfile returns the authenticated learner's profile.
// Returns ErrUnauthorized if no learner ID is found in context.
func (s *Service) GetProfile(ctx context.Context) (*Profile, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	l, err := s.learners.GetByID(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("learner.GetProfile: %w", err)
	}

	seen, err := s.exposures.Count(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("learner.GetProfile: count exposures: %w", err)
	}

	return &Profile{Learner: l, SeenCount: seen}, nil
}
