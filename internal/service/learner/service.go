// Package learner manages learner accounts: registration, selection
// preferences, daily delivery settings and roles.
package learner

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// learnerRepo defines the learner repository interface needed by learner service.
type learnerRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Learner, error)
	Register(ctx context.Context, id uuid.UUID, username string, role domain.Role) (domain.Learner, error)
	UpdatePreference(ctx context.Context, id uuid.UUID, p domain.LearnerPreference) (domain.Learner, error)
	UpdateDaily(ctx context.Context, id uuid.UUID, d domain.DailySettings) (domain.Learner, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	ListDailyEnabled(ctx context.Context) ([]domain.Learner, error)
}

// exposureCounter reports how many entries a learner has been served.
type exposureCounter interface {
	Count(ctx context.Context, learnerID uuid.UUID) (int, error)
}

// txManager defines the transaction manager interface needed by learner service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements learner profile and settings operations.
type Service struct {
	log       *slog.Logger
	learners  learnerRepo
	exposures exposureCounter
	tx        txManager
	sources   map[string]struct{}
}

// NewService creates a new learner service instance. sources are the names a
// learner may use in a source priority list.
func NewService(
	logger *slog.Logger,
	learners learnerRepo,
	exposures exposureCounter,
	tx txManager,
	sources []string,
) *Service {
	known := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		known[s] = struct{}{}
	}
	return &Service{
		log:       logger.With("service", "learner"),
		learners:  learners,
		exposures: exposures,
		tx:        tx,
		sources:   known,
	}
}
