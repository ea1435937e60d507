// Package acquisition turns headwords into stored entries: sources are
// aggregated, gaps are filled by the generative fallback, and the result is
// inserted with duplicate rejection.
package acquisition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryStore interface {
	InsertMany(ctx context.Context, entries []domain.Entry) (domain.InsertResult, error)
}

type learnerRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Learner, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service runs the acquisition pipeline.
type Service struct {
	log        *slog.Logger
	aggregator *Aggregator
	filler     *GapFiller
	entries    entryStore
	learners   learnerRepo
}

// NewService creates an acquisition Service.
func NewService(
	logger *slog.Logger,
	aggregator *Aggregator,
	filler *GapFiller,
	entries entryStore,
	learners learnerRepo,
) *Service {
	return &Service{
		log:        logger.With("service", "acquisition"),
		aggregator: aggregator,
		filler:     filler,
		entries:    entries,
		learners:   learners,
	}
}

// caller decides where the entries of the current request go and which source
// order applies. Admins write to the public catalog; everyone else writes to
// their personal list.
type caller struct {
	owner    *uuid.UUID
	priority []string
}

func (s *Service) resolveCaller(ctx context.Context) (caller, error) {
	learnerID, hasLearner := ctxutil.LearnerIDFromCtx(ctx)
	admin := ctxutil.IsAdminCtx(ctx)
	if !hasLearner && !admin {
		return caller{}, domain.ErrUnauthorized
	}

	var c caller
	if !admin {
		id := learnerID
		c.owner = &id
	}

	if hasLearner && s.learners != nil {
		l, err := s.learners.GetByID(ctx, learnerID)
		switch {
		case err == nil:
			c.priority = l.Preference.SourcePriority
		case errors.Is(err, domain.ErrNotFound):
		default:
			return caller{}, fmt.Errorf("get learner: %w", err)
		}
	}
	return c, nil
}

// store assigns ownership and topic and inserts the entries.
func (s *Service) store(ctx context.Context, owner *uuid.UUID, topic string, entries []domain.Entry) (domain.InsertResult, error) {
	for i := range entries {
		entries[i].OwnerID = owner
		if topic != "" {
			entries[i].Topic = topic
		}
	}
	return s.entries.InsertMany(ctx, entries)
}
