// Package selector serves public entries to learners without repetition until
// the learner's filtered pool is exhausted.
package selector

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

type entryPicker interface {
	PickUnseen(ctx context.Context, learnerID uuid.UUID, f domain.EntryFilter) (domain.Entry, error)
}

type exposureRepo interface {
	Record(ctx context.Context, p domain.ExposurePair) error
	Reset(ctx context.Context, learnerID uuid.UUID, f domain.EntryFilter) (int64, error)
}

type learnerRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Learner, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service picks words for learners.
type Service struct {
	log       *slog.Logger
	entries   entryPicker
	exposures exposureRepo
	learners  learnerRepo
	tx        txManager
}

// NewService creates a selector Service.
func NewService(
	logger *slog.Logger,
	entries entryPicker,
	exposures exposureRepo,
	learners learnerRepo,
	tx txManager,
) *Service {
	return &Service{
		log:       logger.With("service", "selector"),
		entries:   entries,
		exposures: exposures,
		learners:  learners,
		tx:        tx,
	}
}

// PickWordForLearner returns a random public entry matching pref that the
// learner has not seen and records the exposure. When every matching entry
// has been seen, the learner's exposures inside the filter are cleared and
// the pick is retried once; exposures outside the filter are kept. If nothing
// matches at all, domain.ErrNoneAvailable is returned.
func (s *Service) PickWordForLearner(ctx context.Context, learnerID uuid.UUID, pref domain.LearnerPreference) (domain.Entry, error) {
	filter := pref.Filter()

	entry, err := s.pickOnce(ctx, learnerID, filter, false)
	if errors.Is(err, domain.ErrNotFound) {
		entry, err = s.pickOnce(ctx, learnerID, filter, true)
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.Entry{}, domain.ErrNoneAvailable
	case err != nil:
		return domain.Entry{}, fmt.Errorf("selector.PickWordForLearner: %w", err)
	}
	return entry, nil
}

// pickOnce runs one attempt in a transaction. With reset set, the scoped
// exposures are deleted first.
func (s *Service) pickOnce(ctx context.Context, learnerID uuid.UUID, filter domain.EntryFilter, reset bool) (domain.Entry, error) {
	var picked domain.Entry
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if reset {
			n, err := s.exposures.Reset(txCtx, learnerID, filter)
			if err != nil {
				return fmt.Errorf("reset exposures: %w", err)
			}
			s.log.InfoContext(ctx, "exposures reset",
				slog.String("learner_id", learnerID.String()),
				slog.Int64("cleared", n),
			)
		}

		e, err := s.entries.PickUnseen(txCtx, learnerID, filter)
		if err != nil {
			return err
		}
		if err := s.exposures.Record(txCtx, domain.ExposurePair{LearnerID: learnerID, EntryID: e.ID}); err != nil {
			return fmt.Errorf("record exposure: %w", err)
		}
		picked = e
		return nil
	})
	return picked, err
}

// Pick serves the calling learner one word using their stored preference.
func (s *Service) Pick(ctx context.Context) (domain.Entry, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return domain.Entry{}, domain.ErrUnauthorized
	}

	learner, err := s.learners.GetByID(ctx, learnerID)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("selector.Pick: %w", err)
	}
	return s.PickWordForLearner(ctx, learnerID, learner.Preference)
}

// PickDaily serves the learner's daily batch: Daily.Count words under the
// stored preference. It stops early when the pool is empty; an empty batch is
// domain.ErrNoneAvailable.
func (s *Service) PickDaily(ctx context.Context, learnerID uuid.UUID) ([]domain.Entry, error) {
	learner, err := s.learners.GetByID(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("selector.PickDaily: %w", err)
	}

	count := learner.Daily.Count
	if count < domain.MinDailyCount {
		count = domain.MinDailyCount
	}

	seen := make(map[int64]struct{}, count)
	out := make([]domain.Entry, 0, count)
	for range count {
		e, err := s.PickWordForLearner(ctx, learnerID, learner.Preference)
		if errors.Is(err, domain.ErrNoneAvailable) {
			break
		}
		if err != nil {
			return out, err
		}
		// A reset inside a batch can serve an entry again; a batch never repeats.
		if _, dup := seen[e.ID]; dup {
			break
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}

	if len(out) == 0 {
		return nil, domain.ErrNoneAvailable
	}
	return out, nil
}
