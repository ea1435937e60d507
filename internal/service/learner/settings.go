package learner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

// UpdatePreferences changes the authenticated learner's selection filters and
// source priority. Values are validated against the closed level and part of
// speech sets and the configured sources.
func (s *Service) UpdatePreferences(ctx context.Context, input UpdatePreferencesInput) (domain.Learner, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return domain.Learner{}, domain.ErrUnauthorized
	}

	var updated domain.Learner
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.learners.GetByID(txCtx, learnerID)
		if err != nil {
			return fmt.Errorf("get learner: %w", err)
		}

		pref, err := parsePreferences(current.Preference, input, s.sources)
		if err != nil {
			return err
		}

		updated, err = s.learners.UpdatePreference(txCtx, learnerID, pref)
		if err != nil {
			return fmt.Errorf("update preference: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Learner{}, fmt.Errorf("learner.UpdatePreferences: %w", err)
	}

	s.log.InfoContext(ctx, "preferences updated", slog.String("learner_id", learnerID.String()))
	return updated, nil
}

// UpdateDaily changes the authenticated learner's daily delivery settings
// with partial updates.
func (s *Service) UpdateDaily(ctx context.Context, input UpdateDailyInput) (domain.Learner, error) {
	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return domain.Learner{}, err
	}

	// Step 2: Extract learner ID from context
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return domain.Learner{}, domain.ErrUnauthorized
	}

	// Step 3: Read, merge and write in one transaction
	var updated domain.Learner
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.learners.GetByID(txCtx, learnerID)
		if err != nil {
			return fmt.Errorf("get learner: %w", err)
		}

		updated, err = s.learners.UpdateDaily(txCtx, learnerID, applyDailyChanges(current.Daily, input))
		if err != nil {
			return fmt.Errorf("update daily: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Learner{}, fmt.Errorf("learner.UpdateDaily: %w", err)
	}

	s.log.InfoContext(ctx, "daily settings updated",
		slog.String("learner_id", learnerID.String()),
		slog.Bool("enabled", updated.Daily.Enabled),
		slog.Int("count", updated.Daily.Count),
	)
	return updated, nil
}

// applyDailyChanges merges the input changes into current settings.
func applyDailyChanges(current domain.DailySettings, input UpdateDailyInput) domain.DailySettings {
	result := current

	if input.Enabled != nil {
		result.Enabled = *input.Enabled
	}
	if input.Count != nil {
		result.Count = *input.Count
	}
	if input.Time != nil {
		result.Time = strings.TrimSpace(*input.Time)
	}

	return result
}
