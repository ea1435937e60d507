package dictionary

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 1. ListEntries
// ---------------------------------------------------------------------------

// ListEntries lists the public catalog, or the caller's personal words when
// input.Mine is set, ordered by topic, level and insertion. Admins see up to
// AdminListLimit entries, everyone else LearnerListLimit.
func (s *Service) ListEntries(ctx context.Context, input ListInput) (*ListResult, error) {
	learnerID, hasLearner := ctxutil.LearnerIDFromCtx(ctx)
	admin := ctxutil.IsAdminCtx(ctx)
	if !hasLearner && !admin {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := LearnerListLimit
	if admin {
		limit = AdminListLimit
	}

	filter := domain.ListFilter{Topic: strings.TrimSpace(input.Topic), Limit: limit}
	countFilter := domain.EntryFilter{}
	if input.Mine {
		if !hasLearner {
			return nil, domain.NewValidationError("mine", "requires a learner identity")
		}
		filter.OwnerID = &learnerID
		countFilter.OwnerID = &learnerID
	}
	if filter.Topic != "" {
		countFilter.Topics = []string{filter.Topic}
	}

	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("dictionary.ListEntries: %w", err)
	}

	total, err := s.entries.Count(ctx, countFilter)
	if err != nil {
		return nil, fmt.Errorf("dictionary.ListEntries: count: %w", err)
	}

	return &ListResult{Entries: entries, TotalCount: total}, nil
}
