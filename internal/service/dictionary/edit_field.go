package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 2. EditField
// ---------------------------------------------------------------------------

// EditField changes one field of an entry. Admin only. Levels are normalized
// to the CEFR scale; a title edit that collides with another entry of the
// same owner and topic fails with domain.ErrAlreadyExists.
func (s *Service) EditField(ctx context.Context, input EditFieldInput) (domain.Entry, error) {
	if err := requireAdmin(ctx); err != nil {
		return domain.Entry{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.Entry{}, err
	}

	value := strings.TrimSpace(input.Value)
	switch input.Field {
	case domain.EntryFieldLevel:
		value = domain.NormalizeLevel(value).String()
	case domain.EntryFieldTopic:
		if value == "" {
			value = domain.DefaultTopic
		}
	}

	updated, err := s.entries.UpdateField(ctx, input.EntryID, input.Field, value)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("dictionary.EditField: %w", err)
	}

	s.log.InfoContext(ctx, "entry edited",
		slog.Int64("entry_id", input.EntryID),
		slog.String("field", input.Field.String()),
	)
	return updated, nil
}
