package dictionary

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 6. ExportEntries
// ---------------------------------------------------------------------------

// ExportEntries returns the public catalog (optionally one topic) as records
// that ImportEntries accepts. Admin only.
func (s *Service) ExportEntries(ctx context.Context, topic string) (*ExportResult, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	entries, err := s.entries.List(ctx, domain.ListFilter{Topic: topic, Limit: ExportMaxEntries})
	if err != nil {
		return nil, fmt.Errorf("dictionary.ExportEntries: %w", err)
	}

	items := make([]Record, len(entries))
	for i, e := range entries {
		items[i] = recordFromEntry(e)
	}
	return &ExportResult{Items: items, ExportedAt: time.Now().UTC()}, nil
}
