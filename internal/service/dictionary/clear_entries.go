package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 3. ClearCatalog
// ---------------------------------------------------------------------------

// ClearCatalog deletes every public entry, or only those of topic when it is
// non-empty. Admin only. Exposures of deleted entries go with them.
func (s *Service) ClearCatalog(ctx context.Context, topic string) (int64, error) {
	if err := requireAdmin(ctx); err != nil {
		return 0, err
	}

	topic = strings.TrimSpace(topic)
	n, err := s.entries.DeleteAll(ctx, topic)
	if err != nil {
		return 0, fmt.Errorf("dictionary.ClearCatalog: %w", err)
	}

	s.log.InfoContext(ctx, "catalog cleared", slog.String("topic", topic), slog.Int64("deleted", n))
	return n, nil
}

// ---------------------------------------------------------------------------
// 4. ClearMine
// ---------------------------------------------------------------------------

// ClearMine deletes the caller's personal words.
func (s *Service) ClearMine(ctx context.Context) (int64, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	n, err := s.entries.DeleteByOwner(ctx, learnerID)
	if err != nil {
		return 0, fmt.Errorf("dictionary.ClearMine: %w", err)
	}
	return n, nil
}
