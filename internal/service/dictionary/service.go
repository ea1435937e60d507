// Package dictionary manages stored entries: listing, bulk import and export,
// administrative edits and clears, and a learner's personal words.
package dictionary

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryRepo interface {
	InsertMany(ctx context.Context, entries []domain.Entry) (domain.InsertResult, error)
	UpdateField(ctx context.Context, id int64, field domain.EntryField, value string) (domain.Entry, error)
	DeleteAll(ctx context.Context, topic string) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Entry, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Entry, error)
	Count(ctx context.Context, f domain.EntryFilter) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Listing limits.
const (
	LearnerListLimit = 30
	AdminListLimit   = 50
	ExportMaxEntries = 10000
)

// Service implements the dictionary business logic.
type Service struct {
	log     *slog.Logger
	entries entryRepo
	tx      txManager
}

// NewService creates a new Dictionary service.
func NewService(logger *slog.Logger, entries entryRepo, tx txManager) *Service {
	return &Service{
		log:     logger.With("service", "dictionary"),
		entries: entries,
		tx:      tx,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// requireAdmin rejects callers without the admin role.
func requireAdmin(ctx context.Context) error {
	if ctxutil.IsAdminCtx(ctx) {
		return nil
	}
	if _, ok := ctxutil.LearnerIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}
	return domain.ErrForbidden
}

// ownerScope returns nil for admins (public catalog) and the learner ID for
// everyone else.
func ownerScope(ctx context.Context) (*uuid.UUID, error) {
	if ctxutil.IsAdminCtx(ctx) {
		return nil, nil
	}
	id, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &id, nil
}
