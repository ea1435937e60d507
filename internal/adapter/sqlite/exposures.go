package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/adapter/sqlfilter"
	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// Exposures is the SQLite exposure store.
type Exposures struct {
	db *sql.DB
}

// NewExposures creates an exposure store on db.
func NewExposures(db *sql.DB) *Exposures {
	return &Exposures{db: db}
}

// Record stores an exposure pair; recording it again is a no-op.
func (s *Exposures) Record(ctx context.Context, p domain.ExposurePair) error {
	_, err := ExecutorFromCtx(ctx, s.db).ExecContext(ctx,
		`INSERT INTO exposures (learner_id, entry_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		p.LearnerID.String(), p.EntryID)
	if err != nil {
		return mapError(err, "exposure", p.EntryID)
	}
	return nil
}

// Reset deletes the learner's exposures whose entry matches f.
func (s *Exposures) Reset(ctx context.Context, learnerID uuid.UUID, f domain.EntryFilter) (int64, error) {
	sub, subArgs, err := sq.Select("e.id").From("entries e").Where(sqlfilter.Entries(f, "e")).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build eligible subquery: %w", err)
	}

	query, args, err := sq.Delete("exposures").
		Where(sq.Eq{"learner_id": learnerID.String()}).
		Where("entry_id IN ("+sub+")", subArgs...).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build reset: %w", err)
	}

	r, err := ExecutorFromCtx(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, "learner", learnerID)
	}
	return r.RowsAffected()
}

// Count returns how many exposures the learner has.
func (s *Exposures) Count(ctx context.Context, learnerID uuid.UUID) (int, error) {
	var n int
	err := ExecutorFromCtx(ctx, s.db).QueryRowContext(ctx,
		`SELECT count(*) FROM exposures WHERE learner_id = ?`, learnerID.String()).Scan(&n)
	if err != nil {
		return 0, mapError(err, "learner", learnerID)
	}
	return n, nil
}
