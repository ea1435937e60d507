// Package exposure records which entries were delivered to which learner.
package exposure

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingo-backend/internal/adapter/sqlfilter"
	"github.com/heartmarshall/lingo-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides exposure persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new exposure repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// Record stores an exposure pair. Recording the same pair twice is a no-op.
func (r *Repo) Record(ctx context.Context, p domain.ExposurePair) error {
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`INSERT INTO exposures (learner_id, entry_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		p.LearnerID, p.EntryID,
	)
	if err != nil {
		return postgres.MapError(err, "exposure", p.EntryID)
	}
	return nil
}

// Reset deletes the learner's exposures whose entry matches f and returns how
// many were removed. Exposures of entries outside f are kept.
func (r *Repo) Reset(ctx context.Context, learnerID uuid.UUID, f domain.EntryFilter) (int64, error) {
	sub, subArgs, err := sq.Select("e.id").From("entries e").Where(sqlfilter.Entries(f, "e")).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build eligible subquery: %w", err)
	}

	query, args, err := psql.Delete("exposures").
		Where(sq.Eq{"learner_id": learnerID}).
		Where("entry_id IN ("+sub+")", subArgs...).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build reset: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "learner", learnerID)
	}
	return tag.RowsAffected(), nil
}

// Count returns how many exposures the learner has.
func (r *Repo) Count(ctx context.Context, learnerID uuid.UUID) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`SELECT count(*) FROM exposures WHERE learner_id = $1`, learnerID,
	).Scan(&n)
	if err != nil {
		return 0, postgres.MapError(err, "learner", learnerID)
	}
	return n, nil
}
