// Package learner implements learner persistence using PostgreSQL.
package learner

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingo-backend/internal/domain"
)

const learnerColumns = `id, username, role, pref_levels, pref_topics, pref_pos, source_priority,
	daily_enabled, daily_count, daily_time, created_at, updated_at`

// Repo provides learner persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new learner repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Learner operations
// ---------------------------------------------------------------------------

// GetByID returns a learner by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Learner, error) {
	var row learnerRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row,
		`SELECT `+learnerColumns+` FROM learners WHERE id = $1`, id)
	if err != nil {
		return domain.Learner{}, postgres.MapError(err, "learner", id)
	}
	return row.toDomain(), nil
}

// Register inserts the learner unless it already exists and returns the
// stored row. Registering twice keeps the first username and role.
func (r *Repo) Register(ctx context.Context, id uuid.UUID, username string, role domain.Role) (domain.Learner, error) {
	var row learnerRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row,
		`WITH ins AS (
			INSERT INTO learners (id, username, role) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING
			RETURNING `+learnerColumns+`
		)
		SELECT `+learnerColumns+` FROM ins
		UNION ALL
		SELECT `+learnerColumns+` FROM learners WHERE id = $1
		LIMIT 1`,
		id, username, string(role))
	if err != nil {
		return domain.Learner{}, postgres.MapError(err, "learner", id)
	}
	return row.toDomain(), nil
}

// UpdatePreference replaces the selection filters of a learner.
func (r *Repo) UpdatePreference(ctx context.Context, id uuid.UUID, p domain.LearnerPreference) (domain.Learner, error) {
	var row learnerRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row,
		`UPDATE learners
		 SET pref_levels = $2, pref_topics = $3, pref_pos = $4, source_priority = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+learnerColumns,
		id, levelStrings(p.Levels), nonNil(p.Topics), posStrings(p.PartsOfSpeech), nonNil(p.SourcePriority))
	if err != nil {
		return domain.Learner{}, postgres.MapError(err, "learner", id)
	}
	return row.toDomain(), nil
}

// UpdateDaily replaces the daily delivery settings of a learner.
func (r *Repo) UpdateDaily(ctx context.Context, id uuid.UUID, d domain.DailySettings) (domain.Learner, error) {
	var row learnerRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row,
		`UPDATE learners
		 SET daily_enabled = $2, daily_count = $3, daily_time = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+learnerColumns,
		id, d.Enabled, d.Count, d.Time)
	if err != nil {
		return domain.Learner{}, postgres.MapError(err, "learner", id)
	}
	return row.toDomain(), nil
}

// UpdateRole grants or revokes admin rights.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE learners SET role = $2, updated_at = now() WHERE id = $1`, id, string(role))
	if err != nil {
		return postgres.MapError(err, "learner", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("learner %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListDailyEnabled returns learners with daily delivery switched on.
func (r *Repo) ListDailyEnabled(ctx context.Context) ([]domain.Learner, error) {
	var rows []learnerRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows,
		`SELECT `+learnerColumns+` FROM learners WHERE daily_enabled ORDER BY daily_time, id`)
	if err != nil {
		return nil, postgres.MapError(err, "learners", "daily")
	}
	out := make([]domain.Learner, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

type learnerRow struct {
	ID             uuid.UUID `db:"id"`
	Username       string    `db:"username"`
	Role           string    `db:"role"`
	PrefLevels     []string  `db:"pref_levels"`
	PrefTopics     []string  `db:"pref_topics"`
	PrefPOS        []string  `db:"pref_pos"`
	SourcePriority []string  `db:"source_priority"`
	DailyEnabled   bool      `db:"daily_enabled"`
	DailyCount     int       `db:"daily_count"`
	DailyTime      string    `db:"daily_time"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r learnerRow) toDomain() domain.Learner {
	pref := domain.LearnerPreference{
		Topics:         r.PrefTopics,
		SourcePriority: r.SourcePriority,
	}
	for _, l := range r.PrefLevels {
		pref.Levels = append(pref.Levels, domain.CEFRLevel(l))
	}
	for _, p := range r.PrefPOS {
		pref.PartsOfSpeech = append(pref.PartsOfSpeech, domain.PartOfSpeech(p))
	}

	return domain.Learner{
		ID:         r.ID,
		Username:   r.Username,
		Role:       domain.Role(r.Role),
		Preference: pref,
		Daily: domain.DailySettings{
			Enabled: r.DailyEnabled,
			Count:   r.DailyCount,
			Time:    r.DailyTime,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func levelStrings(levels []domain.CEFRLevel) []string {
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = l.String()
	}
	return out
}

func posStrings(parts []domain.PartOfSpeech) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.String()
	}
	return out
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
