package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

const learnerColumns = `id, username, role, pref_levels, pref_topics, pref_pos, source_priority,
	daily_enabled, daily_count, daily_time, created_at, updated_at`

// Learners is the SQLite learner store. List-valued preferences are stored as
// JSON arrays.
type Learners struct {
	db *sql.DB
}

// NewLearners creates a learner store on db.
func NewLearners(db *sql.DB) *Learners {
	return &Learners{db: db}
}

// GetByID returns a learner by primary key.
func (s *Learners) GetByID(ctx context.Context, id uuid.UUID) (domain.Learner, error) {
	l, err := scanLearner(ExecutorFromCtx(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+learnerColumns+` FROM learners WHERE id = ?`, id.String()))
	if err != nil {
		return domain.Learner{}, mapError(err, "learner", id)
	}
	return l, nil
}

// Register inserts the learner unless it exists and returns the stored row.
func (s *Learners) Register(ctx context.Context, id uuid.UUID, username string, role domain.Role) (domain.Learner, error) {
	_, err := ExecutorFromCtx(ctx, s.db).ExecContext(ctx,
		`INSERT INTO learners (id, username, role) VALUES (?, ?, ?) ON CONFLICT (id) DO NOTHING`,
		id.String(), username, string(role))
	if err != nil {
		return domain.Learner{}, mapError(err, "learner", id)
	}
	return s.GetByID(ctx, id)
}

// UpdatePreference replaces the selection filters of a learner.
func (s *Learners) UpdatePreference(ctx context.Context, id uuid.UUID, p domain.LearnerPreference) (domain.Learner, error) {
	levels, topics, pos, priority, err := encodePreference(p)
	if err != nil {
		return domain.Learner{}, err
	}
	return s.update(ctx, id,
		`UPDATE learners SET pref_levels = ?, pref_topics = ?, pref_pos = ?, source_priority = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		levels, topics, pos, priority, id.String())
}

// UpdateDaily replaces the daily delivery settings of a learner.
func (s *Learners) UpdateDaily(ctx context.Context, id uuid.UUID, d domain.DailySettings) (domain.Learner, error) {
	return s.update(ctx, id,
		`UPDATE learners SET daily_enabled = ?, daily_count = ?, daily_time = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		d.Enabled, d.Count, d.Time, id.String())
}

// UpdateRole grants or revokes admin rights.
func (s *Learners) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	_, err := s.update(ctx, id,
		`UPDATE learners SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(role), id.String())
	return err
}

// ListDailyEnabled returns learners with daily delivery switched on.
func (s *Learners) ListDailyEnabled(ctx context.Context) ([]domain.Learner, error) {
	rows, err := ExecutorFromCtx(ctx, s.db).QueryContext(ctx,
		`SELECT `+learnerColumns+` FROM learners WHERE daily_enabled = 1 ORDER BY daily_time, id`)
	if err != nil {
		return nil, mapError(err, "learners", "daily")
	}
	defer rows.Close()

	var out []domain.Learner
	for rows.Next() {
		l, err := scanLearner(rows)
		if err != nil {
			return nil, mapError(err, "learners", "daily")
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Learners) update(ctx context.Context, id uuid.UUID, query string, args ...any) (domain.Learner, error) {
	r, err := ExecutorFromCtx(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Learner{}, mapError(err, "learner", id)
	}
	if n, _ := r.RowsAffected(); n == 0 {
		return domain.Learner{}, fmt.Errorf("learner %s: %w", id, domain.ErrNotFound)
	}
	return s.GetByID(ctx, id)
}

func scanLearner(row scanner) (domain.Learner, error) {
	var (
		l                             domain.Learner
		id, role                      string
		levels, topics, pos, priority string
		created, updated              time.Time
	)
	if err := row.Scan(&id, &l.Username, &role, &levels, &topics, &pos, &priority,
		&l.Daily.Enabled, &l.Daily.Count, &l.Daily.Time, &created, &updated); err != nil {
		return domain.Learner{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Learner{}, fmt.Errorf("parse learner id: %w", err)
	}
	l.ID = parsed
	l.Role = domain.Role(role)
	l.CreatedAt, l.UpdatedAt = created, updated

	var rawLevels, rawPOS []string
	for _, f := range []struct {
		src string
		dst *[]string
	}{
		{levels, &rawLevels}, {topics, &l.Preference.Topics}, {pos, &rawPOS}, {priority, &l.Preference.SourcePriority},
	} {
		if f.src == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.src), f.dst); err != nil {
			return domain.Learner{}, fmt.Errorf("decode preference: %w", err)
		}
	}
	for _, v := range rawLevels {
		l.Preference.Levels = append(l.Preference.Levels, domain.CEFRLevel(v))
	}
	for _, v := range rawPOS {
		l.Preference.PartsOfSpeech = append(l.Preference.PartsOfSpeech, domain.PartOfSpeech(v))
	}
	return l, nil
}

func encodePreference(p domain.LearnerPreference) (levels, topics, pos, priority string, err error) {
	enc := func(v any) string {
		if err != nil {
			return ""
		}
		var b []byte
		b, err = json.Marshal(v)
		return string(b)
	}

	lv := make([]string, len(p.Levels))
	for i, l := range p.Levels {
		lv[i] = l.String()
	}
	ps := make([]string, len(p.PartsOfSpeech))
	for i, x := range p.PartsOfSpeech {
		ps[i] = x.String()
	}

	levels = enc(lv)
	topics = enc(orEmpty(p.Topics))
	pos = enc(ps)
	priority = enc(orEmpty(p.SourcePriority))
	if err != nil {
		err = fmt.Errorf("encode preference: %w", err)
	}
	return levels, topics, pos, priority, err
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
