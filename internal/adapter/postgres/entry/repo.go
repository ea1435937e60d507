// Package entry implements the vocabulary entry store using PostgreSQL.
package entry

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingo-backend/internal/adapter/sqlfilter"
	"github.com/heartmarshall/lingo-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var entryColumns = []string{
	"e.id", "e.owner_id", "e.topic", "e.title", "e.definition", "e.example",
	"e.pronunciation", "e.level", "e.source", "e.created_at",
}

// Repo provides entry persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new entry repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID            int64      `db:"id"`
	OwnerID       *uuid.UUID `db:"owner_id"`
	Topic         string     `db:"topic"`
	Title         string     `db:"title"`
	Definition    string     `db:"definition"`
	Example       string     `db:"example"`
	Pronunciation string     `db:"pronunciation"`
	Level         string     `db:"level"`
	Source        string     `db:"source"`
	CreatedAt     time.Time  `db:"created_at"`
}

func (r row) toDomain() domain.Entry {
	headword, pos := domain.SplitTitle(r.Title)
	return domain.Entry{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		Headword:      headword,
		PartOfSpeech:  pos,
		Level:         domain.CEFRLevel(r.Level),
		Topic:         r.Topic,
		Definition:    r.Definition,
		Example:       r.Example,
		Pronunciation: r.Pronunciation,
		Source:        r.Source,
		CreatedAt:     r.CreatedAt,
	}
}

func toDomainList(rows []row) []domain.Entry {
	out := make([]domain.Entry, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// InsertMany stores entries that carry a definition. An entry whose
// (owner, topic, title) already exists is left untouched and counted as a
// duplicate; the unique index decides, so concurrent inserts cannot both win.
func (r *Repo) InsertMany(ctx context.Context, entries []domain.Entry) (domain.InsertResult, error) {
	var res domain.InsertResult
	q := postgres.QuerierFromCtx(ctx, r.pool)

	for _, e := range entries {
		if !e.HasDefinition() {
			res.Skipped++
			continue
		}

		query, args, err := psql.Insert("entries").
			Columns("owner_id", "topic", "title", "definition", "example", "pronunciation", "level", "source").
			Values(e.OwnerID, e.TopicOrDefault(), e.Title(), e.Definition, e.Example, e.Pronunciation, levelOrUnknown(e.Level), e.Source).
			Suffix("ON CONFLICT DO NOTHING").
			ToSql()
		if err != nil {
			return res, fmt.Errorf("build insert: %w", err)
		}

		tag, err := q.Exec(ctx, query, args...)
		if err != nil {
			return res, postgres.MapError(err, "entry", e.Title())
		}
		if tag.RowsAffected() == 0 {
			res.Duplicates++
			continue
		}
		res.Inserted++
	}

	return res, nil
}

// UpdateField sets one column of an entry and returns the updated entry.
func (r *Repo) UpdateField(ctx context.Context, id int64, field domain.EntryField, value string) (domain.Entry, error) {
	if !field.IsValid() {
		return domain.Entry{}, domain.NewValidationError("field", "unknown entry field")
	}

	query, args, err := psql.Update("entries e").
		Set(string(field), value).
		Where(sq.Eq{"e.id": id}).
		Suffix("RETURNING " + strings.Join(entryColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.Entry{}, fmt.Errorf("build update: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, query, args...); err != nil {
		return domain.Entry{}, postgres.MapError(err, "entry", id)
	}
	return out.toDomain(), nil
}

// DeleteAll removes public entries, restricted to topic when it is not empty.
// Exposures of deleted entries go with them.
func (r *Repo) DeleteAll(ctx context.Context, topic string) (int64, error) {
	b := psql.Delete("entries").Where(sq.Eq{"owner_id": nil})
	if topic != "" {
		b = b.Where("lower(topic) = lower(?)", topic)
	}
	return r.exec(ctx, b)
}

// DeleteByOwner removes every personal entry of a learner.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return r.exec(ctx, psql.Delete("entries").Where(sq.Eq{"owner_id": ownerID}))
}

func (r *Repo) exec(ctx context.Context, b sq.DeleteBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "entries", "delete")
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns one entry.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.Entry, error) {
	query, args, err := psql.Select(entryColumns...).From("entries e").Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return domain.Entry{}, fmt.Errorf("build select: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, query, args...); err != nil {
		return domain.Entry{}, postgres.MapError(err, "entry", id)
	}
	return out.toDomain(), nil
}

// List returns entries ordered by topic, level and id. A nil owner lists the
// public catalog.
func (r *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Entry, error) {
	filter := domain.EntryFilter{OwnerID: f.OwnerID}
	if f.Topic != "" {
		filter.Topics = []string{f.Topic}
	}

	b := psql.Select(entryColumns...).
		From("entries e").
		Where(sqlfilter.Entries(filter, "e")).
		OrderBy("e.topic", "e.level", "e.id")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "entries", "list")
	}
	return toDomainList(rows), nil
}

// PickUnseen returns a uniformly random entry matching f that learnerID has
// not been exposed to. It returns domain.ErrNotFound when none is left.
func (r *Repo) PickUnseen(ctx context.Context, learnerID uuid.UUID, f domain.EntryFilter) (domain.Entry, error) {
	query, args, err := psql.Select(entryColumns...).
		From("entries e").
		LeftJoin("exposures x ON x.entry_id = e.id AND x.learner_id = ?", learnerID).
		Where(sqlfilter.Entries(f, "e")).
		Where(sq.Eq{"x.entry_id": nil}).
		OrderBy("random()").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.Entry{}, fmt.Errorf("build pick: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return domain.Entry{}, postgres.MapError(err, "learner", learnerID)
	}
	if len(rows) == 0 {
		return domain.Entry{}, fmt.Errorf("learner %s: %w", learnerID, domain.ErrNotFound)
	}
	return rows[0].toDomain(), nil
}

// Count returns how many entries match f.
func (r *Repo) Count(ctx context.Context, f domain.EntryFilter) (int, error) {
	query, args, err := psql.Select("count(*)").From("entries e").Where(sqlfilter.Entries(f, "e")).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "entries", "count")
	}
	return n, nil
}

func levelOrUnknown(l domain.CEFRLevel) string {
	if !l.IsValid() {
		return domain.LevelUnknown.String()
	}
	return l.String()
}
