package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/adapter/sqlfilter"
	"github.com/heartmarshall/lingo-backend/internal/domain"
)

var entryColumns = []string{
	"e.id", "e.owner_id", "e.topic", "e.title", "e.definition", "e.example",
	"e.pronunciation", "e.level", "e.source", "e.created_at",
}

// Entries is the SQLite entry store.
type Entries struct {
	db *sql.DB
}

// NewEntries creates an entry store on db.
func NewEntries(db *sql.DB) *Entries {
	return &Entries{db: db}
}

// InsertMany stores entries that carry a definition; conflicts on
// (owner, topic, title) are counted as duplicates.
func (s *Entries) InsertMany(ctx context.Context, entries []domain.Entry) (domain.InsertResult, error) {
	var res domain.InsertResult
	ex := ExecutorFromCtx(ctx, s.db)

	for _, e := range entries {
		if !e.HasDefinition() {
			res.Skipped++
			continue
		}

		level := e.Level
		if !level.IsValid() {
			level = domain.LevelUnknown
		}

		query, args, err := sq.Insert("entries").
			Columns("owner_id", "topic", "title", "definition", "example", "pronunciation", "level", "source").
			Values(ownerValue(e.OwnerID), e.TopicOrDefault(), e.Title(), e.Definition, e.Example, e.Pronunciation, level.String(), e.Source).
			Suffix("ON CONFLICT DO NOTHING").
			ToSql()
		if err != nil {
			return res, fmt.Errorf("build insert: %w", err)
		}

		r, err := ex.ExecContext(ctx, query, args...)
		if err != nil {
			return res, mapError(err, "entry", e.Title())
		}
		n, err := r.RowsAffected()
		if err != nil {
			return res, mapError(err, "entry", e.Title())
		}
		if n == 0 {
			res.Duplicates++
			continue
		}
		res.Inserted++
	}

	return res, nil
}

// UpdateField sets one column of an entry and returns the updated entry.
func (s *Entries) UpdateField(ctx context.Context, id int64, field domain.EntryField, value string) (domain.Entry, error) {
	if !field.IsValid() {
		return domain.Entry{}, domain.NewValidationError("field", "unknown entry field")
	}

	query, args, err := sq.Update("entries").Set(string(field), value).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Entry{}, fmt.Errorf("build update: %w", err)
	}

	r, err := ExecutorFromCtx(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Entry{}, mapError(err, "entry", id)
	}
	if n, _ := r.RowsAffected(); n == 0 {
		return domain.Entry{}, fmt.Errorf("entry %d: %w", id, domain.ErrNotFound)
	}
	return s.GetByID(ctx, id)
}

// DeleteAll removes public entries, restricted to topic when it is not empty.
func (s *Entries) DeleteAll(ctx context.Context, topic string) (int64, error) {
	b := sq.Delete("entries").Where(sq.Eq{"owner_id": nil})
	if topic != "" {
		b = b.Where("lower(topic) = lower(?)", topic)
	}
	return s.delete(ctx, b)
}

// DeleteByOwner removes every personal entry of a learner.
func (s *Entries) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return s.delete(ctx, sq.Delete("entries").Where(sq.Eq{"owner_id": ownerID.String()}))
}

func (s *Entries) delete(ctx context.Context, b sq.DeleteBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	r, err := ExecutorFromCtx(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, "entries", "delete")
	}
	return r.RowsAffected()
}

// GetByID returns one entry.
func (s *Entries) GetByID(ctx context.Context, id int64) (domain.Entry, error) {
	query, args, err := sq.Select(entryColumns...).From("entries e").Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return domain.Entry{}, fmt.Errorf("build select: %w", err)
	}
	e, err := scanEntry(ExecutorFromCtx(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		return domain.Entry{}, mapError(err, "entry", id)
	}
	return e, nil
}

// List returns entries ordered by topic, level and id.
func (s *Entries) List(ctx context.Context, f domain.ListFilter) ([]domain.Entry, error) {
	filter := domain.EntryFilter{OwnerID: f.OwnerID}
	if f.Topic != "" {
		filter.Topics = []string{f.Topic}
	}

	b := sq.Select(entryColumns...).
		From("entries e").
		Where(sqlfilter.Entries(filter, "e")).
		OrderBy("e.topic", "e.level", "e.id")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	return s.query(ctx, b)
}

// PickUnseen returns a random entry matching f that learnerID has not seen,
// or domain.ErrNotFound.
func (s *Entries) PickUnseen(ctx context.Context, learnerID uuid.UUID, f domain.EntryFilter) (domain.Entry, error) {
	b := sq.Select(entryColumns...).
		From("entries e").
		LeftJoin("exposures x ON x.entry_id = e.id AND x.learner_id = ?", learnerID.String()).
		Where(sqlfilter.Entries(f, "e")).
		Where(sq.Eq{"x.entry_id": nil}).
		OrderBy("random()").
		Limit(1)

	out, err := s.query(ctx, b)
	if err != nil {
		return domain.Entry{}, err
	}
	if len(out) == 0 {
		return domain.Entry{}, fmt.Errorf("learner %s: %w", learnerID, domain.ErrNotFound)
	}
	return out[0], nil
}

// Count returns how many entries match f.
func (s *Entries) Count(ctx context.Context, f domain.EntryFilter) (int, error) {
	query, args, err := sq.Select("count(*)").From("entries e").Where(sqlfilter.Entries(f, "e")).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var n int
	if err := ExecutorFromCtx(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, mapError(err, "entries", "count")
	}
	return n, nil
}

func (s *Entries) query(ctx context.Context, b sq.SelectBuilder) ([]domain.Entry, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := ExecutorFromCtx(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "entries", "select")
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, mapError(err, "entries", "scan")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "entries", "rows")
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (domain.Entry, error) {
	var (
		e       domain.Entry
		owner   sql.NullString
		title   string
		level   string
		created time.Time
	)
	if err := row.Scan(&e.ID, &owner, &e.Topic, &title, &e.Definition, &e.Example,
		&e.Pronunciation, &level, &e.Source, &created); err != nil {
		return domain.Entry{}, err
	}

	if owner.Valid {
		id, err := uuid.Parse(owner.String)
		if err != nil {
			return domain.Entry{}, fmt.Errorf("parse owner id: %w", err)
		}
		e.OwnerID = &id
	}
	e.Headword, e.PartOfSpeech = domain.SplitTitle(title)
	e.Level = domain.CEFRLevel(level)
	e.CreatedAt = created
	return e, nil
}

func ownerValue(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}
