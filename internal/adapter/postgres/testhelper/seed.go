package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// UniqueTopic returns a topic name no other test uses, so tests sharing the
// container do not see each other's public entries.
func UniqueTopic(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedLearner inserts a learner with default settings.
func SeedLearner(t *testing.T, pool *pgxpool.Pool) domain.Learner {
	t.Helper()

	l := domain.Learner{
		ID:       uuid.New(),
		Username: "learner-" + uuid.New().String()[:8],
		Role:     domain.RoleUser,
		Daily:    domain.DefaultDailySettings(),
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO learners (id, username, role) VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		l.ID, l.Username, string(l.Role),
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedLearner: %v", err)
	}
	return l
}

// SeedEntry inserts a public entry "<headword> (<pos>)" under topic.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, topic, headword string, pos domain.PartOfSpeech, level domain.CEFRLevel) domain.Entry {
	t.Helper()

	e := domain.Entry{
		Headword:     headword,
		PartOfSpeech: pos,
		Level:        level,
		Topic:        topic,
		Definition:   "definition of " + headword,
		Source:       "seed",
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO entries (topic, title, definition, level, source) VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.Topic, e.Title(), e.Definition, string(e.Level), e.Source,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry %q: %v", e.Title(), err)
	}
	return e
}

// SeedExposure records that learnerID has seen entryID.
func SeedExposure(t *testing.T, pool *pgxpool.Pool, learnerID uuid.UUID, entryID int64) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO exposures (learner_id, entry_id) VALUES ($1, $2)`, learnerID, entryID)
	if err != nil {
		t.Fatalf("testhelper: SeedExposure: %v", err)
	}
}
