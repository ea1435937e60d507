package acquisition

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockAdapter struct {
	name  string
	out   []domain.CandidateEntry
	delay time.Duration

	mu    sync.Mutex
	calls int
}

func (m *mockAdapter) Name() string { return m.name }

func (m *mockAdapter) Lookup(ctx context.Context, headword string) []domain.CandidateEntry {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(m.delay):
		}
	}
	return m.out
}

func (m *mockAdapter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockCompleter struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	prompts []string
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", nil
}

type mockEntryStore struct {
	InsertManyFunc func(ctx context.Context, entries []domain.Entry) (domain.InsertResult, error)

	inserted []domain.Entry
}

func (m *mockEntryStore) InsertMany(ctx context.Context, entries []domain.Entry) (domain.InsertResult, error) {
	m.inserted = append(m.inserted, entries...)
	if m.InsertManyFunc != nil {
		return m.InsertManyFunc(ctx, entries)
	}
	var res domain.InsertResult
	for _, e := range entries {
		if e.HasDefinition() {
			res.Inserted++
		} else {
			res.Skipped++
		}
	}
	return res, nil
}

type mockLearnerRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Learner, error)
}

func (m *mockLearnerRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Learner, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.Learner{}, domain.ErrNotFound
}

// ===========================================================================
// Helpers
// ===========================================================================

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cand(source, pos, level, def string) domain.CandidateEntry {
	return domain.CandidateEntry{
		Headword:        "run",
		RawPartOfSpeech: pos,
		RawLevel:        level,
		Definition:      def,
		Source:          source,
	}
}
