package acquisition

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lingo-backend/internal/config"
	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/provider"
	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

func newTestService(adapters []provider.Adapter, llm completer, store *mockEntryStore, learners *mockLearnerRepo) *Service {
	agg := NewAggregator(discardLogger(), provider.NewRegistry(adapters...), config.SourcesConfig{
		Priority: provider.DefaultPriority,
	})
	filler := NewGapFiller(discardLogger(), nil)
	if llm != nil {
		filler = NewGapFiller(discardLogger(), llm)
	}
	return NewService(discardLogger(), agg, filler, store, learners)
}

func learnerCtx(id uuid.UUID) context.Context {
	return ctxutil.WithLearnerID(context.Background(), id)
}

func adminCtx() context.Context {
	return ctxutil.WithRole(context.Background(), string(domain.RoleAdmin))
}

func runAdapters() []provider.Adapter {
	return []provider.Adapter{
		&mockAdapter{name: "cambridge", out: []domain.CandidateEntry{
			cand("cambridge", "noun", "A2", "an act of running"),
			cand("cambridge", "verb", "A1", "to move fast on foot"),
		}},
		&mockAdapter{name: "longman", out: []domain.CandidateEntry{
			cand("longman", "adjective", "", "of liquid, flowing"),
		}},
	}
}

func TestAddWord_AdminWritesPublicCatalog(t *testing.T) {
	t.Parallel()

	store := &mockEntryStore{}
	svc := newTestService(runAdapters(), nil, store, &mockLearnerRepo{})

	res, err := svc.AddWord(adminCtx(), AddWordInput{Headword: " run ", Topic: "Sports"})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Inserted)
	require.Len(t, store.inserted, 3)
	for _, e := range store.inserted {
		assert.Nil(t, e.OwnerID)
		assert.Equal(t, "Sports", e.Topic)
		assert.Equal(t, "run", e.Headword)
	}
}

func TestAddWord_LearnerWritesPersonalListWithOwnPriority(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	store := &mockEntryStore{}
	learners := &mockLearnerRepo{GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Learner, error) {
		assert.Equal(t, learnerID, id)
		return domain.Learner{ID: id, Preference: domain.LearnerPreference{SourcePriority: []string{"longman"}}}, nil
	}}
	svc := newTestService(runAdapters(), nil, store, learners)

	res, err := svc.AddWord(learnerCtx(learnerID), AddWordInput{Headword: "run"})

	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, domain.PartOfSpeechAdjective, res.Entries[0].PartOfSpeech)
	require.Len(t, store.inserted, 1)
	require.NotNil(t, store.inserted[0].OwnerID)
	assert.Equal(t, learnerID, *store.inserted[0].OwnerID)
}

func TestAddWord_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := newTestService(runAdapters(), nil, &mockEntryStore{}, &mockLearnerRepo{})

	_, err := svc.AddWord(context.Background(), AddWordInput{Headword: "run"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAddWord_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(runAdapters(), nil, &mockEntryStore{}, &mockLearnerRepo{})

	_, err := svc.AddWord(adminCtx(), AddWordInput{Headword: "   "})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "word", verr.Errors[0].Field)
}

func TestAddWord_InvalidHeadwordStoresNothing(t *testing.T) {
	t.Parallel()

	store := &mockEntryStore{}
	llm := &mockCompleter{CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
		return "NOT_A_WORD", nil
	}}
	svc := newTestService(nil, llm, store, &mockLearnerRepo{})

	_, err := svc.AddWord(adminCtx(), AddWordInput{Headword: "qwzx"})

	assert.ErrorIs(t, err, domain.ErrInvalidHeadword)
	assert.Empty(t, store.inserted)
}

func TestAddWord_DuplicatesCounted(t *testing.T) {
	t.Parallel()

	store := &mockEntryStore{InsertManyFunc: func(ctx context.Context, entries []domain.Entry) (domain.InsertResult, error) {
		return domain.InsertResult{Inserted: 1, Duplicates: len(entries) - 1}, nil
	}}
	svc := newTestService(runAdapters(), nil, store, &mockLearnerRepo{})

	res, err := svc.AddWord(adminCtx(), AddWordInput{Headword: "run"})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 2, res.Duplicates)
}

func TestAddWord_StoreError(t *testing.T) {
	t.Parallel()

	store := &mockEntryStore{InsertManyFunc: func(ctx context.Context, entries []domain.Entry) (domain.InsertResult, error) {
		return domain.InsertResult{}, errors.New("connection reset")
	}}
	svc := newTestService(runAdapters(), nil, store, &mockLearnerRepo{})

	_, err := svc.AddWord(adminCtx(), AddWordInput{Headword: "run"})

	assert.ErrorContains(t, err, "acquisition.AddWord")
}

func TestAddWords_CollectsOutcomes(t *testing.T) {
	t.Parallel()

	store := &mockEntryStore{}
	llm := &mockCompleter{CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "WORD: qwzx"):
			return "NOT_A_WORD", nil
		case strings.Contains(prompt, "WORD: wren"):
			return "definition: a small bird\npart_of_speech: noun\nlevel: C1\nexample: A wren sang.\npronunciation: ren", nil
		}
		return "", errors.New("offline")
	}}
	svc := newTestService(nil, llm, store, &mockLearnerRepo{})

	res, err := svc.AddWords(adminCtx(), AddWordsInput{Headwords: []string{"wren", "Wren", "qwzx", "", "blorp"}})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"qwzx"}, res.Invalid)
	assert.Equal(t, []string{"blorp"}, res.NotFound)
}

func TestAddManual_FillsOnlyMissingFields(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	store := &mockEntryStore{}
	llm := &mockCompleter{CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
		return "definition: generated\nexample: generated example\npronunciation: ˈlʌdʒ", nil
	}}
	svc := newTestService(nil, llm, store, &mockLearnerRepo{})

	res, err := svc.AddManual(learnerCtx(learnerID), ManualInput{Entry: domain.Entry{
		Headword:     "lodge",
		PartOfSpeech: domain.PartOfSpeechVerb,
		Level:        domain.LevelC1,
		Topic:        "Travel",
		Definition:   "to stay in a room",
	}})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	require.Len(t, store.inserted, 1)
	got := store.inserted[0]
	assert.Equal(t, "to stay in a room", got.Definition)
	assert.Equal(t, "generated example", got.Example)
	assert.Equal(t, domain.SourceManual, got.Source)
	assert.Equal(t, "Travel", got.Topic)
	assert.Equal(t, learnerID, *got.OwnerID)
}

func TestAddManual_NoDefinitionWithoutFallback(t *testing.T) {
	t.Parallel()

	store := &mockEntryStore{}
	svc := newTestService(nil, nil, store, &mockLearnerRepo{})

	_, err := svc.AddManual(learnerCtx(uuid.New()), ManualInput{Entry: domain.Entry{
		Headword: "lodge",
		Topic:    "Travel",
	}})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "definition", ve.Errors[0].Field)
	assert.Empty(t, store.inserted)
}
