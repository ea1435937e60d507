package acquisition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// AddWordResult reports what one headword produced.
type AddWordResult struct {
	domain.InsertResult
	Entries []domain.Entry
}

// BulkAddResult reports a multi-headword acquisition.
type BulkAddResult struct {
	domain.InsertResult
	// Invalid lists headwords the fallback rejected as not being words.
	Invalid []string
	// NotFound lists headwords no source or fallback could define.
	NotFound []string
}

// ---------------------------------------------------------------------------
// AddWord
// ---------------------------------------------------------------------------

// AddWord acquires one headword through every source and the fallback and
// stores the entries that carry a definition. Duplicates are counted, not
// reported as errors. domain.ErrInvalidHeadword is returned when the fallback
// rejects the input and nothing is stored.
func (s *Service) AddWord(ctx context.Context, input AddWordInput) (AddWordResult, error) {
	if err := input.Validate(); err != nil {
		return AddWordResult{}, err
	}

	c, err := s.resolveCaller(ctx)
	if err != nil {
		return AddWordResult{}, err
	}

	res, err := s.acquire(ctx, c, strings.TrimSpace(input.Headword), strings.TrimSpace(input.Topic))
	if err != nil {
		return AddWordResult{}, fmt.Errorf("acquisition.AddWord: %w", err)
	}
	return res, nil
}

// ---------------------------------------------------------------------------
// AddWords
// ---------------------------------------------------------------------------

// AddWords acquires each headword in turn. Rejected and undefined headwords are
// collected in the result; only store failures abort the batch.
func (s *Service) AddWords(ctx context.Context, input AddWordsInput) (BulkAddResult, error) {
	if err := input.Validate(); err != nil {
		return BulkAddResult{}, err
	}

	c, err := s.resolveCaller(ctx)
	if err != nil {
		return BulkAddResult{}, err
	}

	topic := strings.TrimSpace(input.Topic)
	seen := make(map[string]struct{}, len(input.Headwords))

	var out BulkAddResult
	for _, raw := range input.Headwords {
		hw := strings.TrimSpace(raw)
		key := domain.NormalizeText(hw)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		res, err := s.acquire(ctx, c, hw, topic)
		switch {
		case errors.Is(err, domain.ErrInvalidHeadword):
			out.Invalid = append(out.Invalid, hw)
			continue
		case err != nil:
			return out, fmt.Errorf("acquisition.AddWords: %q: %w", hw, err)
		}

		if len(res.Entries) == 0 {
			out.NotFound = append(out.NotFound, hw)
		}
		out.Add(res.InsertResult)
	}

	s.log.InfoContext(ctx, "bulk add finished",
		slog.Int("words", len(seen)),
		slog.Int("inserted", out.Inserted),
		slog.Int("duplicates", out.Duplicates),
		slog.Int("invalid", len(out.Invalid)),
	)
	return out, nil
}

// ---------------------------------------------------------------------------
// AddManual
// ---------------------------------------------------------------------------

// AddManual stores a learner-supplied entry after completing its empty fields.
// Fields the learner gave are never replaced. An entry still without a
// definition is rejected with a definition validation error.
func (s *Service) AddManual(ctx context.Context, input ManualInput) (AddWordResult, error) {
	if err := input.Validate(); err != nil {
		return AddWordResult{}, err
	}

	c, err := s.resolveCaller(ctx)
	if err != nil {
		return AddWordResult{}, err
	}

	e := input.Entry
	e.Headword = strings.TrimSpace(e.Headword)
	if !e.PartOfSpeech.IsValid() {
		e.PartOfSpeech = domain.PartOfSpeechUnknown
	}
	if e.Source == "" {
		e.Source = domain.SourceManual
	}

	entries, err := s.filler.Fill(ctx, e.Headword, []domain.Entry{e})
	if err != nil {
		return AddWordResult{}, fmt.Errorf("acquisition.AddManual: %w", err)
	}
	if len(withDefinition(entries)) == 0 {
		return AddWordResult{}, domain.NewValidationError("definition", "required")
	}

	res, err := s.store(ctx, c.owner, strings.TrimSpace(e.Topic), entries)
	if err != nil {
		return AddWordResult{}, fmt.Errorf("acquisition.AddManual: %w", err)
	}

	s.log.InfoContext(ctx, "manual entry added",
		slog.String("headword", e.Headword),
		slog.Int("inserted", res.Inserted),
		slog.Int("duplicates", res.Duplicates),
	)
	return AddWordResult{InsertResult: res, Entries: withDefinition(entries)}, nil
}

// ---------------------------------------------------------------------------
// Pipeline
// ---------------------------------------------------------------------------

func (s *Service) acquire(ctx context.Context, c caller, headword, topic string) (AddWordResult, error) {
	entries := s.aggregator.Aggregate(ctx, headword, c.priority)

	entries, err := s.filler.Fill(ctx, headword, entries)
	if err != nil {
		return AddWordResult{}, err
	}

	res, err := s.store(ctx, c.owner, topic, entries)
	if err != nil {
		return AddWordResult{}, err
	}

	s.log.InfoContext(ctx, "word added",
		slog.String("headword", headword),
		slog.Bool("public", c.owner == nil),
		slog.Int("inserted", res.Inserted),
		slog.Int("duplicates", res.Duplicates),
		slog.Int("skipped", res.Skipped),
	)
	return AddWordResult{InsertResult: res, Entries: withDefinition(entries)}, nil
}

func withDefinition(entries []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.HasDefinition() {
			out = append(out, e)
		}
	}
	return out
}
