package acquisition

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// completer is the generative fallback. Anthropic and Gemini clients satisfy it.
type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GapFiller completes entries that the sources left partially empty. It never
// overwrites a field that already has a value.
type GapFiller struct {
	log *slog.Logger
	llm completer
}

// NewGapFiller creates a GapFiller. A nil llm disables generative filling;
// levels and pronunciations are still normalized and shared.
func NewGapFiller(logger *slog.Logger, llm completer) *GapFiller {
	return &GapFiller{
		log: logger.With("service", "gapfiller"),
		llm: llm,
	}
}

// Enabled reports whether a generative fallback is configured.
func (g *GapFiller) Enabled() bool {
	return g.llm != nil
}

// Fill returns a completed copy of entries. When entries is empty and a
// fallback is configured, a headword-only seed entry is completed instead.
//
// If the fallback answers notAWordReply and no source produced a definition,
// Fill returns domain.ErrInvalidHeadword. Fallback failures are logged and
// leave the entry as it was.
func (g *GapFiller) Fill(ctx context.Context, headword string, entries []domain.Entry) ([]domain.Entry, error) {
	out := make([]domain.Entry, len(entries))
	copy(out, entries)

	sourced := false
	for i := range out {
		out[i].Level = domain.NormalizeLevel(out[i].Level.String())
		if out[i].HasDefinition() {
			sourced = true
		}
	}

	if len(out) == 0 {
		if g.llm == nil {
			return nil, nil
		}
		out = append(out, seedEntry(headword))
	}

	sharePronunciation(out)
	if g.llm == nil {
		return out, nil
	}

	taken := make(map[domain.PartOfSpeech]struct{}, len(out))
	for _, e := range out {
		if e.PartOfSpeech.IsKnown() {
			taken[e.PartOfSpeech] = struct{}{}
		}
	}

	for i := range out {
		missing := missingFields(out[i])
		if len(missing) == 0 {
			continue
		}

		reply, err := g.llm.Complete(ctx, buildPrompt(headword, out[i], missing))
		if err != nil {
			g.log.WarnContext(ctx, "fallback failed",
				slog.String("headword", headword),
				slog.String("error", fmt.Errorf("%w: %v", domain.ErrFallbackUnavailable, err).Error()),
			)
			continue
		}

		if isNotAWord(reply) {
			if !sourced {
				return nil, fmt.Errorf("%q: %w", headword, domain.ErrInvalidHeadword)
			}
			g.log.WarnContext(ctx, "fallback rejected a sourced word", slog.String("headword", headword))
			continue
		}

		fields, rejected := parseReply(reply)
		if len(rejected) > 0 {
			g.log.DebugContext(ctx, "fallback keys ignored",
				slog.String("headword", headword),
				slog.Any("keys", rejected),
			)
		}
		if len(fields) == 0 {
			g.log.WarnContext(ctx, "fallback reply unusable",
				slog.String("headword", headword),
				slog.String("error", domain.ErrFallbackUnavailable.Error()),
			)
			continue
		}

		applyFields(&out[i], fields, taken)
	}

	sharePronunciation(out)
	return out, nil
}

func seedEntry(headword string) domain.Entry {
	return domain.Entry{
		Headword:     strings.TrimSpace(headword),
		PartOfSpeech: domain.PartOfSpeechUnknown,
		Level:        domain.LevelUnknown,
		Source:       domain.SourceFallback,
	}
}

// sharePronunciation copies the first pronunciation to entries without one.
// All entries of a request are the same headword.
func sharePronunciation(entries []domain.Entry) {
	var shared string
	for _, e := range entries {
		if p := strings.TrimSpace(e.Pronunciation); p != "" {
			shared = p
			break
		}
	}
	if shared == "" {
		return
	}
	for i := range entries {
		if strings.TrimSpace(entries[i].Pronunciation) == "" {
			entries[i].Pronunciation = shared
		}
	}
}

func missingFields(e domain.Entry) []field {
	var out []field
	if !e.PartOfSpeech.IsKnown() {
		out = append(out, fieldPartOfSpeech)
	}
	if !e.Level.IsKnown() {
		out = append(out, fieldLevel)
	}
	if strings.TrimSpace(e.Definition) == "" {
		out = append(out, fieldDefinition)
	}
	if strings.TrimSpace(e.Example) == "" {
		out = append(out, fieldExample)
	}
	if strings.TrimSpace(e.Pronunciation) == "" {
		out = append(out, fieldPronunciation)
	}
	return out
}

// applyFields fills the empty fields of e. A part of speech already held by
// another entry in taken is not assigned, so a request keeps one entry per
// part of speech.
func applyFields(e *domain.Entry, fields map[field]string, taken map[domain.PartOfSpeech]struct{}) {
	if v, ok := fields[fieldDefinition]; ok && strings.TrimSpace(e.Definition) == "" {
		e.Definition = v
	}
	if v, ok := fields[fieldExample]; ok && strings.TrimSpace(e.Example) == "" {
		e.Example = v
	}
	if v, ok := fields[fieldPronunciation]; ok && strings.TrimSpace(e.Pronunciation) == "" {
		e.Pronunciation = v
	}
	if v, ok := fields[fieldLevel]; ok && !e.Level.IsKnown() {
		e.Level = domain.NormalizeLevel(v)
	}
	if v, ok := fields[fieldPartOfSpeech]; ok && !e.PartOfSpeech.IsKnown() {
		pos := domain.ClassifyPartOfSpeech(v, e.Definition)
		if _, dup := taken[pos]; !dup {
			e.PartOfSpeech = pos
			if pos.IsKnown() {
				taken[pos] = struct{}{}
			}
		}
	}
}
