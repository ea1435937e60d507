package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one vocabulary item: a headword in one part of speech.
// OwnerID is nil for the public catalog and set for a learner's personal words.
type Entry struct {
	ID            int64
	OwnerID       *uuid.UUID
	Headword      string
	PartOfSpeech  PartOfSpeech
	Level         CEFRLevel
	Topic         string
	Definition    string
	Example       string
	Pronunciation string
	Source        string
	CreatedAt     time.Time
}

// Title returns the display title used for deduplication and POS filtering:
// "run (verb)" for a known part of speech, the bare headword otherwise.
// A headword that already embeds its part of speech is returned unchanged.
func (e Entry) Title() string {
	hw := strings.TrimSpace(e.Headword)
	if !e.PartOfSpeech.IsKnown() {
		return hw
	}
	suffix := "(" + e.PartOfSpeech.String() + ")"
	if strings.Contains(strings.ToLower(hw), suffix) {
		return hw
	}
	return hw + " " + suffix
}

// HasDefinition reports whether the entry may be persisted.
func (e Entry) HasDefinition() bool {
	return strings.TrimSpace(e.Definition) != ""
}

// TopicOrDefault returns the entry topic, or DefaultTopic when blank.
func (e Entry) TopicOrDefault() string {
	if t := strings.TrimSpace(e.Topic); t != "" {
		return t
	}
	return DefaultTopic
}

// SplitTitle reverses Title: "run (verb)" yields ("run", verb).
// Titles without a recognised "(pos)" suffix yield the title and unknown.
func SplitTitle(title string) (string, PartOfSpeech) {
	t := strings.TrimSpace(title)
	open := strings.LastIndex(t, "(")
	if open < 0 || !strings.HasSuffix(t, ")") {
		return t, PartOfSpeechUnknown
	}
	pos := PartOfSpeech(strings.ToLower(strings.TrimSpace(t[open+1 : len(t)-1])))
	if !pos.IsKnown() {
		return t, PartOfSpeechUnknown
	}
	return strings.TrimSpace(t[:open]), pos
}

// CandidateEntry is the raw output of a source adapter before normalization.
type CandidateEntry struct {
	Headword        string `json:"headword"`
	RawPartOfSpeech string `json:"pos,omitempty"`
	RawLevel        string `json:"level,omitempty"`
	Definition      string `json:"definition,omitempty"`
	Example         string `json:"example,omitempty"`
	Pronunciation   string `json:"pronunciation,omitempty"`
	Source          string `json:"source"`
}

// InsertResult counts the outcome of a batch insert. Duplicates are entries
// rejected by the (owner, topic, title) uniqueness rule; Skipped are entries
// without a definition, which are never stored.
type InsertResult struct {
	Inserted   int
	Duplicates int
	Skipped    int
}

// Add accumulates another result into r.
func (r *InsertResult) Add(o InsertResult) {
	r.Inserted += o.Inserted
	r.Duplicates += o.Duplicates
	r.Skipped += o.Skipped
}

// ExposurePair records that an entry has been delivered to a learner.
type ExposurePair struct {
	LearnerID uuid.UUID
	EntryID   int64
}
