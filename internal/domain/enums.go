package domain

// PartOfSpeech is the closed set of grammatical categories an Entry can carry.
// Values are lowercase because they are embedded verbatim in display titles.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "noun"
	PartOfSpeechVerb         PartOfSpeech = "verb"
	PartOfSpeechAdjective    PartOfSpeech = "adjective"
	PartOfSpeechAdverb       PartOfSpeech = "adverb"
	PartOfSpeechPreposition  PartOfSpeech = "preposition"
	PartOfSpeechConjunction  PartOfSpeech = "conjunction"
	PartOfSpeechInterjection PartOfSpeech = "interjection"
	PartOfSpeechPronoun      PartOfSpeech = "pronoun"
	PartOfSpeechUnknown      PartOfSpeech = "unknown"
)

// AllPartsOfSpeech lists every known part of speech, excluding unknown.
var AllPartsOfSpeech = []PartOfSpeech{
	PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
	PartOfSpeechPreposition, PartOfSpeechConjunction, PartOfSpeechInterjection,
	PartOfSpeechPronoun,
}

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPreposition, PartOfSpeechConjunction, PartOfSpeechInterjection,
		PartOfSpeechPronoun, PartOfSpeechUnknown:
		return true
	}
	return false
}

// IsKnown reports whether p is a real category rather than unknown or empty.
func (p PartOfSpeech) IsKnown() bool {
	return p != PartOfSpeechUnknown && p.IsValid()
}

// CEFRLevel is a Common European Framework of Reference proficiency level.
type CEFRLevel string

const (
	LevelA1      CEFRLevel = "A1"
	LevelA2      CEFRLevel = "A2"
	LevelB1      CEFRLevel = "B1"
	LevelB2      CEFRLevel = "B2"
	LevelC1      CEFRLevel = "C1"
	LevelC2      CEFRLevel = "C2"
	LevelUnknown CEFRLevel = "Unknown"
)

func (l CEFRLevel) String() string { return string(l) }

func (l CEFRLevel) IsValid() bool {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2, LevelUnknown:
		return true
	}
	return false
}

// IsKnown reports whether l is one of the six CEFR grades.
func (l CEFRLevel) IsKnown() bool {
	return l != LevelUnknown && l.IsValid()
}

// Role is the authorization role of a learner.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// EntryField names an Entry column that may be edited administratively.
type EntryField string

const (
	EntryFieldTitle         EntryField = "title"
	EntryFieldTopic         EntryField = "topic"
	EntryFieldLevel         EntryField = "level"
	EntryFieldDefinition    EntryField = "definition"
	EntryFieldExample       EntryField = "example"
	EntryFieldPronunciation EntryField = "pronunciation"
)

func (f EntryField) String() string { return string(f) }

func (f EntryField) IsValid() bool {
	switch f {
	case EntryFieldTitle, EntryFieldTopic, EntryFieldLevel,
		EntryFieldDefinition, EntryFieldExample, EntryFieldPronunciation:
		return true
	}
	return false
}

// Source names recorded on entries that do not come from an adapter.
const (
	SourceManual   = "Manual"
	SourceBulk     = "Bulk"
	SourceFallback = "AI"
)

// DefaultTopic is assigned to entries added without an explicit topic.
const DefaultTopic = "General"
