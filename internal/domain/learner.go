package domain

import (
	"time"

	"github.com/google/uuid"
)

// Learner is a person receiving vocabulary.
type Learner struct {
	ID         uuid.UUID
	Username   string
	Role       Role
	Preference LearnerPreference
	Daily      DailySettings
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsAdmin reports whether the learner may manage the public catalog.
func (l Learner) IsAdmin() bool {
	return l.Role == RoleAdmin
}

// LearnerPreference holds the selection filters of a learner. Empty sets mean
// "any". SourcePriority overrides the system source order when non-empty.
type LearnerPreference struct {
	Levels         []CEFRLevel
	Topics         []string
	PartsOfSpeech  []PartOfSpeech
	SourcePriority []string
}

// Filter converts the preference into an EntryFilter over the public catalog.
func (p LearnerPreference) Filter() EntryFilter {
	return EntryFilter{
		Levels:        p.Levels,
		Topics:        p.Topics,
		PartsOfSpeech: p.PartsOfSpeech,
	}
}

// DailySettings configures the daily word delivery of a learner.
type DailySettings struct {
	Enabled bool
	Count   int
	Time    string // HH:MM
}

const (
	MinDailyCount = 1
	MaxDailyCount = 50
)

// DefaultDailySettings returns disabled delivery of one word at 09:00.
func DefaultDailySettings() DailySettings {
	return DailySettings{
		Enabled: false,
		Count:   1,
		Time:    "09:00",
	}
}
