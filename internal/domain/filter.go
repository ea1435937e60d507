package domain

import "github.com/google/uuid"

// EntryFilter selects entries. Within a field values are OR-ed, across fields
// they are AND-ed; an empty field matches everything. PartsOfSpeech is matched
// against the "(pos)" suffix of the title. A nil OwnerID selects the public
// catalog.
type EntryFilter struct {
	Levels        []CEFRLevel
	Topics        []string
	PartsOfSpeech []PartOfSpeech
	OwnerID       *uuid.UUID
}

// IsEmpty reports whether the filter matches every entry of its owner scope.
func (f EntryFilter) IsEmpty() bool {
	return len(f.Levels) == 0 && len(f.Topics) == 0 && len(f.PartsOfSpeech) == 0
}

// ListFilter controls catalog listings.
type ListFilter struct {
	Topic   string
	OwnerID *uuid.UUID
	Limit   int
}
