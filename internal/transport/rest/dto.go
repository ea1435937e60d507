package rest

import (
	"time"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/service/acquisition"
	"github.com/heartmarshall/lingo-backend/internal/service/learner"
)

type entryResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Word          string    `json:"word"`
	PartOfSpeech  string    `json:"partOfSpeech"`
	Level         string    `json:"level"`
	Topic         string    `json:"topic"`
	Definition    string    `json:"definition"`
	Example       string    `json:"example,omitempty"`
	Pronunciation string    `json:"pronunciation,omitempty"`
	Source        string    `json:"source"`
	Personal      bool      `json:"personal"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
}

func toEntryResponse(e domain.Entry) entryResponse {
	return entryResponse{
		ID:            e.ID,
		Title:         e.Title(),
		Word:          e.Headword,
		PartOfSpeech:  e.PartOfSpeech.String(),
		Level:         e.Level.String(),
		Topic:         e.Topic,
		Definition:    e.Definition,
		Example:       e.Example,
		Pronunciation: e.Pronunciation,
		Source:        e.Source,
		Personal:      e.OwnerID != nil,
		CreatedAt:     e.CreatedAt,
	}
}

func toEntryResponses(entries []domain.Entry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	return out
}

type insertResponse struct {
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
}

func toInsertResponse(r domain.InsertResult) insertResponse {
	return insertResponse{Inserted: r.Inserted, Duplicates: r.Duplicates, Skipped: r.Skipped}
}

type addWordResponse struct {
	insertResponse
	Entries []entryResponse `json:"entries"`
}

func toAddWordResponse(r acquisition.AddWordResult) addWordResponse {
	return addWordResponse{insertResponse: toInsertResponse(r.InsertResult), Entries: toEntryResponses(r.Entries)}
}

type learnerResponse struct {
	ID             string        `json:"id"`
	Username       string        `json:"username"`
	Role           string        `json:"role"`
	Levels         []string      `json:"levels"`
	Topics         []string      `json:"topics"`
	PartsOfSpeech  []string      `json:"partsOfSpeech"`
	SourcePriority []string      `json:"sourcePriority"`
	Daily          dailyResponse `json:"daily"`
	SeenCount      *int          `json:"seenCount,omitempty"`
}

type dailyResponse struct {
	Enabled bool   `json:"enabled"`
	Count   int    `json:"count"`
	Time    string `json:"time"`
}

func toLearnerResponse(l domain.Learner) learnerResponse {
	resp := learnerResponse{
		ID:             l.ID.String(),
		Username:       l.Username,
		Role:           l.Role.String(),
		Levels:         make([]string, 0, len(l.Preference.Levels)),
		Topics:         append([]string{}, l.Preference.Topics...),
		PartsOfSpeech:  make([]string, 0, len(l.Preference.PartsOfSpeech)),
		SourcePriority: append([]string{}, l.Preference.SourcePriority...),
		Daily:          dailyResponse{Enabled: l.Daily.Enabled, Count: l.Daily.Count, Time: l.Daily.Time},
	}
	for _, lvl := range l.Preference.Levels {
		resp.Levels = append(resp.Levels, lvl.String())
	}
	for _, pos := range l.Preference.PartsOfSpeech {
		resp.PartsOfSpeech = append(resp.PartsOfSpeech, pos.String())
	}
	return resp
}

func toProfileResponse(p *learner.Profile) learnerResponse {
	resp := toLearnerResponse(p.Learner)
	seen := p.SeenCount
	resp.SeenCount = &seen
	return resp
}
