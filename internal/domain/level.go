package domain

import "strings"

// cefrCodes is ordered so that the first match in the input wins.
var cefrCodes = []CEFRLevel{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// NormalizeLevel maps a free-text proficiency descriptor onto the CEFR scale.
//
// A CEFR code substring ("b2", "Level C1") takes priority over keywords.
// Keywords are checked in a fixed order: beginner/basic, elementary,
// intermediate (without "upper"), upper intermediate, advanced, proficiency.
// Anything else is LevelUnknown. The function is idempotent.
func NormalizeLevel(raw string) CEFRLevel {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return LevelUnknown
	}

	for _, code := range cefrCodes {
		if strings.Contains(s, strings.ToLower(string(code))) {
			return code
		}
	}

	switch {
	case strings.Contains(s, "beginner"), strings.Contains(s, "basic"):
		return LevelA1
	case strings.Contains(s, "elementary"):
		return LevelA2
	case strings.Contains(s, "intermediate") && !strings.Contains(s, "upper"):
		return LevelB1
	case strings.Contains(s, "upper intermediate"), strings.Contains(s, "upper-intermediate"):
		return LevelB2
	case strings.Contains(s, "advanced"):
		return LevelC1
	case strings.Contains(s, "proficiency"):
		return LevelC2
	}

	return LevelUnknown
}
