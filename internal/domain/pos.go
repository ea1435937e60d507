package domain

import (
	"strings"
	"unicode"
)

// posMarker binds a part of speech to the tokens that identify it in raw
// dictionary labels. posMarkers is ordered by precedence: the first tier with
// a matching token decides the category.
type posMarker struct {
	pos     PartOfSpeech
	tokens  []string
	phrases []string
}

var posMarkers = []posMarker{
	{pos: PartOfSpeechAdverb, tokens: []string{"adverb", "adv"}},
	{pos: PartOfSpeechVerb, tokens: []string{"verb", "vb", "v"}, phrases: []string{"past participle"}},
	{pos: PartOfSpeechAdjective, tokens: []string{"adjective", "adj"}},
	{pos: PartOfSpeechNoun, tokens: []string{"noun", "n"}},
	{pos: PartOfSpeechPreposition, tokens: []string{"preposition", "prep"}},
	{pos: PartOfSpeechConjunction, tokens: []string{"conjunction", "conj"}},
	{pos: PartOfSpeechInterjection, tokens: []string{"interjection", "interj", "exclamation"}},
	{pos: PartOfSpeechPronoun, tokens: []string{"pronoun", "pron"}},
}

// ClassifyPartOfSpeech maps a raw part-of-speech label to the closed enum.
//
// Markers are matched on whole words, so "pronoun" never reads as a noun and
// "adverb" never reads as a verb. A label that is itself an enum value is used
// literally. When the result is unknown and the definition mentions a past
// participle, the candidate is treated as a verb.
func ClassifyPartOfSpeech(raw, definition string) PartOfSpeech {
	s := strings.ToLower(strings.TrimSpace(raw))
	pos := classifyLabel(s)

	if pos == PartOfSpeechUnknown && strings.Contains(strings.ToLower(definition), "past participle") {
		return PartOfSpeechVerb
	}
	return pos
}

func classifyLabel(s string) PartOfSpeech {
	if s == "" {
		return PartOfSpeechUnknown
	}

	words := strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}

	for _, m := range posMarkers {
		for _, p := range m.phrases {
			if strings.Contains(s, p) {
				return m.pos
			}
		}
		for _, tok := range m.tokens {
			if _, ok := set[tok]; ok {
				return m.pos
			}
		}
	}

	if lit := PartOfSpeech(s); lit.IsValid() {
		return lit
	}
	return PartOfSpeechUnknown
}

// ParsePartOfSpeech accepts only exact enum names (case-insensitive). It is
// used for learner input, where loose matching would be surprising.
func ParsePartOfSpeech(s string) (PartOfSpeech, bool) {
	p := PartOfSpeech(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsKnown() {
		return "", false
	}
	return p, true
}
