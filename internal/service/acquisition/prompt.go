package acquisition

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// field is a key the fallback may answer.
type field string

const (
	fieldPartOfSpeech  field = "part_of_speech"
	fieldLevel         field = "level"
	fieldDefinition    field = "definition"
	fieldExample       field = "example"
	fieldPronunciation field = "pronunciation"
)

// notAWordReply is the reserved answer for input that is not a word.
const notAWordReply = "NOT_A_WORD"

var fieldAliases = map[string]field{
	"part_of_speech": fieldPartOfSpeech,
	"pos":            fieldPartOfSpeech,
	"level":          fieldLevel,
	"cefr":           fieldLevel,
	"cefr_level":     fieldLevel,
	"definition":     fieldDefinition,
	"example":        fieldExample,
	"pronunciation":  fieldPronunciation,
	"ipa":            fieldPronunciation,
}

// emptyValues are answers that mean "no value".
var emptyValues = map[string]struct{}{
	"": {}, "-": {}, "n/a": {}, "none": {}, "unknown": {},
}

func buildPrompt(headword string, e domain.Entry, missing []field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You complete English dictionary entries for language learners.\n\n")
	fmt.Fprintf(&b, "WORD: %s\n", strings.TrimSpace(headword))

	known := knownFields(e)
	if len(known) > 0 {
		b.WriteString("Known fields (do not change them):\n")
		for _, kv := range known {
			fmt.Fprintf(&b, "%s: %s\n", kv[0], kv[1])
		}
	}

	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}
	fmt.Fprintf(&b, "\nFill ONLY these missing fields: %s\n", strings.Join(names, ", "))
	b.WriteString("Return only key: value lines, one per field, with no other text.\n")
	b.WriteString("level is a CEFR code (A1, A2, B1, B2, C1 or C2). pronunciation is IPA.\n")
	b.WriteString("part_of_speech is one of noun, verb, adjective, adverb, preposition, conjunction, interjection, pronoun.\n")
	fmt.Fprintf(&b, "If the word is not a real English word, reply with exactly %s.\n", notAWordReply)
	return b.String()
}

func knownFields(e domain.Entry) [][2]string {
	var out [][2]string
	if e.PartOfSpeech.IsKnown() {
		out = append(out, [2]string{string(fieldPartOfSpeech), e.PartOfSpeech.String()})
	}
	if e.Level.IsKnown() {
		out = append(out, [2]string{string(fieldLevel), e.Level.String()})
	}
	for _, kv := range [][2]string{
		{string(fieldDefinition), e.Definition},
		{string(fieldExample), e.Example},
		{string(fieldPronunciation), e.Pronunciation},
	} {
		if v := strings.TrimSpace(kv[1]); v != "" {
			out = append(out, [2]string{kv[0], v})
		}
	}
	return out
}

func isNotAWord(reply string) bool {
	return strings.EqualFold(strings.Trim(strings.TrimSpace(reply), "`*. "), notAWordReply)
}

// parseReply reads "key: value" lines. Keys are case-insensitive and treat
// space, hyphen and underscore alike. The first value for a key wins; lines
// with unrecognized keys are returned as rejected.
func parseReply(reply string) (map[field]string, []string) {
	fields := make(map[field]string)
	var rejected []string

	for _, line := range strings.Split(reply, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		norm := normalizeKey(key)
		f, known := fieldAliases[norm]
		if !known {
			if norm != "" {
				rejected = append(rejected, norm)
			}
			continue
		}

		value = strings.Trim(strings.TrimSpace(value), `"`)
		if _, empty := emptyValues[strings.ToLower(value)]; empty {
			continue
		}
		if _, dup := fields[f]; !dup {
			fields[f] = value
		}
	}
	return fields, rejected
}

func normalizeKey(key string) string {
	k := strings.ToLower(strings.Trim(strings.TrimSpace(key), "*-• "))
	k = strings.NewReplacer(" ", "_", "-", "_").Replace(k)
	return k
}
