package dictionary

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// Record is the exchange form of an entry, shared by bulk import and export.
// Word may embed the part of speech as "run (verb)".
type Record struct {
	Topic         string `yaml:"topic"                   json:"topic"`
	Level         string `yaml:"level"                   json:"level"`
	Word          string `yaml:"word"                    json:"word"`
	Definition    string `yaml:"definition"              json:"definition"`
	Example       string `yaml:"example,omitempty"       json:"example,omitempty"`
	Pronunciation string `yaml:"pronunciation,omitempty" json:"pronunciation,omitempty"`
}

// pipeFields is the exact number of fields in a pipe line:
// topic | level | word | definition | example | pronunciation.
const pipeFields = 6

// toEntry validates a record and converts it.
func (r Record) toEntry() (domain.Entry, error) {
	word := strings.TrimSpace(r.Word)
	def := strings.TrimSpace(r.Definition)
	switch {
	case word == "":
		return domain.Entry{}, fmt.Errorf("word is empty")
	case def == "":
		return domain.Entry{}, fmt.Errorf("definition is empty")
	}

	headword, pos := domain.SplitTitle(word)
	return domain.Entry{
		Headword:      headword,
		PartOfSpeech:  pos,
		Level:         domain.NormalizeLevel(r.Level),
		Topic:         strings.TrimSpace(r.Topic),
		Definition:    def,
		Example:       strings.TrimSpace(r.Example),
		Pronunciation: strings.TrimSpace(r.Pronunciation),
		Source:        domain.SourceBulk,
	}, nil
}

func recordFromEntry(e domain.Entry) Record {
	return Record{
		Topic:         e.TopicOrDefault(),
		Level:         e.Level.String(),
		Word:          e.Title(),
		Definition:    e.Definition,
		Example:       e.Example,
		Pronunciation: e.Pronunciation,
	}
}

// parsePipe reads one record per line. Blank lines and lines starting with
// '#' are ignored.
func parsePipe(data string) ([]domain.Entry, []ImportError) {
	var (
		entries []domain.Entry
		errs    []ImportError
	)

	for n, line := range strings.Split(data, "\n") {
		text := strings.TrimSpace(line)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		parts := strings.Split(text, "|")
		if len(parts) != pipeFields {
			errs = append(errs, ImportError{
				LineNumber: n + 1,
				Text:       text,
				Reason:     fmt.Sprintf("expected %d fields, got %d", pipeFields, len(parts)),
			})
			continue
		}

		e, err := Record{
			Topic:         parts[0],
			Level:         parts[1],
			Word:          parts[2],
			Definition:    parts[3],
			Example:       parts[4],
			Pronunciation: parts[5],
		}.toEntry()
		if err != nil {
			errs = append(errs, ImportError{LineNumber: n + 1, Text: text, Reason: err.Error()})
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs
}

// parseYAML reads a YAML sequence of records. A document that is not a
// sequence of records is a validation error; bad records are reported by
// their line in the document.
func parseYAML(data string) ([]domain.Entry, []ImportError, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(data), &doc); err != nil {
		return nil, nil, domain.NewValidationError("data", "invalid yaml: "+err.Error())
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, nil, domain.NewValidationError("data", "yaml document must be a list of records")
	}

	var (
		entries []domain.Entry
		errs    []ImportError
	)
	for _, node := range doc.Content[0].Content {
		var r Record
		if err := node.Decode(&r); err != nil {
			errs = append(errs, ImportError{LineNumber: node.Line, Reason: err.Error()})
			continue
		}
		e, err := r.toEntry()
		if err != nil {
			errs = append(errs, ImportError{LineNumber: node.Line, Text: r.Word, Reason: err.Error()})
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs, nil
}

// MarshalYAML renders records as an import-compatible YAML document.
func MarshalYAML(records []Record) ([]byte, error) {
	out, err := yaml.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return out, nil
}
