package acquisition

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

const (
	maxHeadwordLen = 100
	maxTopicLen    = 100
	maxBulkWords   = 100
)

// AddWordInput names one headword to acquire.
type AddWordInput struct {
	Headword string
	Topic    string
}

// Validate checks all fields and collects all errors.
func (i *AddWordInput) Validate() error {
	var errs []domain.FieldError
	errs = append(errs, validateHeadword("word", i.Headword)...)
	errs = append(errs, validateTopic(i.Topic)...)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddWordsInput names many headwords sharing a topic.
type AddWordsInput struct {
	Headwords []string
	Topic     string
}

// Validate checks all fields and collects all errors.
func (i *AddWordsInput) Validate() error {
	var errs []domain.FieldError

	words := 0
	for _, w := range i.Headwords {
		if strings.TrimSpace(w) != "" {
			words++
		}
		if utf8.RuneCountInString(strings.TrimSpace(w)) > maxHeadwordLen {
			errs = append(errs, domain.FieldError{Field: "words", Message: "word too long (max 100)"})
		}
	}
	if words == 0 {
		errs = append(errs, domain.FieldError{Field: "words", Message: "required"})
	} else if words > maxBulkWords {
		errs = append(errs, domain.FieldError{Field: "words", Message: "too many (max 100)"})
	}
	errs = append(errs, validateTopic(i.Topic)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ManualInput is a learner-supplied entry. Missing fields are completed by the
// fallback when one is configured.
type ManualInput struct {
	Entry domain.Entry
}

// Validate checks all fields and collects all errors.
func (i *ManualInput) Validate() error {
	var errs []domain.FieldError
	errs = append(errs, validateHeadword("word", i.Entry.Headword)...)
	errs = append(errs, validateTopic(i.Entry.Topic)...)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateHeadword(name, hw string) []domain.FieldError {
	hw = strings.TrimSpace(hw)
	switch {
	case hw == "":
		return []domain.FieldError{{Field: name, Message: "required"}}
	case utf8.RuneCountInString(hw) > maxHeadwordLen:
		return []domain.FieldError{{Field: name, Message: "too long (max 100)"}}
	}
	return nil
}

func validateTopic(topic string) []domain.FieldError {
	if utf8.RuneCountInString(strings.TrimSpace(topic)) > maxTopicLen {
		return []domain.FieldError{{Field: "topic", Message: "too long (max 100)"}}
	}
	return nil
}
