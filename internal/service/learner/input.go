package learner

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/provider"
)

// RegisterInput holds parameters for registration.
type RegisterInput struct {
	Username string
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	if utf8.RuneCountInString(i.Username) > 64 {
		return domain.NewValidationError("username", "too long (max 64)")
	}
	return nil
}

// UpdatePreferencesInput holds parameters for a preference update.
// A nil slice leaves that preference unchanged; an empty one clears it.
type UpdatePreferencesInput struct {
	Levels         []string
	Topics         []string
	PartsOfSpeech  []string
	SourcePriority []string
}

// UpdateDailyInput holds parameters for a daily settings update.
// All fields are optional (nil = don't change).
type UpdateDailyInput struct {
	Enabled *bool
	Count   *int
	Time    *string
}

// Validate validates the update daily input.
func (i UpdateDailyInput) Validate() error {
	var errs []domain.FieldError

	if i.Count != nil && (*i.Count < domain.MinDailyCount || *i.Count > domain.MaxDailyCount) {
		errs = append(errs, domain.FieldError{
			Field:   "count",
			Message: fmt.Sprintf("must be between %d and %d", domain.MinDailyCount, domain.MaxDailyCount),
		})
	}

	if i.Time != nil {
		if _, err := time.Parse("15:04", strings.TrimSpace(*i.Time)); err != nil {
			errs = append(errs, domain.FieldError{Field: "time", Message: "must be HH:MM"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// parsePreferences validates and normalizes a preference update against the
// current preference.
func parsePreferences(current domain.LearnerPreference, in UpdatePreferencesInput, sources map[string]struct{}) (domain.LearnerPreference, error) {
	var errs []domain.FieldError
	out := current

	if in.Levels != nil {
		out.Levels = make([]domain.CEFRLevel, 0, len(in.Levels))
		for _, raw := range in.Levels {
			lvl := domain.CEFRLevel(strings.ToUpper(strings.TrimSpace(raw)))
			if !lvl.IsKnown() {
				errs = append(errs, domain.FieldError{Field: "levels", Message: fmt.Sprintf("unknown level %q", raw)})
				continue
			}
			out.Levels = appendUnique(out.Levels, lvl)
		}
	}

	if in.Topics != nil {
		out.Topics = make([]string, 0, len(in.Topics))
		for _, raw := range in.Topics {
			t := strings.TrimSpace(raw)
			switch {
			case t == "":
				continue
			case utf8.RuneCountInString(t) > 100:
				errs = append(errs, domain.FieldError{Field: "topics", Message: "topic too long (max 100)"})
				continue
			}
			out.Topics = appendUnique(out.Topics, t)
		}
	}

	if in.PartsOfSpeech != nil {
		out.PartsOfSpeech = make([]domain.PartOfSpeech, 0, len(in.PartsOfSpeech))
		for _, raw := range in.PartsOfSpeech {
			pos, ok := domain.ParsePartOfSpeech(raw)
			if !ok {
				errs = append(errs, domain.FieldError{Field: "parts_of_speech", Message: fmt.Sprintf("unknown part of speech %q", raw)})
				continue
			}
			out.PartsOfSpeech = appendUnique(out.PartsOfSpeech, pos)
		}
	}

	if in.SourcePriority != nil {
		out.SourcePriority = make([]string, 0, len(in.SourcePriority))
		for _, raw := range in.SourcePriority {
			name := provider.NormalizeName(raw)
			if _, ok := sources[name]; !ok {
				errs = append(errs, domain.FieldError{Field: "source_priority", Message: fmt.Sprintf("unknown source %q", raw)})
				continue
			}
			out.SourcePriority = appendUnique(out.SourcePriority, name)
		}
	}

	if len(errs) > 0 {
		return current, &domain.ValidationError{Errors: errs}
	}
	return out, nil
}

func appendUnique[T comparable](s []T, v T) []T {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
