package dictionary

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// Bulk import formats.
const (
	FormatPipe = "pipe"
	FormatYAML = "yaml"
)

const (
	maxImportBytes = 1 << 20
	maxFieldLen    = 2000
)

// ListInput selects a listing.
type ListInput struct {
	Topic string
	// Mine lists the caller's personal words instead of the public catalog.
	Mine bool
}

// Validate checks all fields and collects all errors.
func (i *ListInput) Validate() error {
	if utf8.RuneCountInString(i.Topic) > 100 {
		return domain.NewValidationError("topic", "too long (max 100)")
	}
	return nil
}

// EditFieldInput changes one field of an entry.
type EditFieldInput struct {
	EntryID int64
	Field   domain.EntryField
	Value   string
}

// Validate checks all fields and collects all errors.
func (i *EditFieldInput) Validate() error {
	var errs []domain.FieldError

	if i.EntryID <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if !i.Field.IsValid() {
		errs = append(errs, domain.FieldError{Field: "field", Message: "must be one of title, topic, level, definition, example, pronunciation"})
	}

	v := strings.TrimSpace(i.Value)
	switch {
	case utf8.RuneCountInString(v) > maxFieldLen:
		errs = append(errs, domain.FieldError{Field: "value", Message: "too long (max 2000)"})
	case v == "" && (i.Field == domain.EntryFieldTitle || i.Field == domain.EntryFieldDefinition):
		errs = append(errs, domain.FieldError{Field: "value", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ImportInput is a bulk manual import document.
type ImportInput struct {
	Format string
	Data   string
}

// Validate checks all fields and collects all errors.
func (i *ImportInput) Validate() error {
	var errs []domain.FieldError

	switch i.Format {
	case FormatPipe, FormatYAML:
	default:
		errs = append(errs, domain.FieldError{Field: "format", Message: "must be pipe or yaml"})
	}

	switch {
	case strings.TrimSpace(i.Data) == "":
		errs = append(errs, domain.FieldError{Field: "data", Message: "required"})
	case len(i.Data) > maxImportBytes:
		errs = append(errs, domain.FieldError{Field: "data", Message: "too large (max 1 MiB)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
