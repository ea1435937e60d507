package dictionary

import (
	"time"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// ListResult is one page of entries plus the size of the whole scope.
type ListResult struct {
	Entries    []domain.Entry
	TotalCount int
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	domain.InsertResult
	Errors []ImportError
}

// ImportError describes a single malformed record.
type ImportError struct {
	LineNumber int
	Text       string
	Reason     string
}

// ExportResult contains exported entries in import-compatible form.
type ExportResult struct {
	Items      []Record
	ExportedAt time.Time
}
