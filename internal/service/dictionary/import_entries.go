package dictionary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 5. ImportEntries
// ---------------------------------------------------------------------------

// ImportEntries stores a bulk manual document (pipe lines or YAML records).
// Malformed records are reported and skipped; the well-formed ones are
// inserted in one transaction with the usual duplicate rejection. Admins
// import into the public catalog, everyone else into their personal words.
func (s *Service) ImportEntries(ctx context.Context, input ImportInput) (*ImportResult, error) {
	owner, err := ownerScope(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	var entries []domain.Entry
	switch input.Format {
	case FormatYAML:
		entries, result.Errors, err = parseYAML(input.Data)
		if err != nil {
			return nil, err
		}
	default:
		entries, result.Errors = parsePipe(input.Data)
	}

	for i := range entries {
		entries[i].OwnerID = owner
	}

	if len(entries) > 0 {
		txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			res, insErr := s.entries.InsertMany(txCtx, entries)
			if insErr != nil {
				return insErr
			}
			result.InsertResult = res
			return nil
		})
		if txErr != nil {
			return nil, fmt.Errorf("dictionary.ImportEntries: %w", txErr)
		}
	}

	s.log.InfoContext(ctx, "entries imported",
		slog.String("format", input.Format),
		slog.Bool("public", owner == nil),
		slog.Int("inserted", result.Inserted),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("malformed", len(result.Errors)),
	)
	return result, nil
}
