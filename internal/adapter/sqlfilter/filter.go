// Package sqlfilter translates domain entry filters into squirrel predicates
// shared by the postgres and sqlite stores.
package sqlfilter

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// Entries returns the predicate selecting rows of the entries table that match
// f. alias is the table alias used in the surrounding query ("" for none).
// Values are OR-ed within a field and fields are AND-ed; an empty field adds
// no condition. A nil owner selects the public catalog.
func Entries(f domain.EntryFilter, alias string) sq.And {
	col := func(name string) string {
		if alias == "" {
			return name
		}
		return alias + "." + name
	}

	pred := sq.And{}

	if f.OwnerID == nil {
		pred = append(pred, sq.Eq{col("owner_id"): nil})
	} else {
		pred = append(pred, sq.Eq{col("owner_id"): f.OwnerID.String()})
	}

	if levels := levelValues(f.Levels); len(levels) > 0 {
		pred = append(pred, sq.Eq{col("level"): levels})
	}

	if topics := topicValues(f.Topics); len(topics) > 0 {
		pred = append(pred, sq.Eq{"lower(" + col("topic") + ")": topics})
	}

	if pos := posSuffixes(f.PartsOfSpeech); len(pos) > 0 {
		or := sq.Or{}
		for _, suffix := range pos {
			or = append(or, sq.Like{"lower(" + col("title") + ")": "%" + suffix})
		}
		pred = append(pred, or)
	}

	return pred
}

func levelValues(levels []domain.CEFRLevel) []string {
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		if l.IsValid() {
			out = append(out, l.String())
		}
	}
	return out
}

func topicValues(topics []string) []string {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// posSuffixes returns the "(pos)" title suffixes for known parts of speech.
func posSuffixes(parts []domain.PartOfSpeech) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.IsKnown() {
			out = append(out, "("+p.String()+")")
		}
	}
	return out
}
