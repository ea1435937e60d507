package sqlfilter

import (
	"reflect"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

func TestEntries_EmptyFilterSelectsPublicCatalog(t *testing.T) {
	t.Parallel()

	sql, args, err := Entries(domain.EntryFilter{}, "").ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if sql != "(owner_id IS NULL)" {
		t.Errorf("sql = %q, want %q", sql, "(owner_id IS NULL)")
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestEntries_AllFields(t *testing.T) {
	t.Parallel()

	f := domain.EntryFilter{
		Levels:        []domain.CEFRLevel{domain.LevelA1, domain.LevelB2},
		Topics:        []string{" Travel ", ""},
		PartsOfSpeech: []domain.PartOfSpeech{domain.PartOfSpeechNoun, domain.PartOfSpeechVerb},
	}

	sql, args, err := sq.Select("e.id").From("entries e").Where(Entries(f, "e")).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}

	for _, want := range []string{
		"e.owner_id IS NULL",
		"e.level IN (?,?)",
		"lower(e.topic) IN (?)",
		"lower(e.title) LIKE ? OR lower(e.title) LIKE ?",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("sql %q does not contain %q", sql, want)
		}
	}

	wantArgs := []any{"A1", "B2", "travel", "%(noun)", "%(verb)"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestEntries_Owner(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	sql, args, err := Entries(domain.EntryFilter{OwnerID: &owner}, "").ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if sql != "(owner_id = ?)" {
		t.Errorf("sql = %q", sql)
	}
	if len(args) != 1 || args[0] != owner.String() {
		t.Errorf("args = %v, want [%s]", args, owner)
	}
}

func TestEntries_IgnoresUnknownValues(t *testing.T) {
	t.Parallel()

	f := domain.EntryFilter{
		Levels:        []domain.CEFRLevel{"Z9"},
		PartsOfSpeech: []domain.PartOfSpeech{domain.PartOfSpeechUnknown},
	}
	sql, _, err := Entries(f, "").ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if sql != "(owner_id IS NULL)" {
		t.Errorf("sql = %q, want only the owner predicate", sql)
	}
}
