package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	learner := SeedLearner(t, pool)

	var username string
	err := pool.QueryRow(
		context.Background(),
		`SELECT username FROM learners WHERE id = $1`,
		learner.ID,
	).Scan(&username)
	if err != nil {
		t.Fatalf("expected learner in DB, got error: %v", err)
	}

	if username != learner.Username {
		t.Fatalf("expected username %q, got %q", learner.Username, username)
	}
}
