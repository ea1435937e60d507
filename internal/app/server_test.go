package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lingo-backend/internal/auth"
	"github.com/heartmarshall/lingo-backend/internal/config"
	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/provider"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

// fixedSource answers every lookup with the same candidates.
type fixedSource struct {
	name       string
	candidates []domain.CandidateEntry
}

func (s fixedSource) Name() string { return s.name }

func (s fixedSource) Lookup(context.Context, string) []domain.CandidateEntry { return s.candidates }

type testServer struct {
	URL    string
	Client *http.Client
	tokens *auth.TokenManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer wires the full stack on an in-memory SQLite store with a
// single fixed cambridge source.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:", AutoMigrate: true},
		Auth:     config.AuthConfig{JWTSecret: testSecret, JWTIssuer: "lingo-test", AccessTokenTTL: time.Hour},
		Sources:  config.SourcesConfig{Priority: []string{provider.Cambridge}, Timeout: time.Second},
		RateLimit: config.RateLimitConfig{
			RequestsPerMinute: 1000,
			CleanupInterval:   time.Minute,
		},
		CORS: config.CORSConfig{AllowedOrigins: "*"},
	}

	store, err := OpenStore(context.Background(), cfg.Database, logger)
	require.NoError(t, err)

	registry := provider.NewRegistry(fixedSource{
		name: provider.Cambridge,
		candidates: []domain.CandidateEntry{
			{Headword: "run", RawPartOfSpeech: "noun", RawLevel: "b1", Definition: "an act of running", Source: "Cambridge"},
			{Headword: "run", RawPartOfSpeech: "verb", RawLevel: "A1", Definition: "to move fast on foot", Source: "Cambridge"},
		},
	})

	svc := wireServices(cfg, logger, store, registry, nil)
	handler, stop := NewHandler(cfg, svc, logger)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		stop()
		svc.Close()
	})

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		tokens: auth.NewTokenManager(testSecret, "lingo-test", time.Hour),
	}
}

func (ts *testServer) token(t *testing.T, id uuid.UUID, role domain.Role) string {
	t.Helper()
	tok, err := ts.tokens.Issue(id, role)
	require.NoError(t, err)
	return tok
}

// do sends a JSON request and decodes a JSON response into a map.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestServer_Health(t *testing.T) {
	ts := setupTestServer(t)

	status, body := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	components, ok := body["components"].(map[string]any)
	require.True(t, ok, "expected components object")
	db, ok := components["database"].(map[string]any)
	require.True(t, ok, "expected database component")
	assert.Equal(t, "ok", db["status"])
}

func TestServer_Unauthenticated(t *testing.T) {
	ts := setupTestServer(t)

	status, _ := ts.do(t, http.MethodPost, "/api/v1/words", "", map[string]string{"word": "run"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.do(t, http.MethodPost, "/api/v1/words", "not-a-token", map[string]string{"word": "run"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestServer_CatalogAndPickFlow(t *testing.T) {
	ts := setupTestServer(t)
	admin := ts.token(t, uuid.New(), domain.RoleAdmin)
	learner := ts.token(t, uuid.New(), domain.RoleUser)

	// Admin adds to the public catalog: noun and verb are both kept.
	status, body := ts.do(t, http.MethodPost, "/api/v1/words", admin, map[string]string{"word": "run", "topic": "Sport"})
	require.Equal(t, http.StatusCreated, status, body)
	assert.EqualValues(t, 2, body["inserted"])

	// The same word again is a duplicate, not an error.
	status, body = ts.do(t, http.MethodPost, "/api/v1/words", admin, map[string]string{"word": "run", "topic": "Sport"})
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, 0, body["inserted"])
	assert.EqualValues(t, 2, body["duplicates"])

	status, body = ts.do(t, http.MethodPost, "/api/v1/me", learner, map[string]string{"username": "ann"})
	require.Equal(t, http.StatusOK, status, body)

	status, body = ts.do(t, http.MethodGet, "/api/v1/words?topic=Sport", learner, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, 2, body["totalCount"])

	// Two picks exhaust the pool without repeating; the third starts over.
	seen := map[string]bool{}
	for range 2 {
		status, body = ts.do(t, http.MethodPost, "/api/v1/words/pick", learner, nil)
		require.Equal(t, http.StatusOK, status, body)
		title, _ := body["title"].(string)
		assert.False(t, seen[title], "repeated %q before exhaustion", title)
		seen[title] = true
	}
	assert.True(t, seen["run (noun)"])
	assert.True(t, seen["run (verb)"])

	status, body = ts.do(t, http.MethodPost, "/api/v1/words/pick", learner, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Contains(t, seen, body["title"])

	status, body = ts.do(t, http.MethodGet, "/api/v1/me", learner, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "ann", body["username"])
}

func TestServer_PersonalWords(t *testing.T) {
	ts := setupTestServer(t)
	learner := ts.token(t, uuid.New(), domain.RoleUser)

	status, body := ts.do(t, http.MethodPost, "/api/v1/me", learner, map[string]string{"username": "bob"})
	require.Equal(t, http.StatusOK, status, body)

	status, body = ts.do(t, http.MethodPost, "/api/v1/words", learner, map[string]string{"word": "run"})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = ts.do(t, http.MethodGet, "/api/v1/words/mine", learner, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, 2, body["totalCount"])

	// Personal words never reach the public catalog.
	status, body = ts.do(t, http.MethodGet, "/api/v1/words", learner, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, 0, body["totalCount"])

	status, body = ts.do(t, http.MethodDelete, "/api/v1/words/mine", learner, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, 2, body["deleted"])
}

func TestServer_AdminOnly(t *testing.T) {
	ts := setupTestServer(t)
	learner := ts.token(t, uuid.New(), domain.RoleUser)

	status, _ := ts.do(t, http.MethodDelete, "/api/v1/admin/entries", learner, nil)
	assert.Equal(t, http.StatusForbidden, status)
}
