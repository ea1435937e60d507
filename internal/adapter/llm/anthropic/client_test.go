package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", "claude-test", 256, 5*time.Second,
		option.WithBaseURL(srv.URL+"/"),
		option.WithMaxRetries(0),
	)
}

func TestComplete(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("path = %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["model"] != "claude-test" {
			t.Errorf("model = %v", req["model"])
		}
		if !strings.Contains(string(body), "WORD: run") {
			t.Errorf("prompt missing from request: %s", body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "level: B1\nexample: I run daily."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 8}
		}`))
	})

	got, err := c.Complete(context.Background(), "WORD: run")

	require.NoError(t, err)
	assert.Equal(t, "level: B1\nexample: I run daily.", got)
}

func TestComplete_APIError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	})

	_, err := c.Complete(context.Background(), "WORD: run")
	assert.Error(t, err)
}

func TestComplete_EmptyContent(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_02","type":"message","role":"assistant","model":"claude-test",
			"content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`))
	})

	_, err := c.Complete(context.Background(), "WORD: run")
	assert.ErrorContains(t, err, "empty response")
}
