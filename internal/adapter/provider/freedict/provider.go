// Package freedict looks headwords up in the FreeDictionary JSON API.
package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/provider"
)

const defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// retryDelay is the pause before the single retry.
var retryDelay = 500 * time.Millisecond

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. An empty baseURL selects the public API.
func NewProvider(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", provider.FreeDict),
	}
}

// Name implements provider.Adapter.
func (p *Provider) Name() string { return provider.FreeDict }

// Lookup returns one candidate per meaning: the first definition of each
// part of speech with its example, plus the first phonetic transcription.
func (p *Provider) Lookup(ctx context.Context, headword string) []domain.CandidateEntry {
	entries, err := p.fetch(ctx, headword)
	if err != nil {
		provider.LogUnavailable(ctx, p.log, headword, err)
		return nil
	}

	out := mapAPIResponse(headword, entries)

	p.log.DebugContext(ctx, "freedict response",
		slog.String("headword", headword),
		slog.Int("candidates", len(out)),
	)
	return out
}

// fetch returns nil, nil when the word is unknown (HTTP 404).
func (p *Provider) fetch(ctx context.Context, headword string) ([]apiEntry, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(strings.TrimSpace(headword))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, headword)
	if err != nil {
		return nil, fmt.Errorf("freedict: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("freedict: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w", err)
	}
	return entries, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, headword string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "freedict retry", slog.String("headword", headword), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return p.httpClient.Do(req)
}

// mapAPIResponse converts API entries into candidates. Meanings of all
// etymologies are concatenated; the pronunciation is the first transcription
// found anywhere in the response.
func mapAPIResponse(headword string, entries []apiEntry) []domain.CandidateEntry {
	pron := firstTranscription(entries)

	var out []domain.CandidateEntry
	for _, entry := range entries {
		word := entry.Word
		if word == "" {
			word = headword
		}
		for _, meaning := range entry.Meanings {
			def, example := firstDefinition(meaning.Definitions)
			if def == "" {
				continue
			}
			out = append(out, domain.CandidateEntry{
				Headword:        word,
				RawPartOfSpeech: meaning.PartOfSpeech,
				Definition:      def,
				Example:         example,
				Pronunciation:   pron,
				Source:          provider.FreeDict,
			})
		}
	}
	return out
}

// firstDefinition returns the first non-empty definition and an example,
// preferring the definition's own example over a sibling's.
func firstDefinition(defs []apiDefinition) (string, string) {
	var def, example string
	for _, d := range defs {
		text := strings.TrimSpace(d.Definition)
		if text == "" {
			continue
		}
		if def == "" {
			def = text
			example = strings.TrimSpace(d.Example)
		}
		if example == "" {
			example = strings.TrimSpace(d.Example)
		}
		if example != "" {
			break
		}
	}
	return def, example
}

func firstTranscription(entries []apiEntry) string {
	for _, e := range entries {
		if t := strings.TrimSpace(e.Phonetic); t != "" {
			return t
		}
		for _, ph := range e.Phonetics {
			if t := strings.TrimSpace(ph.Text); t != "" {
				return t
			}
		}
	}
	return ""
}
