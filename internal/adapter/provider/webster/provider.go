// Package webster scrapes the Merriam-Webster dictionary.
package webster

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/heartmarshall/lingo-backend/internal/adapter/provider/scrape"
	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/provider"
)

const defaultBaseURL = "https://www.merriam-webster.com/dictionary"

var (
	selEntry    = cascadia.MustCompile(`div[id^="dictionary-entry-"]`)
	selHeadword = cascadia.MustCompile(".hword")
	selPOS      = cascadia.MustCompile(".important-blue-link")
	selSense    = cascadia.MustCompile(".sense.has-sn")
	selDtText   = cascadia.MustCompile(".dtText")
	selExample  = cascadia.MustCompile(".ex-sent")
	selPron     = cascadia.MustCompile(".pr")
)

// Provider looks headwords up on merriam-webster.com.
type Provider struct {
	baseURL string
	fetcher *scrape.Fetcher
	log     *slog.Logger
}

// NewProvider creates a Provider. An empty baseURL selects the public site.
func NewProvider(baseURL string, timeout time.Duration, userAgent string, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: scrape.NewFetcher(timeout, userAgent),
		log:     logger.With("adapter", provider.Webster),
	}
}

// Name implements provider.Adapter.
func (p *Provider) Name() string { return provider.Webster }

// Lookup returns one candidate per dictionary entry section. Webster does not
// publish CEFR levels, so RawLevel is always empty.
func (p *Provider) Lookup(ctx context.Context, headword string) []domain.CandidateEntry {
	hw := strings.TrimSpace(headword)
	doc, err := p.fetcher.Document(ctx, p.baseURL+"/"+url.PathEscape(strings.ToLower(hw)))
	if err != nil {
		provider.LogUnavailable(ctx, p.log, hw, err)
		return nil
	}

	out := parsePage(doc, hw)
	p.log.DebugContext(ctx, "webster response",
		slog.String("headword", hw),
		slog.Int("candidates", len(out)),
	)
	return out
}

func parsePage(doc *html.Node, headword string) []domain.CandidateEntry {
	sections := selEntry.MatchAll(doc)
	if len(sections) == 0 {
		sections = []*html.Node{doc}
	}

	var out []domain.CandidateEntry
	for _, s := range sections {
		def := definition(s)
		if def == "" {
			continue
		}
		word := scrape.First(s, selHeadword)
		if word == "" {
			word = headword
		}
		out = append(out, domain.CandidateEntry{
			Headword:        word,
			RawPartOfSpeech: scrape.First(s, selPOS),
			Definition:      def,
			Example:         scrape.First(s, selExample),
			Pronunciation:   scrape.FirstOf(selPron, s, doc),
			Source:          provider.Webster,
		})
	}
	return out
}

// definition reads the first numbered sense, preferring its definition text
// over the whole sense, which also contains examples and labels.
func definition(root *html.Node) string {
	sense := selSense.MatchFirst(root)
	if sense == nil {
		return ""
	}
	text := scrape.First(sense, selDtText)
	if text == "" {
		text = scrape.Text(sense)
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), ":"))
}
