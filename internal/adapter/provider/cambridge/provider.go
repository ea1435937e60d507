// Package cambridge scrapes the Cambridge English Dictionary.
package cambridge

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

const defaultBaseURL = "https://dictionary.cambridge.org/dictionary/english"

var (
	selBlock      = cascadia.MustCompile(".pr.entry-body__el")
	selHeadword   = cascadia.MustCompile(".hw.dhw")
	selPOS        = cascadia.MustCompile(".pos.dpos")
	selLevel      = cascadia.MustCompile(".epp-xref")
	selDefinition = cascadia.MustCompile(".def.ddef_d")
	selExample    = cascadia.MustCompile(".examp.dexamp")
	selIPA        = cascadia.MustCompile(".ipa")
)

// Provider looks headwords up on dictionary.cambridge.org.
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
		log:     logger.With("adapter", provider.Cambridge),
	}
}

// Name implements provider.Adapter.
func (p *Provider) Name() string { return provider.Cambridge }

// Lookup returns one candidate per entry block on the page, each carrying the
// first definition and example of that block.
func (p *Provider) Lookup(ctx context.Context, headword string) []domain.CandidateEntry {
	hw := strings.TrimSpace(headword)
	doc, err := p.fetcher.Document(ctx, p.baseURL+"/"+url.PathEscape(strings.ToLower(hw)))
	if err != nil {
		provider.LogUnavailable(ctx, p.log, hw, err)
		return nil
	}

	out := parsePage(doc, hw)
	p.log.DebugContext(ctx, "cambridge response",
		slog.String("headword", hw),
		slog.Int("candidates", len(out)),
	)
	return out
}

func parsePage(doc *html.Node, headword string) []domain.CandidateEntry {
	blocks := selBlock.MatchAll(doc)
	if len(blocks) == 0 {
		blocks = []*html.Node{doc}
	}

	pagePron := scrape.First(doc, selIPA)

	var out []domain.CandidateEntry
	for _, b := range blocks {
		def := cleanDefinition(scrape.First(b, selDefinition))
		if def == "" {
			continue
		}
		word := scrape.First(b, selHeadword)
		if word == "" {
			word = headword
		}
		pron := scrape.First(b, selIPA)
		if pron == "" {
			pron = pagePron
		}
		out = append(out, domain.CandidateEntry{
			Headword:        word,
			RawPartOfSpeech: scrape.First(b, selPOS),
			RawLevel:        scrape.First(b, selLevel),
			Definition:      def,
			Example:         scrape.First(b, selExample),
			Pronunciation:   pron,
			Source:          provider.Cambridge,
		})
	}
	return out
}

// cleanDefinition drops the trailing colon Cambridge puts before examples.
func cleanDefinition(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ":"))
}
