package acquisition

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lingo-backend/internal/config"
	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/provider"
)

// Aggregator queries sources in priority order and keeps, for each known part
// of speech, the first candidate that defines it. Candidates whose part of
// speech cannot be determined are all kept.
type Aggregator struct {
	log            *slog.Logger
	registry       *provider.Registry
	priority       []string
	parallel       bool
	maxConcurrency int
}

// NewAggregator creates an Aggregator. cfg.Priority is the system order used
// when a caller passes none.
func NewAggregator(logger *slog.Logger, registry *provider.Registry, cfg config.SourcesConfig) *Aggregator {
	priority := cfg.Priority
	if len(priority) == 0 {
		priority = provider.DefaultPriority
	}
	return &Aggregator{
		log:            logger.With("service", "aggregator"),
		registry:       registry,
		priority:       priority,
		parallel:       cfg.Parallel,
		maxConcurrency: cfg.MaxConcurrency,
	}
}

// Aggregate looks headword up in every source named by priority (the system
// order when empty) and merges the candidates. The result depends only on
// source order and the order candidates appear within each source, so the
// parallel mode returns exactly what the sequential mode would.
func (a *Aggregator) Aggregate(ctx context.Context, headword string, priority []string) []domain.Entry {
	if len(priority) == 0 {
		priority = a.priority
	}
	adapters := a.resolve(ctx, priority)

	var results [][]domain.CandidateEntry
	if a.parallel && len(adapters) > 1 {
		results = a.lookupParallel(ctx, headword, adapters)
	} else {
		results = a.lookupSequential(ctx, headword, adapters)
	}

	names := make([]string, len(adapters))
	for i, ad := range adapters {
		names[i] = ad.Name()
	}

	out := merge(headword, names, results)
	a.log.DebugContext(ctx, "aggregated",
		slog.String("headword", headword),
		slog.Int("sources", len(adapters)),
		slog.Int("entries", len(out)),
	)
	return out
}

// resolve maps names to adapters, dropping unknown and repeated names.
func (a *Aggregator) resolve(ctx context.Context, priority []string) []provider.Adapter {
	seen := make(map[string]struct{}, len(priority))
	out := make([]provider.Adapter, 0, len(priority))
	for _, name := range priority {
		name = provider.NormalizeName(name)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		ad, ok := a.registry.Get(name)
		if !ok {
			a.log.WarnContext(ctx, "unknown source skipped", slog.String("source", name))
			continue
		}
		out = append(out, ad)
	}
	return out
}

func (a *Aggregator) lookupSequential(ctx context.Context, headword string, adapters []provider.Adapter) [][]domain.CandidateEntry {
	results := make([][]domain.CandidateEntry, len(adapters))
	for i, ad := range adapters {
		if ctx.Err() != nil {
			break
		}
		results[i] = ad.Lookup(ctx, headword)
	}
	return results
}

func (a *Aggregator) lookupParallel(ctx context.Context, headword string, adapters []provider.Adapter) [][]domain.CandidateEntry {
	results := make([][]domain.CandidateEntry, len(adapters))

	g, gctx := errgroup.WithContext(ctx)
	if a.maxConcurrency > 0 {
		g.SetLimit(a.maxConcurrency)
	}
	for i, ad := range adapters {
		g.Go(func() error {
			results[i] = ad.Lookup(gctx, headword)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// merge applies the first-source-wins rule per part of speech. results[i]
// holds the candidates of sources[i].
func merge(headword string, sources []string, results [][]domain.CandidateEntry) []domain.Entry {
	hw := strings.TrimSpace(headword)
	filled := make(map[domain.PartOfSpeech]struct{})

	var out []domain.Entry
	for i, candidates := range results {
		for _, c := range candidates {
			def := strings.TrimSpace(c.Definition)
			if def == "" {
				continue
			}

			pos := domain.ClassifyPartOfSpeech(c.RawPartOfSpeech, def)
			if pos.IsKnown() {
				if _, taken := filled[pos]; taken {
					continue
				}
				filled[pos] = struct{}{}
			}

			out = append(out, domain.Entry{
				Headword:      hw,
				PartOfSpeech:  pos,
				Level:         domain.NormalizeLevel(c.RawLevel),
				Definition:    def,
				Example:       strings.TrimSpace(c.Example),
				Pronunciation: strings.TrimSpace(c.Pronunciation),
				Source:        sources[i],
			})
		}
	}
	return out
}
