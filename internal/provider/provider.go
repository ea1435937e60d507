// Package provider defines the dictionary source contract and the registry
// the aggregator resolves source names against.
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// Source names.
const (
	Cambridge = "cambridge"
	Oxford    = "oxford"
	Webster   = "webster"
	Collins   = "collins"
	Longman   = "longman"
	FreeDict  = "freedict"
)

// DefaultPriority is the system source order, highest priority first.
var DefaultPriority = []string{Cambridge, Oxford, Webster, Collins, Longman, FreeDict}

// Adapter looks a headword up in one dictionary. Lookup never fails: any
// network, status or markup problem yields an empty slice. Candidates keep the
// order the source lists them in.
type Adapter interface {
	Name() string
	Lookup(ctx context.Context, headword string) []domain.CandidateEntry
}

// Registry maps source names to adapters.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry registers adapters under their Name. A later adapter with the
// same name replaces an earlier one.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[NormalizeName(a.Name())] = a
	}
	return r
}

// Get returns the adapter registered under name.
func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.adapters[NormalizeName(name)]
	return a, ok
}

// Names returns the registered source names in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for n := range r.adapters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NormalizeName lowercases and trims a source name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LogUnavailable records a failed lookup as domain.ErrSourceUnavailable.
// The adapter then returns no candidates.
func LogUnavailable(ctx context.Context, log *slog.Logger, headword string, err error) {
	log.WarnContext(ctx, "source lookup failed",
		slog.String("headword", headword),
		slog.String("error", fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err).Error()),
	)
}
