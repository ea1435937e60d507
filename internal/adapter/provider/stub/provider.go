// Package stub provides named sources that never return candidates. They keep
// priority lists naming oxford, collins or longman valid until real adapters
// exist for those dictionaries.
package stub

import (
	"context"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/provider"
)

// Provider is an adapter with a name and no data.
type Provider struct {
	name string
}

// New creates a stub registered under name.
func New(name string) *Provider {
	return &Provider{name: provider.NormalizeName(name)}
}

// Defaults returns stubs for every source without a real adapter.
func Defaults() []provider.Adapter {
	return []provider.Adapter{New(provider.Oxford), New(provider.Collins), New(provider.Longman)}
}

// Name implements provider.Adapter.
func (p *Provider) Name() string { return p.name }

// Lookup implements provider.Adapter.
func (p *Provider) Lookup(context.Context, string) []domain.CandidateEntry { return nil }
