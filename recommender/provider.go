package recommender

import "sync"

// Provider constructs a Recommender exactly once, on first Get, and hands the
// same instance (or the same construction error) to every caller.
type Provider struct {
	get func() (*Recommender, error)
}

// NewProvider wraps build behind a one-time initialization barrier.
func NewProvider(build func() (*Recommender, error)) *Provider {
	return &Provider{get: sync.OnceValues(build)}
}

// Get returns the shared Recommender.
func (p *Provider) Get() (*Recommender, error) { return p.get() }
