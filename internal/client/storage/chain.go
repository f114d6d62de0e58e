package storage

import "context"

// Chain reads from an ordered list of backends, returning the first value
// found. It is read-only: writes always target a specific medium.
type Chain struct {
	backends []Backend
}

// NewChain builds a read chain; earlier backends take precedence.
func NewChain(backends ...Backend) *Chain {
	return &Chain{backends: backends}
}

// Get returns the first non-absent value across the chain, or (nil, nil)
// when no backend holds the key.
func (c *Chain) Get(ctx context.Context, key string) ([]byte, error) {
	for _, b := range c.backends {
		v, err := b.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}
