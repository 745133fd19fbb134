package server

import (
	"fmt"
	"sync"

	"github.com/brandseek/logo-match-mcp/internal/store"
)

// bankCache keeps opened feature banks mapped for reuse across
// requests. Banks are immutable snapshots, so one mapping can serve
// any number of concurrent readers.
type bankCache struct {
	mu    sync.RWMutex
	banks map[string]*store.Bank
}

func newBankCache() *bankCache {
	return &bankCache{banks: make(map[string]*store.Bank)}
}

// get returns the bank at path, opening and caching it on first use.
func (c *bankCache) get(path string) (*store.Bank, error) {
	c.mu.RLock()
	if b, ok := c.banks[path]; ok {
		c.mu.RUnlock()
		return b, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.banks[path]; ok {
		return b, nil
	}
	b, err := store.Load(path)
	if err != nil {
		return nil, err
	}
	c.banks[path] = b
	return b, nil
}

// evict closes and drops one cached bank so a rebuilt file is re-read
// on next use.
func (c *bankCache) evict(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.banks[path]; ok {
		b.Close()
		delete(c.banks, path)
	}
}

// Close releases every cached bank.
func (c *bankCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for path, b := range c.banks {
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close bank %s: %w", path, err)
		}
	}
	c.banks = make(map[string]*store.Bank)
	return firstErr
}
