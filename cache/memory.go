package cache

import (
	"context"
	"sync"

	"food-storefront/models"
)

// MemoryCache keeps snapshots in process memory. It backs tests and
// deployments that accept losing the fallback on restart.
type MemoryCache struct {
	mu       sync.RWMutex
	sessions map[uint]models.CartSession
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{sessions: map[uint]models.CartSession{}}
}

func (c *MemoryCache) Load(_ context.Context, userID uint) (models.CartSession, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.sessions[userID]; ok {
		return s.Clone(), nil
	}
	return models.CartSession{}, nil
}

func (c *MemoryCache) Save(_ context.Context, userID uint, session models.CartSession) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[userID] = session.Clone()
	return nil
}

func (c *MemoryCache) Clear(_ context.Context, userID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, userID)
	return nil
}
