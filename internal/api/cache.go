package api

import (
	"sync"

	"github.com/animabing/animabing/internal/models"
)

// childKind distinguishes episode and chapter collections of the same parent
type childKind string

const (
	kindEpisodes childKind = "episodes"
	kindChapters childKind = "chapters"
)

type childKey struct {
	kind     childKind
	parentID string
}

// ChildCache caches episode and chapter lists per parent to avoid refetching
// when the user returns to a detail view. Empty results are never cached.
type ChildCache struct {
	mu   sync.RWMutex
	data map[childKey][]models.Episode
}

// NewChildCache creates a new ChildCache
func NewChildCache() *ChildCache {
	return &ChildCache{
		data: make(map[childKey][]models.Episode),
	}
}

// Get retrieves a cached collection
func (c *ChildCache) Get(kind childKind, parentID string) ([]models.Episode, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.data[childKey{kind, parentID}]
	return val, ok
}

// Set stores a collection; empty collections are ignored
func (c *ChildCache) Set(kind childKind, parentID string, eps []models.Episode) {
	if len(eps) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[childKey{kind, parentID}] = eps
}

// Invalidate drops both collections of a parent
func (c *ChildCache) Invalidate(parentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, childKey{kindEpisodes, parentID})
	delete(c.data, childKey{kindChapters, parentID})
}

// Reset drops every cached collection
func (c *ChildCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[childKey][]models.Episode)
}
