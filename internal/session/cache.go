// Package session tracks which documentation fragments have already been
// delivered to each client session, so a fragment is injected at most
// once per session.
package session

import "sync"

// DefaultCapacity is the number of sessions tracked before the oldest
// one is evicted.
const DefaultCapacity = 100

// Cache is a bounded table of per-session delivered-fragment sets.
// Entries are created lazily, grow monotonically, and are dropped only by
// explicit termination or insertion-order eviction under capacity
// pressure. There is no time-based expiry: a long-running session is
// never re-shown a fragment.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    []string // session IDs, oldest first
	sessions map[string]map[string]struct{}
}

// NewCache creates a Cache tracking at most capacity sessions.
// Non-positive capacities fall back to DefaultCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		sessions: make(map[string]map[string]struct{}),
	}
}

// MarkDelivered records that path has been delivered to sessionID.
// Idempotent. Creating a new session entry at capacity evicts the
// oldest tracked session.
func (c *Cache) MarkDelivered(sessionID, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getOrCreate(sessionID)[path] = struct{}{}
}

// WasDelivered reports whether path was already delivered to sessionID.
// It never creates an entry.
func (c *Cache) WasDelivered(sessionID, path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	delivered, ok := c.sessions[sessionID]
	if !ok {
		return false
	}
	_, seen := delivered[path]
	return seen
}

// Terminate drops all state for sessionID. Safe for unknown sessions.
func (c *Cache) Terminate(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sessions[sessionID]; !ok {
		return
	}
	delete(c.sessions, sessionID)
	for i, id := range c.order {
		if id == sessionID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of tracked sessions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// getOrCreate returns sessionID's delivered set, creating it (and
// evicting the oldest session if the table is full) when absent.
// Caller must hold c.mu.
func (c *Cache) getOrCreate(sessionID string) map[string]struct{} {
	if delivered, ok := c.sessions[sessionID]; ok {
		return delivered
	}
	if len(c.sessions) >= c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.sessions, oldest)
	}
	delivered := make(map[string]struct{})
	c.sessions[sessionID] = delivered
	c.order = append(c.order, sessionID)
	return delivered
}
