package store

import (
	"sync"

	"github.com/lonelyhost/panel/internal/domain"
)

// Collection is an in-memory set of entities of one kind, keyed by id.
// A single RWMutex serializes mutations per collection, which is what keeps
// the "exactly one mutation per action" guarantee under parallel requests.
// Insertion order is preserved for dashboard rendering.
type Collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	keyOf func(T) string
}

// NewCollection creates an empty collection using keyOf to extract entity ids.
func NewCollection[T any](keyOf func(T) string) *Collection[T] {
	return &Collection[T]{
		items: make(map[string]T),
		keyOf: keyOf,
	}
}

// Get returns a copy of the entity with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	return v, ok
}

// List returns copies of all entities in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Upsert inserts or replaces the entity under its id.
func (c *Collection[T]) Upsert(v T) {
	id := c.keyOf(v)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = v
}

// Update applies fn to the stored entity under the collection lock.
// Returns false without calling fn when the id does not exist, so a failed
// lookup can never leave a partial mutation behind.
func (c *Collection[T]) Update(id string, fn func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[id]
	if !ok {
		return false
	}
	fn(&v)
	c.items[id] = v
	return true
}

// Append builds and inserts a new entity in one critical section. build
// receives the current entity count, so ids derived from it cannot collide
// even when appends race.
func (c *Collection[T]) Append(build func(n int) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := build(len(c.items))
	id := c.keyOf(v)
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = v
	return v
}

// Len returns the number of entities in the collection.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Store holds the authoritative in-memory state for all entity kinds.
// Lifetime equals process lifetime; nothing is persisted.
type Store struct {
	Servers   *Collection[domain.Server]
	Players   *Collection[domain.Player]
	Users     *Collection[domain.User]
	Addons    *Collection[domain.Addon]
	Themes    *Collection[domain.Theme]
	Backups   *Collection[domain.Backup]
	Databases *Collection[domain.Database]
	Tasks     *Collection[domain.Task]
	Logs      *Collection[domain.LogLine]

	nameMu    sync.RWMutex
	panelName string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		Servers:   NewCollection(func(s domain.Server) string { return s.ID }),
		Players:   NewCollection(func(p domain.Player) string { return p.ID }),
		Users:     NewCollection(func(u domain.User) string { return u.ID }),
		Addons:    NewCollection(func(a domain.Addon) string { return a.ID }),
		Themes:    NewCollection(func(t domain.Theme) string { return t.ID }),
		Backups:   NewCollection(func(b domain.Backup) string { return b.ID }),
		Databases: NewCollection(func(d domain.Database) string { return d.ID }),
		Tasks:     NewCollection(func(t domain.Task) string { return t.ID }),
		Logs:      NewCollection(func(l domain.LogLine) string { return l.ID }),
		panelName: "Lonely",
	}
}

// PanelName returns the display name shown by the dashboard.
func (s *Store) PanelName() string {
	s.nameMu.RLock()
	defer s.nameMu.RUnlock()
	return s.panelName
}

// SetPanelName renames the panel.
func (s *Store) SetPanelName(name string) {
	s.nameMu.Lock()
	defer s.nameMu.Unlock()
	s.panelName = name
}
