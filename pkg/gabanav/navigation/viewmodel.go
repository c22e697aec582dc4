package navigation

import (
	"sort"
	"sync"
)

// Clearer is implemented by retained objects that hold resources to release
// when their store is cleared.
type Clearer interface {
	OnCleared()
}

// ViewModelStore retains objects for the lifetime of a back stack entry,
// including across a save and restore.
type ViewModelStore struct {
	mu     sync.Mutex
	values map[string]any
}

// NewViewModelStore creates an empty store.
func NewViewModelStore() *ViewModelStore {
	return &ViewModelStore{values: make(map[string]any)}
}

// Put stores v under key. A replaced value is cleared.
func (s *ViewModelStore) Put(key string, v any) {
	s.mu.Lock()
	old, existed := s.values[key]
	s.values[key] = v
	s.mu.Unlock()

	if c, ok := old.(Clearer); existed && ok {
		c.OnCleared()
	}
}

// Get returns the value stored under key.
func (s *ViewModelStore) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the stored keys in sorted order.
func (s *ViewModelStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear empties the store, calling OnCleared on every value that has it.
func (s *ViewModelStore) Clear() {
	s.mu.Lock()
	values := s.values
	s.values = make(map[string]any)
	s.mu.Unlock()

	for _, v := range values {
		if c, ok := v.(Clearer); ok {
			c.OnCleared()
		}
	}
}

// ViewModelStoreProvider hands out one store per back stack entry ID.
type ViewModelStoreProvider interface {
	ViewModelStore(entryID string) *ViewModelStore
}

// ViewModelStores is a map-backed ViewModelStoreProvider.
type ViewModelStores struct {
	mu     sync.Mutex
	stores map[string]*ViewModelStore
}

// NewViewModelStores creates an empty provider.
func NewViewModelStores() *ViewModelStores {
	return &ViewModelStores{stores: make(map[string]*ViewModelStore)}
}

// ViewModelStore returns the store for entryID, creating it on first use.
func (p *ViewModelStores) ViewModelStore(entryID string) *ViewModelStore {
	p.mu.Lock()
	defer p.mu.Unlock()
	store, ok := p.stores[entryID]
	if !ok {
		store = NewViewModelStore()
		p.stores[entryID] = store
	}
	return store
}

// Clear clears and forgets the store for entryID.
func (p *ViewModelStores) Clear(entryID string) {
	p.mu.Lock()
	store, ok := p.stores[entryID]
	delete(p.stores, entryID)
	p.mu.Unlock()

	if ok {
		store.Clear()
	}
}

// Len returns the number of live stores.
func (p *ViewModelStores) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.stores)
}
