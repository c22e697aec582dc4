package navigation

import (
	"sort"
	"sync"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/lifecycle"
	"github.com/google/uuid"
)

// EntryConfig describes a back stack entry to create.
type EntryConfig struct {
	Destination     *Destination
	Arguments       Bundle
	HostState       *lifecycle.State       // State of whatever hosts the entries; nil means Resumed
	ViewModelStores ViewModelStoreProvider // Optional
	ID              string                 // Reused when restoring; a new UUID otherwise
	SavedState      Bundle                 // Snapshot to restore from, produced by SaveState
}

// BackStackEntry is one instance of a destination on a back stack.
//
// Its lifecycle follows the lower of the host's state and the entry's own
// max lifecycle. Lifecycle changes are expected to come from a single
// goroutine; navigator states use a main loop for that.
type BackStackEntry struct {
	id          string
	destination *Destination
	arguments   Bundle
	vmProvider  ViewModelStoreProvider
	registry    *lifecycle.Registry

	mu            sync.Mutex
	hostState     lifecycle.State
	maxLifecycle  lifecycle.State
	savedState    Bundle
	attached      bool
	restoredState Bundle
	providers     map[string]func() Bundle
}

// NewBackStackEntry creates an entry in the Initialized state with a
// Resumed max lifecycle.
func NewBackStackEntry(cfg EntryConfig) *BackStackEntry {
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	host := lifecycle.Resumed
	if cfg.HostState != nil {
		host = *cfg.HostState
	}

	return &BackStackEntry{
		id:           id,
		destination:  cfg.Destination,
		arguments:    cfg.Arguments.Clone(),
		vmProvider:   cfg.ViewModelStores,
		registry:     lifecycle.NewRegistry(),
		hostState:    host,
		maxLifecycle: lifecycle.Resumed,
		savedState:   cfg.SavedState.Clone(),
		providers:    make(map[string]func() Bundle),
	}
}

func (e *BackStackEntry) ID() string {
	return e.id
}

func (e *BackStackEntry) Destination() *Destination {
	return e.destination
}

// Arguments returns a copy of the arguments the entry was created with.
func (e *BackStackEntry) Arguments() Bundle {
	return e.arguments.Clone()
}

// Lifecycle returns the entry's own lifecycle registry.
func (e *BackStackEntry) Lifecycle() *lifecycle.Registry {
	return e.registry
}

func (e *BackStackEntry) MaxLifecycle() lifecycle.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maxLifecycle
}

// SetMaxLifecycle caps the entry's lifecycle and moves it accordingly.
// A destroyed entry keeps its last ceiling and returns lifecycle.ErrDestroyed.
func (e *BackStackEntry) SetMaxLifecycle(state lifecycle.State) error {
	if e.registry.CurrentState() == lifecycle.Destroyed {
		return lifecycle.ErrDestroyed
	}
	e.mu.Lock()
	e.maxLifecycle = state
	e.mu.Unlock()
	return e.updateState()
}

// SetHostLifecycleState records a change in the host's state.
func (e *BackStackEntry) SetHostLifecycleState(state lifecycle.State) error {
	e.mu.Lock()
	e.hostState = state
	e.mu.Unlock()
	return e.updateState()
}

func (e *BackStackEntry) updateState() error {
	e.mu.Lock()
	if !e.attached {
		e.attached = true
		e.restoredState = e.savedState
		e.savedState = nil
	}
	target := lifecycle.Min(e.hostState, e.maxLifecycle)
	e.mu.Unlock()

	return e.registry.SetCurrentState(target)
}

// ViewModelStore returns the store retained for this entry. It is nil when
// the entry was created without a provider.
func (e *BackStackEntry) ViewModelStore() *ViewModelStore {
	if e.vmProvider == nil {
		return nil
	}
	return e.vmProvider.ViewModelStore(e.id)
}

// RegisterSavedStateProvider registers fn to contribute to SaveState under key.
func (e *BackStackEntry) RegisterSavedStateProvider(key string, fn func() Bundle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.providers[key] = fn
}

// UnregisterSavedStateProvider removes the provider registered under key.
func (e *BackStackEntry) UnregisterSavedStateProvider(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.providers, key)
}

// ConsumeRestoredState returns the state restored for key and forgets it.
// It returns nil when nothing was restored for key or the entry has not
// been moved past Initialized yet.
func (e *BackStackEntry) ConsumeRestoredState(key string) Bundle {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.restoredState.GetBundle(key)
	if !ok {
		return nil
	}
	delete(e.restoredState, key)
	return b
}

// SaveState writes the entry's state into out: every registered provider's
// output plus restored state nobody consumed yet.
func (e *BackStackEntry) SaveState(out Bundle) {
	e.mu.Lock()
	pending := e.restoredState.Clone()
	if !e.attached {
		pending = e.savedState.Clone()
	}
	keys := make([]string, 0, len(e.providers))
	for k := range e.providers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fns := make([]func() Bundle, len(keys))
	for i, k := range keys {
		fns[i] = e.providers[k]
	}
	e.mu.Unlock()

	out.Merge(pending)
	for i, k := range keys {
		out[k] = fns[i]()
	}
}

func (e *BackStackEntry) String() string {
	return e.destination.String() + "#" + e.id
}
