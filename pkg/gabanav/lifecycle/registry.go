package lifecycle

import (
	"errors"
	"sync"
)

// ErrDestroyed is returned when a destroyed registry is asked to move again.
var ErrDestroyed = errors.New("lifecycle: registry already destroyed")

// Observer receives every event a registry dispatches.
type Observer interface {
	OnStateChanged(event Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(event Event)

func (f ObserverFunc) OnStateChanged(event Event) { f(event) }

// Owner is anything that exposes a lifecycle.
type Owner interface {
	Lifecycle() *Registry
}

type observerEntry struct {
	id       int
	observer Observer
}

// Registry tracks a current state and walks observers through every
// intermediate event when the state changes.
//
// Registry is not meant to be driven from several goroutines at once;
// callers serialize writes (navigation does this on the main loop).
// CurrentState is safe to call from anywhere.
type Registry struct {
	mu        sync.RWMutex
	state     State
	observers []observerEntry
	nextID    int
}

// NewRegistry creates a registry in the Initialized state.
func NewRegistry() *Registry {
	return &Registry{state: Initialized}
}

// CurrentState returns the state the registry is in.
func (r *Registry) CurrentState() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// AddObserver registers an observer and returns a function that removes it.
// Observers added late are not replayed the events they missed.
func (r *Registry) AddObserver(o Observer) (remove func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.observers = append(r.observers, observerEntry{id: id, observer: o})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, e := range r.observers {
			if e.id == id {
				r.observers = append(r.observers[:i], r.observers[i+1:]...)
				return
			}
		}
	}
}

// SetCurrentState moves the registry to target one step at a time.
// A registry that reached Destroyed stays there.
func (r *Registry) SetCurrentState(target State) error {
	for {
		r.mu.Lock()
		current := r.state
		if current == target {
			r.mu.Unlock()
			return nil
		}
		if current == Destroyed {
			r.mu.Unlock()
			return ErrDestroyed
		}

		var (
			event Event
			ok    bool
		)
		if target > current {
			event, ok = upFrom(current)
		} else {
			event, ok = downFrom(current)
		}
		if !ok {
			// Initialized -> Destroyed never reached Created, so there is
			// nothing to tell observers.
			r.state = target
			r.mu.Unlock()
			return nil
		}

		r.state = event.TargetState()
		observers := make([]observerEntry, len(r.observers))
		copy(observers, r.observers)
		if r.state == Destroyed {
			r.observers = nil
		}
		r.mu.Unlock()

		for _, e := range observers {
			e.observer.OnStateChanged(event)
		}
	}
}

// RegistryOwner is a standalone Owner whose state is set directly.
type RegistryOwner struct {
	registry *Registry
}

// NewOwner creates an Owner already moved to initial.
func NewOwner(initial State) *RegistryOwner {
	o := &RegistryOwner{registry: NewRegistry()}
	_ = o.registry.SetCurrentState(initial)
	return o
}

func (o *RegistryOwner) Lifecycle() *Registry {
	return o.registry
}
