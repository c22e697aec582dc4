package navigation

import (
	"slices"
	"sync"
)

// TransitionComplete is called once the UI transition started for an entry
// has finished.
type TransitionComplete func()

// Once wraps fn so that only the first call runs it.
func Once(fn TransitionComplete) TransitionComplete {
	var once sync.Once
	return func() {
		once.Do(fn)
	}
}

// State is what a Navigator uses to add and remove entries. A navigation
// controller provides one per navigator; navtesting provides one for tests.
type State interface {
	CreateBackStackEntry(destination *Destination, arguments Bundle) *BackStackEntry
	BackStack() []*BackStackEntry
	Push(entry *BackStackEntry)
	PushWithTransition(entry *BackStackEntry) TransitionComplete
	Pop(popUpTo *BackStackEntry, saveState bool)
	PopWithTransition(popUpTo *BackStackEntry, saveState bool) TransitionComplete
	CompleteTransition(entry *BackStackEntry) bool
}

// StateBase holds the back stack and the set of entries with a UI
// transition in flight. It does no lifecycle work; embed it and layer that
// on top.
type StateBase struct {
	mu          sync.Mutex
	backStack   []*BackStackEntry
	transitions map[*BackStackEntry]TransitionComplete
}

// NewStateBase creates an empty state.
func NewStateBase() *StateBase {
	return &StateBase{
		transitions: make(map[*BackStackEntry]TransitionComplete),
	}
}

// BackStack returns a snapshot of the stack, bottom first.
func (b *StateBase) BackStack() []*BackStackEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.backStack)
}

// TransitionsInProgress returns the entries with an unfinished transition.
func (b *StateBase) TransitionsInProgress() []*BackStackEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*BackStackEntry, 0, len(b.transitions))
	for e := range b.transitions {
		out = append(out, e)
	}
	return out
}

// IsTransitioning reports whether entry has an unfinished transition.
func (b *StateBase) IsTransitioning(entry *BackStackEntry) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.transitions[entry]
	return ok
}

// Push adds entry to the top of the stack.
func (b *StateBase) Push(entry *BackStackEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.backStack = append(b.backStack, entry)
}

// PushWithTransition pushes entry. The returned function ends its transition.
func (b *StateBase) PushWithTransition(entry *BackStackEntry) TransitionComplete {
	b.Push(entry)
	return func() {
		b.RemoveInProgressTransition(entry)
	}
}

// Pop removes popUpTo and everything above it. The stack is unchanged if
// popUpTo is not on it.
func (b *StateBase) Pop(popUpTo *BackStackEntry, saveState bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := slices.Index(b.backStack, popUpTo); i >= 0 {
		clear(b.backStack[i:])
		b.backStack = b.backStack[:i]
	}
}

// PopWithTransition pops popUpTo. The returned function ends its transition.
func (b *StateBase) PopWithTransition(popUpTo *BackStackEntry, saveState bool) TransitionComplete {
	b.Pop(popUpTo, saveState)
	return func() {
		b.RemoveInProgressTransition(popUpTo)
	}
}

// AddInProgressTransition marks entry as transitioning; onComplete replaces
// any earlier callback for it.
func (b *StateBase) AddInProgressTransition(entry *BackStackEntry, onComplete TransitionComplete) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transitions[entry] = onComplete
}

// RemoveInProgressTransition forgets entry's transition without calling it.
func (b *StateBase) RemoveInProgressTransition(entry *BackStackEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.transitions, entry)
}

// CompleteTransition calls the completion registered for entry. It returns
// false when entry has no transition in progress.
func (b *StateBase) CompleteTransition(entry *BackStackEntry) bool {
	b.mu.Lock()
	onComplete, ok := b.transitions[entry]
	b.mu.Unlock()

	if !ok {
		return false
	}
	if onComplete != nil {
		onComplete()
	}
	return true
}
