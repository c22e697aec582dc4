// Package navtesting provides a navigation.State for testing a Navigator
// in isolation, without a navigation controller.
//
// TestNavigatorState keeps the lifecycle of every entry it holds in step
// with the back stack the way a controller would:
//
//   - the top entry is RESUMED, or STARTED while its transition runs
//   - an entry directly beneath a floating destination stays STARTED
//   - every other entry on the stack is CREATED
//   - popped entries are DESTROYED once their transition, if any, is done
//
// All lifecycle changes run on a mainloop.Loop, by default mainloop.Main,
// and every mutating call blocks until they have been applied.
package navtesting

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/internal"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/lifecycle"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/mainloop"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/navigation"
)

// Option configures a TestNavigatorState.
type Option func(*TestNavigatorState)

// WithLoop runs lifecycle work on l instead of mainloop.Main.
func WithLoop(l *mainloop.Loop) Option {
	return func(s *TestNavigatorState) {
		s.loop = l
	}
}

// WithHostState sets the state of the owner hosting every entry.
// The default is RESUMED.
func WithHostState(state lifecycle.State) Option {
	return func(s *TestNavigatorState) {
		s.hostState = state
	}
}

// WithLogger replaces the internal logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *TestNavigatorState) {
		s.logger = logger
	}
}

// TestNavigatorState is a navigation.State that manages entry lifecycles
// itself. Hand it to Navigator.OnAttach in tests.
type TestNavigatorState struct {
	*navigation.StateBase

	loop            *mainloop.Loop
	hostState       lifecycle.State
	host            *lifecycle.RegistryOwner
	viewModelStores *navigation.ViewModelStores
	logger          *slog.Logger

	// Only touched on loop.
	savedStates map[string]navigation.Bundle
}

var _ navigation.State = (*TestNavigatorState)(nil)

// New creates an empty TestNavigatorState.
func New(opts ...Option) *TestNavigatorState {
	s := &TestNavigatorState{
		StateBase:       navigation.NewStateBase(),
		hostState:       lifecycle.Resumed,
		viewModelStores: navigation.NewViewModelStores(),
		savedStates:     make(map[string]navigation.Bundle),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.loop == nil {
		s.loop = mainloop.Main()
	}
	if s.logger == nil {
		s.logger = internal.GetInternalLogger().With("component", "navtesting")
	}
	s.host = lifecycle.NewOwner(s.hostState)
	return s
}

// Host returns the owner that hosts every entry.
func (s *TestNavigatorState) Host() lifecycle.Owner {
	return s.host
}

// ViewModelStores returns the provider backing every entry's store.
func (s *TestNavigatorState) ViewModelStores() *navigation.ViewModelStores {
	return s.viewModelStores
}

// CreateBackStackEntry creates an entry for destination hosted by this state.
func (s *TestNavigatorState) CreateBackStackEntry(
	destination *navigation.Destination,
	arguments navigation.Bundle,
) *navigation.BackStackEntry {
	host := s.host.Lifecycle().CurrentState()
	return navigation.NewBackStackEntry(navigation.EntryConfig{
		Destination:     destination,
		Arguments:       arguments,
		HostState:       &host,
		ViewModelStores: s.viewModelStores,
	})
}

// RestoreBackStackEntry recreates an entry from the snapshot taken when it
// was popped with saveState set. The snapshot is consumed.
//
// It panics with a *navigation.StateError wrapping navigation.ErrNoSavedState
// if previouslySaved was never popped with Pop(previouslySaved, true), or was
// already restored.
func (s *TestNavigatorState) RestoreBackStackEntry(previouslySaved *navigation.BackStackEntry) *navigation.BackStackEntry {
	id := previouslySaved.ID()

	var (
		snapshot navigation.Bundle
		ok       bool
	)
	s.loop.Do(func() {
		snapshot, ok = s.savedStates[id]
		delete(s.savedStates, id)
	})
	if !ok {
		panic(navigation.NewStateError("restore", id, fmt.Errorf(
			"%w: RestoreBackStackEntry must be passed an entry that was previously popped with Pop(entry, true)",
			navigation.ErrNoSavedState)))
	}

	host := s.host.Lifecycle().CurrentState()
	return navigation.NewBackStackEntry(navigation.EntryConfig{
		Destination:     previouslySaved.Destination(),
		Arguments:       previouslySaved.Arguments(),
		HostState:       &host,
		ViewModelStores: s.viewModelStores,
		ID:              id,
		SavedState:      snapshot,
	})
}

// HasSavedState reports whether a snapshot is waiting to be restored for entryID.
func (s *TestNavigatorState) HasSavedState(entryID string) bool {
	var ok bool
	s.loop.Do(func() {
		_, ok = s.savedStates[entryID]
	})
	return ok
}

// Push adds entry to the top of the stack and resumes it.
func (s *TestNavigatorState) Push(entry *navigation.BackStackEntry) {
	s.StateBase.Push(entry)
	s.updateMaxLifecycle(nil, false)
}

// PushWithTransition pushes entry but holds it at STARTED until the
// returned function is called.
func (s *TestNavigatorState) PushWithTransition(entry *navigation.BackStackEntry) navigation.TransitionComplete {
	inner := s.StateBase.PushWithTransition(entry)
	onComplete := navigation.Once(func() {
		inner()
		s.updateMaxLifecycle(nil, false)
	})
	s.AddInProgressTransition(entry, onComplete)
	s.updateMaxLifecycle(nil, false)
	return onComplete
}

// Pop removes popUpTo and everything above it. With saveState each removed
// entry is snapshotted for RestoreBackStackEntry.
func (s *TestNavigatorState) Pop(popUpTo *navigation.BackStackEntry, saveState bool) {
	stack, i := s.indexOf("pop", popUpTo)
	popped := stack[i:]
	s.StateBase.Pop(popUpTo, saveState)
	s.updateMaxLifecycle(popped, saveState)
}

// PopWithTransition pops popUpTo, keeping it at CREATED until the returned
// function is called. The entry that becomes the top stays STARTED until
// its own transition is completed with CompleteTransition.
func (s *TestNavigatorState) PopWithTransition(
	popUpTo *navigation.BackStackEntry,
	saveState bool,
) navigation.TransitionComplete {
	stack, i := s.indexOf("pop with transition", popUpTo)
	popped := stack[i:]

	// Pick the incoming entry before popping, otherwise it would go
	// straight to RESUMED.
	if i > 0 {
		incoming := stack[i-1]
		s.AddInProgressTransition(incoming, navigation.Once(func() {
			s.RemoveInProgressTransition(incoming)
			s.updateMaxLifecycle(nil, false)
		}))
	}

	s.AddInProgressTransition(popUpTo, func() {})
	inner := s.StateBase.PopWithTransition(popUpTo, saveState)
	s.updateMaxLifecycle(popped, saveState)

	onComplete := navigation.Once(func() {
		inner()
		s.updateMaxLifecycle([]*navigation.BackStackEntry{popUpTo}, false)
	})
	s.AddInProgressTransition(popUpTo, onComplete)
	s.updateMaxLifecycle(nil, false)
	return onComplete
}

// SetHostState moves the host, and with it every entry on the stack.
func (s *TestNavigatorState) SetHostState(state lifecycle.State) {
	s.loop.Do(func() {
		if err := s.host.Lifecycle().SetCurrentState(state); err != nil {
			s.logger.Warn("host lifecycle change rejected", "state", state, "error", err)
			return
		}
		for _, entry := range s.BackStack() {
			if err := entry.SetHostLifecycleState(state); err != nil {
				s.logger.Warn("entry lifecycle change rejected", "entry", entry.ID(), "state", state, "error", err)
			}
		}
	})
}

func (s *TestNavigatorState) indexOf(op string, entry *navigation.BackStackEntry) ([]*navigation.BackStackEntry, int) {
	stack := s.BackStack()
	i := slices.Index(stack, entry)
	if i < 0 {
		panic(navigation.NewStateError(op, entry.ID(), navigation.ErrNotOnBackStack))
	}
	return stack, i
}

// updateMaxLifecycle recomputes the max lifecycle of every popped entry and
// every entry still on the stack.
func (s *TestNavigatorState) updateMaxLifecycle(popped []*navigation.BackStackEntry, saveState bool) {
	// Entry lifecycles must only change on the UI loop, whichever goroutine
	// the navigator called from.
	s.loop.Do(func() {
		for i := len(popped) - 1; i >= 0; i-- {
			entry := popped[i]
			if saveState {
				s.setMaxLifecycle(entry, lifecycle.Created)
				snapshot := navigation.Bundle{}
				entry.SaveState(snapshot)
				s.savedStates[entry.ID()] = snapshot
			}

			if s.IsTransitioning(entry) {
				s.setMaxLifecycle(entry, lifecycle.Created)
				continue
			}
			s.setMaxLifecycle(entry, lifecycle.Destroyed)
			if _, saved := s.savedStates[entry.ID()]; !saved {
				s.viewModelStores.Clear(entry.ID())
			}
		}

		stack := s.BackStack()
		var previous *navigation.BackStackEntry
		for i := len(stack) - 1; i >= 0; i-- {
			entry := stack[i]
			var ceiling lifecycle.State
			switch {
			case previous == nil:
				ceiling = lifecycle.Resumed
				if s.IsTransitioning(entry) {
					ceiling = lifecycle.Started
				}
			case previous.Destination().IsFloatingWindow():
				// A floating window does not hide what is beneath it.
				ceiling = lifecycle.Started
			default:
				ceiling = lifecycle.Created
			}
			s.setMaxLifecycle(entry, ceiling)
			previous = entry
		}
	})
}

func (s *TestNavigatorState) setMaxLifecycle(entry *navigation.BackStackEntry, state lifecycle.State) {
	before := entry.MaxLifecycle()
	if err := entry.SetMaxLifecycle(state); err != nil {
		s.logger.Warn("entry lifecycle change rejected", "entry", entry.ID(), "max", state, "error", err)
		return
	}
	if before == state {
		return
	}
	s.logger.Debug("max lifecycle updated",
		"entry", entry.ID(),
		"destination", entry.Destination().String(),
		"max", state.String(),
		"current", entry.Lifecycle().CurrentState().String())
}
