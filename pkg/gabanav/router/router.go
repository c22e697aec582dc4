package router

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/internal"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/navigation"
	"go.uber.org/atomic"
)

// Screen is a type-safe identifier for screens.
// Applications should define their own Screen constants using iota.
//
// Example:
//
//	const (
//	    ScreenMain Screen = iota
//	    ScreenSettings
//	    ScreenDetail
//	)
type Screen int

// ScreenFunc is a function that runs a screen.
// It takes the input the screen was navigated to with and, when the user
// comes back to it, the resume state its last result carried.
// The input and result types are screen-specific.
type ScreenFunc func(input any, resume any) (result any, err error)

// TransitionFunc is called after each screen completes to determine the next screen.
// It receives the screen that just completed, its result, and the navigation stack.
// It returns the next screen to navigate to and its input.
//
// Return (screen, input) to navigate to a new screen.
// Return (ScreenBack, nil) to go back to the previous screen.
// Return (ScreenExit, nil) to exit the router.
type TransitionFunc func(from Screen, result any, stack *Stack) (next Screen, input any)

// Resumer is implemented by results that carry state (scroll position,
// selection) to hand back to the screen when the user returns to it.
type Resumer interface {
	ResumeState() any
}

const (
	// ScreenExit is a special Screen value that signals the router to exit.
	ScreenExit Screen = -1
	// ScreenBack is a special Screen value that pops the current screen.
	ScreenBack Screen = -2
)

// Name is the navigator name the router registers its destinations under.
const Name = "screen"

const inputKey = "router.input"

// ErrNotAttached is returned by Run before OnAttach was called.
var ErrNotAttached = errors.New("router: not attached to a navigator state")

type registration struct {
	fn          ScreenFunc
	destination *navigation.Destination
}

// Router manages screen navigation with explicit data flow.
// Screens are registered with their functions, and a single transition
// function handles all routing logic in one place.
//
// Router is a navigation.Navigator: every screen it shows is an entry on
// the navigator state it is attached to, which drives that entry's
// lifecycle.
type Router struct {
	screens    map[Screen]registration
	transition TransitionFunc
	animated   bool
	stack      *Stack
	logger     *slog.Logger
	visits     atomic.Int64

	mu          sync.Mutex
	state       navigation.State
	resumes     map[string]any
	animatedIDs map[string]bool
	pendingPops []navigation.TransitionComplete
}

var _ navigation.Navigator = (*Router)(nil)

// New creates a new Router.
func New() *Router {
	r := &Router{
		screens:     make(map[Screen]registration),
		resumes:     make(map[string]any),
		animatedIDs: make(map[string]bool),
		logger:  internal.GetInternalLogger().With("navigator", Name),
	}
	r.stack = &Stack{router: r}
	return r
}

// Register adds a screen to the router.
// The screen function will be called when navigating to this screen.
func (r *Router) Register(screen Screen, fn ScreenFunc) *Router {
	return r.RegisterDestination(screen, &navigation.Destination{
		ID:    int(screen),
		Route: fmt.Sprintf("screen/%d", screen),
	}, fn)
}

// RegisterDialog adds a screen that is drawn over the previous one.
// The screen beneath a dialog stays started while the dialog is shown.
func (r *Router) RegisterDialog(screen Screen, fn ScreenFunc) *Router {
	return r.RegisterDestination(screen, &navigation.Destination{
		ID:       int(screen),
		Route:    fmt.Sprintf("dialog/%d", screen),
		Floating: true,
	}, fn)
}

// RegisterDestination adds a screen backed by an existing destination, for
// example one loaded from a navgraph. The destination's ID is set to screen.
func (r *Router) RegisterDestination(screen Screen, destination *navigation.Destination, fn ScreenFunc) *Router {
	dest := *destination
	dest.ID = int(screen)
	dest.Navigator = Name
	r.screens[screen] = registration{fn: fn, destination: &dest}
	return r
}

// OnTransition sets the transition function that determines navigation flow.
// This function is called after each screen completes.
func (r *Router) OnTransition(fn TransitionFunc) *Router {
	r.transition = fn
	return r
}

// Animated makes the router push and pop with UI transitions. Each
// transition completes when the screen it reveals starts running.
func (r *Router) Animated(animated bool) *Router {
	r.animated = animated
	return r
}

// Destination returns the destination registered for screen.
func (r *Router) Destination(screen Screen) (*navigation.Destination, bool) {
	reg, ok := r.screens[screen]
	return reg.destination, ok
}

// Name implements navigation.Navigator.
func (r *Router) Name() string {
	return Name
}

// OnAttach implements navigation.Navigator.
func (r *Router) OnAttach(state navigation.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
}

func (r *Router) attached() navigation.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Navigate implements navigation.Navigator. Entries pushed with an
// animated transition are popped with one as well.
func (r *Router) Navigate(entries []*navigation.BackStackEntry, options *navigation.NavOptions) {
	state := r.attached()
	animated := r.animated || (options != nil && options.Animated)
	for _, entry := range entries {
		if animated {
			r.mu.Lock()
			r.animatedIDs[entry.ID()] = true
			r.mu.Unlock()
			state.PushWithTransition(entry)
		} else {
			state.Push(entry)
		}
	}
}

// PopBackStack implements navigation.Navigator.
func (r *Router) PopBackStack(popUpTo *navigation.BackStackEntry, saveState bool) {
	state := r.attached()

	r.mu.Lock()
	animated := r.animated || r.animatedIDs[popUpTo.ID()]
	for _, e := range popped(state.BackStack(), popUpTo) {
		delete(r.resumes, e.ID())
		delete(r.animatedIDs, e.ID())
	}
	r.mu.Unlock()

	if !animated {
		state.Pop(popUpTo, saveState)
		return
	}
	done := state.PopWithTransition(popUpTo, saveState)
	r.mu.Lock()
	r.pendingPops = append(r.pendingPops, done)
	r.mu.Unlock()
}

func popped(stack []*navigation.BackStackEntry, popUpTo *navigation.BackStackEntry) []*navigation.BackStackEntry {
	for i, e := range stack {
		if e == popUpTo {
			return stack[i:]
		}
	}
	return nil
}

// Run starts the router at the given screen with the given input.
// It continues running until the transition function returns ScreenExit,
// the last screen is popped, or an error occurs.
func (r *Router) Run(start Screen, input any) error {
	if r.transition == nil {
		return fmt.Errorf("router: no transition function set")
	}
	state := r.attached()
	if state == nil {
		return ErrNotAttached
	}

	if err := r.navigateTo(state, start, input); err != nil {
		return err
	}

	for {
		stack := state.BackStack()
		if len(stack) == 0 {
			return nil
		}
		entry := stack[len(stack)-1]
		current := Screen(entry.Destination().ID)

		reg, ok := r.screens[current]
		if !ok {
			return fmt.Errorf("router: screen %d not registered", current)
		}

		// The screen is about to be shown, so whatever transition led here is over.
		r.finishTransitions(state, entry)

		r.mu.Lock()
		resume := r.resumes[entry.ID()]
		r.mu.Unlock()

		r.visits.Inc()
		result, err := reg.fn(entry.Arguments()[inputKey], resume)
		if err != nil {
			return fmt.Errorf("router: screen %d error: %w", current, err)
		}

		if res, ok := result.(Resumer); ok {
			r.mu.Lock()
			r.resumes[entry.ID()] = res.ResumeState()
			r.mu.Unlock()
		}

		next, nextInput := r.transition(current, result, r.stack)

		switch next {
		case ScreenExit:
			return nil
		case ScreenBack:
			r.PopBackStack(entry, false)
		default:
			if err := r.navigateTo(state, next, nextInput); err != nil {
				return err
			}
		}
	}
}

func (r *Router) navigateTo(state navigation.State, screen Screen, input any) error {
	reg, ok := r.screens[screen]
	if !ok {
		return fmt.Errorf("router: screen %d not registered: %w", screen, navigation.ErrUnknownDestination)
	}
	entry := state.CreateBackStackEntry(reg.destination, navigation.Bundle{inputKey: input})
	r.logger.Debug("navigating", "screen", int(screen), "entry", entry.ID())
	r.Navigate([]*navigation.BackStackEntry{entry}, nil)
	return nil
}

func (r *Router) finishTransitions(state navigation.State, entry *navigation.BackStackEntry) {
	r.mu.Lock()
	pops := r.pendingPops
	r.pendingPops = nil
	r.mu.Unlock()

	for _, done := range pops {
		done()
	}
	state.CompleteTransition(entry)
}

// Visits returns how many times a screen function has been run.
func (r *Router) Visits() int64 {
	return r.visits.Load()
}

// Stack returns the navigation stack for use in transition functions.
func (r *Router) Stack() *Stack {
	return r.stack
}
