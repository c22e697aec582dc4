package router

import "github.com/BrandonKowalski/gabanav/pkg/gabanav/navigation"

// StackEntry represents a single entry in the navigation stack.
// It stores the screen identifier, the input that was used to call the screen,
// any resume state returned by the screen, and the back stack entry behind it.
type StackEntry struct {
	Screen Screen
	Input  any
	Resume any
	Entry  *navigation.BackStackEntry
}

// Stack is a read-only view of the router's navigation history, top last.
// The navigator state it is attached to owns the entries; transition
// functions use Stack to decide where to go next.
type Stack struct {
	router *Router
}

func (s *Stack) backStack() []*navigation.BackStackEntry {
	state := s.router.attached()
	if state == nil {
		return nil
	}
	return state.BackStack()
}

func (s *Stack) entry(e *navigation.BackStackEntry) StackEntry {
	s.router.mu.Lock()
	resume := s.router.resumes[e.ID()]
	s.router.mu.Unlock()

	return StackEntry{
		Screen: Screen(e.Destination().ID),
		Input:  e.Arguments()[inputKey],
		Resume: resume,
		Entry:  e,
	}
}

// Entries returns every entry, bottom first.
func (s *Stack) Entries() []StackEntry {
	stack := s.backStack()
	out := make([]StackEntry, len(stack))
	for i, e := range stack {
		out[i] = s.entry(e)
	}
	return out
}

// Peek returns the top entry, the screen currently shown.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *StackEntry {
	stack := s.backStack()
	if len(stack) == 0 {
		return nil
	}
	entry := s.entry(stack[len(stack)-1])
	return &entry
}

// Previous returns the entry a ScreenBack would return to.
// Returns nil if there is none.
func (s *Stack) Previous() *StackEntry {
	stack := s.backStack()
	if len(stack) < 2 {
		return nil
	}
	entry := s.entry(stack[len(stack)-2])
	return &entry
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.backStack())
}
