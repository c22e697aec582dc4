package navigation

// NavOptions tweaks how a navigator adds entries.
type NavOptions struct {
	Animated bool // Push with a UI transition that must be completed
}

// Navigator is a plugin that knows how to show one kind of destination.
// It is attached to a State and records every entry it shows or hides
// there.
type Navigator interface {
	Name() string
	OnAttach(state State)
	Navigate(entries []*BackStackEntry, options *NavOptions)
	PopBackStack(popUpTo *BackStackEntry, saveState bool)
}
