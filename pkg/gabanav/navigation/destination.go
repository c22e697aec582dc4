package navigation

import "fmt"

// Destination describes one place a navigator can take the user.
type Destination struct {
	ID        int    // Numeric identifier, unique within a graph
	Route     string // Route string, unique within a graph
	Label     string // Human readable label or message ID
	Navigator string // Name of the navigator that handles this destination
	Floating  bool   // Renders as an overlay that does not hide what is beneath it
	Defaults  Bundle // Default arguments
}

// IsFloatingWindow reports whether the destination is drawn as an overlay,
// leaving the destination beneath it visible.
func (d *Destination) IsFloatingWindow() bool {
	return d != nil && d.Floating
}

func (d *Destination) String() string {
	if d == nil {
		return "Destination(nil)"
	}
	if d.Route != "" {
		return fmt.Sprintf("Destination(%d, %s)", d.ID, d.Route)
	}
	return fmt.Sprintf("Destination(%d)", d.ID)
}
