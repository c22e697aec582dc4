// Package navgraph loads navigation graphs from TOML.
//
// A graph names its start destination and lists every destination:
//
//	start = "games"
//
//	[[destination]]
//	id = 1
//	route = "games"
//	label = "screen.games"
//	navigator = "screen"
//
//	[[destination]]
//	id = 2
//	route = "confirm"
//	label = "dialog.confirm"
//	floating = true
//
//	[destination.defaults]
//	answer = "no"
//
// Labels are message IDs, localized with Labels.
package navgraph

import (
	"errors"
	"fmt"
	"os"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/navigation"
	"github.com/BurntSushi/toml"
)

// ErrInvalidGraph is returned for graphs that parse but cannot be navigated.
var ErrInvalidGraph = errors.New("navgraph: invalid graph")

type graphFile struct {
	Start        string            `toml:"start"`
	Destinations []destinationFile `toml:"destination"`
}

type destinationFile struct {
	ID        int            `toml:"id"`
	Route     string         `toml:"route"`
	Label     string         `toml:"label"`
	Navigator string         `toml:"navigator"`
	Floating  bool           `toml:"floating"`
	Defaults  map[string]any `toml:"defaults"`
}

// Graph is an immutable set of destinations with a start destination.
type Graph struct {
	start        *navigation.Destination
	destinations []*navigation.Destination
	byID         map[int]*navigation.Destination
	byRoute      map[string]*navigation.Destination
}

// Load reads and parses the graph at path.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("navgraph: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a TOML graph.
func Parse(data []byte) (*Graph, error) {
	var file graphFile
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, fmt.Errorf("navgraph: decoding graph: %w", err)
	}
	for _, key := range md.Undecoded() {
		// Nested tables in defaults decode into maps, which toml still
		// reports key by key.
		if len(key) > 2 && key[0] == "destination" && key[1] == "defaults" {
			continue
		}
		return nil, fmt.Errorf("%w: unknown key %s", ErrInvalidGraph, key)
	}

	g := &Graph{
		byID:    make(map[int]*navigation.Destination, len(file.Destinations)),
		byRoute: make(map[string]*navigation.Destination, len(file.Destinations)),
	}
	for _, d := range file.Destinations {
		if d.Route == "" {
			return nil, fmt.Errorf("%w: destination %d has no route", ErrInvalidGraph, d.ID)
		}
		if _, dup := g.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate destination id %d", ErrInvalidGraph, d.ID)
		}
		if _, dup := g.byRoute[d.Route]; dup {
			return nil, fmt.Errorf("%w: duplicate route %q", ErrInvalidGraph, d.Route)
		}

		dest := &navigation.Destination{
			ID:        d.ID,
			Route:     d.Route,
			Label:     d.Label,
			Navigator: d.Navigator,
			Floating:  d.Floating,
			Defaults:  toBundle(d.Defaults),
		}
		g.destinations = append(g.destinations, dest)
		g.byID[dest.ID] = dest
		g.byRoute[dest.Route] = dest
	}

	if file.Start == "" {
		return nil, fmt.Errorf("%w: no start destination", ErrInvalidGraph)
	}
	start, ok := g.byRoute[file.Start]
	if !ok {
		return nil, fmt.Errorf("%w: start %q: %w", ErrInvalidGraph, file.Start, navigation.ErrUnknownDestination)
	}
	g.start = start

	return g, nil
}

// toBundle converts decoded TOML tables to bundles and integers to int.
func toBundle(m map[string]any) navigation.Bundle {
	if m == nil {
		return nil
	}
	b := make(navigation.Bundle, len(m))
	for k, v := range m {
		switch v := v.(type) {
		case map[string]any:
			b[k] = toBundle(v)
		case int64:
			b[k] = int(v)
		default:
			b[k] = v
		}
	}
	return b
}

func (g *Graph) Start() *navigation.Destination {
	return g.start
}

// Destinations returns every destination in the order they were declared.
func (g *Graph) Destinations() []*navigation.Destination {
	out := make([]*navigation.Destination, len(g.destinations))
	copy(out, g.destinations)
	return out
}

// Find returns the destination for route.
func (g *Graph) Find(route string) (*navigation.Destination, error) {
	d, ok := g.byRoute[route]
	if !ok {
		return nil, fmt.Errorf("navgraph: route %q: %w", route, navigation.ErrUnknownDestination)
	}
	return d, nil
}

// FindByID returns the destination with id.
func (g *Graph) FindByID(id int) (*navigation.Destination, error) {
	d, ok := g.byID[id]
	if !ok {
		return nil, fmt.Errorf("navgraph: id %d: %w", id, navigation.ErrUnknownDestination)
	}
	return d, nil
}
