package navgraph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/navgraph"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gamesGraph = `
start = "games"

[[destination]]
id = 1
route = "games"
label = "screen.games"
navigator = "screen"

[destination.defaults]
page = 1
filter = { platform = "snes", favorites = true }

[[destination]]
id = 2
route = "detail"
label = "screen.detail"
navigator = "screen"

[[destination]]
id = 3
route = "confirm"
label = "dialog.confirm"
navigator = "screen"
floating = true
`

func TestParse(t *testing.T) {
	g, err := navgraph.Parse([]byte(gamesGraph))
	require.NoError(t, err)

	assert.Equal(t, "games", g.Start().Route)
	require.Len(t, g.Destinations(), 3)

	confirm, err := g.Find("confirm")
	require.NoError(t, err)
	assert.Equal(t, 3, confirm.ID)
	assert.True(t, confirm.IsFloatingWindow())
	assert.Nil(t, confirm.Defaults)

	byID, err := g.FindByID(3)
	require.NoError(t, err)
	assert.Same(t, confirm, byID)
}

func TestParseDefaults(t *testing.T) {
	g, err := navgraph.Parse([]byte(gamesGraph))
	require.NoError(t, err)

	defaults := g.Start().Defaults
	page, ok := defaults.GetInt("page")
	require.True(t, ok)
	assert.Equal(t, 1, page)

	filter, ok := defaults.GetBundle("filter")
	require.True(t, ok)
	platform, _ := filter.GetString("platform")
	assert.Equal(t, "snes", platform)
	assert.Equal(t, true, filter["favorites"])
}

func TestFindUnknown(t *testing.T) {
	g, err := navgraph.Parse([]byte(gamesGraph))
	require.NoError(t, err)

	_, err = g.Find("settings")
	assert.ErrorIs(t, err, navigation.ErrUnknownDestination)

	_, err = g.FindByID(42)
	assert.ErrorIs(t, err, navigation.ErrUnknownDestination)
}

func TestDestinationsIsACopy(t *testing.T) {
	g, err := navgraph.Parse([]byte(gamesGraph))
	require.NoError(t, err)

	dests := g.Destinations()
	dests[0] = nil

	assert.NotNil(t, g.Destinations()[0])
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "no start",
			input: "[[destination]]\nid = 1\nroute = \"games\"\n",
		},
		{
			name:  "unknown start",
			input: "start = \"settings\"\n[[destination]]\nid = 1\nroute = \"games\"\n",
		},
		{
			name:  "missing route",
			input: "start = \"games\"\n[[destination]]\nid = 1\n",
		},
		{
			name:  "duplicate id",
			input: "start = \"a\"\n[[destination]]\nid = 1\nroute = \"a\"\n[[destination]]\nid = 1\nroute = \"b\"\n",
		},
		{
			name:  "duplicate route",
			input: "start = \"a\"\n[[destination]]\nid = 1\nroute = \"a\"\n[[destination]]\nid = 2\nroute = \"a\"\n",
		},
		{
			name:  "unknown key",
			input: "start = \"a\"\n[[destination]]\nid = 1\nroute = \"a\"\ncolour = \"red\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := navgraph.Parse([]byte(tt.input))
			assert.ErrorIs(t, err, navgraph.ErrInvalidGraph)
		})
	}
}

func TestParseNestedDefaults(t *testing.T) {
	input := `
start = "a"

[[destination]]
id = 1
route = "a"

[destination.defaults]
filter = { platform = "snes" }

[destination.defaults.sort]
field = "name"
order = { descending = true }
`
	g, err := navgraph.Parse([]byte(input))
	require.NoError(t, err)

	filter, ok := g.Start().Defaults.GetBundle("filter")
	require.True(t, ok)
	assert.Equal(t, navigation.Bundle{"platform": "snes"}, filter)

	sort, ok := g.Start().Defaults.GetBundle("sort")
	require.True(t, ok)
	order, ok := sort.GetBundle("order")
	require.True(t, ok)
	assert.Equal(t, true, order["descending"])
}

func TestParseMalformed(t *testing.T) {
	_, err := navgraph.Parse([]byte("start = "))

	require.Error(t, err)
	assert.NotErrorIs(t, err, navgraph.ErrInvalidGraph)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.toml")
	require.NoError(t, os.WriteFile(path, []byte(gamesGraph), 0o600))

	g, err := navgraph.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Start().ID)

	_, err = navgraph.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
