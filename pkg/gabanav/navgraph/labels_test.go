package navgraph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/navgraph"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const englishMessages = `
"screen.games" = "Games"
"screen.detail" = "Details"
"dialog.delete" = "Delete {{.name}}?"
`

const frenchMessages = `
"screen.games" = "Jeux"
`

func newLabels(t *testing.T) *navgraph.Labels {
	t.Helper()
	labels := navgraph.NewLabels(language.English)
	require.NoError(t, labels.AddMessages([]byte(englishMessages), "active.en.toml"))
	require.NoError(t, labels.AddMessages([]byte(frenchMessages), "active.fr.toml"))
	return labels
}

func TestLabels(t *testing.T) {
	labels := newLabels(t)
	games := &navigation.Destination{Label: "screen.games"}
	detail := &navigation.Destination{Label: "screen.detail"}

	tests := []struct {
		name  string
		langs []string
		dest  *navigation.Destination
		want  string
	}{
		{
			name:  "english",
			langs: []string{"en"},
			dest:  games,
			want:  "Games",
		},
		{
			name:  "french",
			langs: []string{"fr"},
			dest:  games,
			want:  "Jeux",
		},
		{
			name:  "accept language",
			langs: []string{"fr-CA,fr;q=0.9,en;q=0.8"},
			dest:  games,
			want:  "Jeux",
		},
		{
			name:  "falls back to default language",
			langs: []string{"fr"},
			dest:  detail,
			want:  "Details",
		},
		{
			name:  "untranslated label",
			langs: []string{"en"},
			dest:  &navigation.Destination{Label: "screen.settings"},
			want:  "screen.settings",
		},
		{
			name:  "no label",
			langs: []string{"en"},
			dest:  &navigation.Destination{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labels.Localizer(tt.langs...).Label(tt.dest))
		})
	}
}

func TestLabelUsesDefaults(t *testing.T) {
	labels := newLabels(t)
	dest := &navigation.Destination{
		Label:    "dialog.delete",
		Defaults: navigation.Bundle{"name": "Chrono Trigger"},
	}

	assert.Equal(t, "Delete Chrono Trigger?", labels.Localizer("en").Label(dest))
}

func TestLabelsLanguages(t *testing.T) {
	labels := newLabels(t)

	var got []string
	for _, tag := range labels.Languages() {
		got = append(got, tag.String())
	}
	assert.ElementsMatch(t, []string{"en", "fr"}, got)
}

func TestLoadMessageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screens.de.toml")
	require.NoError(t, os.WriteFile(path, []byte(`"screen.games" = "Spiele"`), 0o600))

	labels := navgraph.NewLabels(language.English)
	require.NoError(t, labels.LoadMessageFile(path))

	got := labels.Localizer("de").Label(&navigation.Destination{Label: "screen.games"})
	assert.Equal(t, "Spiele", got)

	assert.Error(t, labels.LoadMessageFile(filepath.Join(dir, "missing.de.toml")))
}

func TestLabelFallsBackWhenLanguageLacksMessage(t *testing.T) {
	labels := navgraph.NewLabels(language.English)
	require.NoError(t, labels.AddMessages([]byte(`"screen.detail" = "Details"`), "active.en.toml"))
	require.NoError(t, labels.AddMessages([]byte(`"screen.other" = "Autre"`), "active.fr.toml"))
	detail := &navigation.Destination{Label: "screen.detail"}

	assert.Equal(t, "Details", labels.Localizer("fr").Label(detail))
	assert.Equal(t, "Details", labels.Localizer("fr-CA,fr;q=0.9").Label(detail))
}
