package navigation

import (
	"testing"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackStackEntryDefaults(t *testing.T) {
	dest := &Destination{ID: 1, Route: "home"}
	args := Bundle{"page": 2}

	e := NewBackStackEntry(EntryConfig{Destination: dest, Arguments: args})
	args["page"] = 3

	assert.NotEmpty(t, e.ID())
	assert.Same(t, dest, e.Destination())
	assert.Equal(t, Bundle{"page": 2}, e.Arguments())
	assert.Equal(t, lifecycle.Resumed, e.MaxLifecycle())
	assert.Equal(t, lifecycle.Initialized, e.Lifecycle().CurrentState())
	assert.Nil(t, e.ViewModelStore())
}

func TestEntryIDsAreUnique(t *testing.T) {
	a := NewBackStackEntry(EntryConfig{})
	b := NewBackStackEntry(EntryConfig{})
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestEntryLifecycleFollowsLowerOfHostAndMax(t *testing.T) {
	host := lifecycle.Started
	e := NewBackStackEntry(EntryConfig{HostState: &host})

	require.NoError(t, e.SetMaxLifecycle(lifecycle.Resumed))
	assert.Equal(t, lifecycle.Started, e.Lifecycle().CurrentState())

	require.NoError(t, e.SetMaxLifecycle(lifecycle.Created))
	assert.Equal(t, lifecycle.Created, e.Lifecycle().CurrentState())

	require.NoError(t, e.SetMaxLifecycle(lifecycle.Resumed))
	require.NoError(t, e.SetHostLifecycleState(lifecycle.Resumed))
	assert.Equal(t, lifecycle.Resumed, e.Lifecycle().CurrentState())
}

func TestEntrySaveAndRestore(t *testing.T) {
	dest := &Destination{ID: 1}
	e := NewBackStackEntry(EntryConfig{Destination: dest})
	require.NoError(t, e.SetMaxLifecycle(lifecycle.Resumed))

	scroll := 40
	e.RegisterSavedStateProvider("list", func() Bundle {
		return Bundle{"scroll": scroll}
	})

	saved := Bundle{}
	e.SaveState(saved)
	assert.Equal(t, Bundle{"list": Bundle{"scroll": 40}}, saved)

	restored := NewBackStackEntry(EntryConfig{Destination: dest, ID: e.ID(), SavedState: saved})
	assert.Nil(t, restored.ConsumeRestoredState("list"), "nothing is restored before the entry is created")

	require.NoError(t, restored.SetMaxLifecycle(lifecycle.Created))
	assert.Equal(t, e.ID(), restored.ID())
	assert.Equal(t, Bundle{"scroll": 40}, restored.ConsumeRestoredState("list"))
	assert.Nil(t, restored.ConsumeRestoredState("list"))
}

func TestEntrySaveStateKeepsUnconsumedRestoredState(t *testing.T) {
	e := NewBackStackEntry(EntryConfig{SavedState: Bundle{"form": Bundle{"name": "mario"}}})
	require.NoError(t, e.SetMaxLifecycle(lifecycle.Started))

	out := Bundle{}
	e.SaveState(out)

	assert.Equal(t, Bundle{"form": Bundle{"name": "mario"}}, out)
}

func TestEntryViewModelStoreIsStablePerID(t *testing.T) {
	stores := NewViewModelStores()
	e := NewBackStackEntry(EntryConfig{ViewModelStores: stores})
	e.ViewModelStore().Put("vm", 1)

	again := NewBackStackEntry(EntryConfig{ViewModelStores: stores, ID: e.ID()})
	v, ok := again.ViewModelStore().Get("vm")

	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestEntryUnderDestroyedHostIsDestroyed(t *testing.T) {
	host := lifecycle.Destroyed
	e := NewBackStackEntry(EntryConfig{HostState: &host})

	require.NoError(t, e.SetMaxLifecycle(lifecycle.Resumed))

	assert.Equal(t, lifecycle.Destroyed, e.Lifecycle().CurrentState())
}

func TestDestroyedEntryKeepsLastCeiling(t *testing.T) {
	e := NewBackStackEntry(EntryConfig{})
	require.NoError(t, e.SetMaxLifecycle(lifecycle.Resumed))
	require.NoError(t, e.SetMaxLifecycle(lifecycle.Destroyed))

	err := e.SetMaxLifecycle(lifecycle.Started)

	assert.ErrorIs(t, err, lifecycle.ErrDestroyed)
	assert.Equal(t, lifecycle.Destroyed, e.MaxLifecycle())
	assert.Equal(t, lifecycle.Destroyed, e.Lifecycle().CurrentState())
}
