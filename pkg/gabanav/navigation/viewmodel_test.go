package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type trackedViewModel struct {
	cleared int
}

func (v *trackedViewModel) OnCleared() { v.cleared++ }

func TestViewModelStoreClearCallsOnCleared(t *testing.T) {
	s := NewViewModelStore()
	vm := &trackedViewModel{}
	s.Put("a", vm)
	s.Put("b", "plain")

	assert.Equal(t, []string{"a", "b"}, s.Keys())

	s.Clear()

	assert.Equal(t, 1, vm.cleared)
	assert.Empty(t, s.Keys())
}

func TestViewModelStorePutReplacesAndClearsOld(t *testing.T) {
	s := NewViewModelStore()
	old := &trackedViewModel{}
	s.Put("a", old)
	s.Put("a", &trackedViewModel{})

	assert.Equal(t, 1, old.cleared)
}

func TestViewModelStoresClear(t *testing.T) {
	p := NewViewModelStores()
	vm := &trackedViewModel{}
	p.ViewModelStore("x").Put("vm", vm)
	p.ViewModelStore("y")
	assert.Equal(t, 2, p.Len())

	p.Clear("x")
	p.Clear("missing")

	assert.Equal(t, 1, vm.cleared)
	assert.Equal(t, 1, p.Len())
	_, ok := p.ViewModelStore("x").Get("vm")
	assert.False(t, ok)
}
