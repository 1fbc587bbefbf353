package sidebar

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)

	_, err = NewStore(New("empty"))
	assert.ErrorIs(t, err, ErrNoGroups)

	s := newTestSidebar()
	store, err := NewStore(s)
	require.NoError(t, err)

	assert.True(t, s.Equal(store.Current()))

	// the store keeps its own copy
	s.Groups["api"][0].Label = "changed"
	assert.Equal(t, "Reference", store.Current().Groups["api"][0].Label)
}

func TestStore_Swap(t *testing.T) {
	store, err := NewStore(newTestSidebar())
	require.NoError(t, err)

	prev, err := store.Swap(Docs())
	require.NoError(t, err)
	assert.Equal(t, "Test", prev.Title)
	assert.Equal(t, "Documentation", store.Current().Title)

	_, err = store.Swap(New("bad").Add("docs", Link("l", "L", "")))
	assert.ErrorIs(t, err, ErrMissingHref)
	assert.Equal(t, "Documentation", store.Current().Title)

	_, err = store.Swap(nil)
	assert.Error(t, err)
}

func TestStore_SwapUsesValidateOptions(t *testing.T) {
	siblingsOnly := New("t").Add("docs",
		Category("a", "A", Doc("x", "X")),
		Category("b", "B", Doc("x", "X")),
	)

	_, err := NewStore(siblingsOnly)
	assert.ErrorIs(t, err, ErrDuplicateID)

	store, err := NewStore(siblingsOnly, WithIDScope(ScopeSiblings))
	require.NoError(t, err)

	_, err = store.Swap(siblingsOnly)
	assert.NoError(t, err)
}

func TestStore_ConcurrentReaders(t *testing.T) {
	store, err := NewStore(Docs())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s := store.Current()
				assert.NotEmpty(t, s.Groups)
			}
		}()
	}

	for i := 0; i < 20; i++ {
		next := Docs()
		next.Version = "v"
		_, err := store.Swap(next)
		require.NoError(t, err)
	}

	wg.Wait()
}
