package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSidebar() *Sidebar {
	return New("Test").
		Add("docs",
			Category("guide", "Guide",
				Doc("start", "Start"),
				Category("advanced", "Advanced",
					Doc("tuning", "Tuning").WithNew(),
				),
			),
			Link("github", "GitHub", "https://github.com/example/repo"),
		).
		Add("api",
			Doc("reference", "Reference"),
		)
}

func TestSidebar_GroupNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"api", "docs"}, newTestSidebar().GroupNames())
}

func TestSidebar_Group(t *testing.T) {
	s := newTestSidebar()

	items, ok := s.Group("docs")
	require.True(t, ok)
	require.Len(t, items, 2)

	items[0].Label = "changed"
	assert.Equal(t, "Guide", s.Groups["docs"][0].Label)

	_, ok = s.Group("missing")
	assert.False(t, ok)
}

func TestSidebar_Find(t *testing.T) {
	s := newTestSidebar()

	item, ok := s.Find("tuning")
	require.True(t, ok)
	assert.Equal(t, "Tuning", item.Label)
	assert.True(t, item.New)

	_, ok = s.Find("nope")
	assert.False(t, ok)
}

func TestSidebar_Count(t *testing.T) {
	s := newTestSidebar()

	assert.Equal(t, Stats{Categories: 2, Docs: 3, Links: 1}, s.Count())
	assert.Equal(t, 6, s.Count().Total())
	assert.Equal(t, Stats{Docs: 1}, s.CountGroup("api"))
}

func TestSidebar_IDs(t *testing.T) {
	assert.Equal(t,
		[]string{"reference", "guide", "start", "advanced", "tuning", "github"},
		newTestSidebar().IDs())
}

func TestSidebar_CloneAndEqual(t *testing.T) {
	s := newTestSidebar()
	c := s.Clone()

	assert.True(t, s.Equal(c))

	c.Groups["docs"][0].Items[1].Items[0].Label = "other"
	assert.False(t, s.Equal(c))
	assert.Equal(t, "Tuning", s.Groups["docs"][0].Items[1].Items[0].Label)
}

func TestSidebar_EqualNil(t *testing.T) {
	var a, b *Sidebar
	assert.True(t, a.Equal(b))
	assert.False(t, newTestSidebar().Equal(nil))
}

func TestSidebar_AddOnZeroValue(t *testing.T) {
	var s Sidebar
	s.Add("docs", Doc("a", "A"))

	require.Len(t, s.Groups["docs"], 1)
	assert.Same(t, &s, s.Current())
}
