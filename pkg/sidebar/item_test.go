package sidebar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_Valid(t *testing.T) {
	assert.True(t, KindCategory.Valid())
	assert.True(t, KindDoc.Valid())
	assert.True(t, KindLink.Valid())
	assert.False(t, Kind("page").Valid())
	assert.False(t, Kind("").Valid())
}

func TestItem_Defaults(t *testing.T) {
	c := Category("c", "C", Doc("d", "D"))

	assert.True(t, c.IsCategory())
	assert.True(t, c.IsCollapsible())
	assert.False(t, c.IsCollapsed())

	c = c.WithCollapsible(false).WithCollapsed(true)
	assert.False(t, c.IsCollapsible())
	assert.True(t, c.IsCollapsed())
}

func TestItem_Modifiers(t *testing.T) {
	d := Doc("d", "D").WithNew().WithHref("/x")
	assert.True(t, d.IsDoc())
	assert.True(t, d.New)
	assert.Equal(t, "/x", d.Href)

	l := Link("l", "L", "https://example.com")
	assert.True(t, l.IsLink())
	assert.Equal(t, "https://example.com", l.Href)
}

func TestItem_CloneIsDeep(t *testing.T) {
	orig := Category("c", "C", Doc("d", "D")).WithCollapsed(true)
	clone := orig.Clone()

	clone.Items[0].Label = "changed"
	*clone.Collapsed = false

	assert.Equal(t, "D", orig.Items[0].Label)
	assert.True(t, *orig.Collapsed)
}

func TestItem_JSONOmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(Doc("intro", "Introduction"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"doc","id":"intro","label":"Introduction"}`, string(data))

	data, err = json.Marshal(Category("c", "C", Link("l", "L", "/l")).WithIcon("Star").WithCollapsed(false))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type":"category","id":"c","label":"C","icon":"Star","collapsed":false,
		"items":[{"type":"link","id":"l","label":"L","href":"/l"}]
	}`, string(data))
}
