package sidebar

// Kind discriminates the variants of a sidebar node.
type Kind string

const (
	// KindCategory is a collapsible group node holding child nodes.
	KindCategory Kind = "category"

	// KindDoc is a leaf node pointing at a documentation page.
	KindDoc Kind = "doc"

	// KindLink is a leaf node pointing at an arbitrary URL.
	KindLink Kind = "link"
)

// Valid reports whether k is one of the known node kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindCategory, KindDoc, KindLink:
		return true
	default:
		return false
	}
}

// Item represents a single node in the sidebar tree, which may contain sub-items.
// The Type field selects which of the remaining fields are meaningful.
type Item struct {
	// Type is the variant tag: category, doc or link.
	Type Kind `json:"type" yaml:"type" jsonschema:"enum=category,enum=doc,enum=link"`

	// ID is the unique identifier of the node, used for stable keys and anchors.
	// For docs it is also the content slug the page URL is derived from.
	ID string `json:"id" yaml:"id"`

	// Label is the display text.
	Label string `json:"label" yaml:"label"`

	// Icon names the glyph rendered next to a category. Presentational only.
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`

	// Collapsible controls whether a category can be expanded and collapsed.
	// Nil leaves the decision to the renderer, which treats it as true.
	Collapsible *bool `json:"collapsible,omitempty" yaml:"collapsible,omitempty"`

	// Collapsed is the initial state of a category when the page loads.
	Collapsed *bool `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`

	// New marks a doc with a "new" badge.
	New bool `json:"new,omitempty" yaml:"new,omitempty"`

	// Href is the destination of a link, or an explicit URL override for a doc.
	Href string `json:"href,omitempty" yaml:"href,omitempty"`

	// Items are the ordered children of a category.
	Items []Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// Category creates a category node with the given children.
func Category(id, label string, items ...Item) Item {
	return Item{Type: KindCategory, ID: id, Label: label, Items: items}
}

// Doc creates a doc node whose URL is derived from its id.
func Doc(id, label string) Item {
	return Item{Type: KindDoc, ID: id, Label: label}
}

// Link creates a link node pointing at href.
func Link(id, label, href string) Item {
	return Item{Type: KindLink, ID: id, Label: label, Href: href}
}

// WithIcon returns a copy of the item carrying the named icon.
func (i Item) WithIcon(icon string) Item {
	i.Icon = icon
	return i
}

// WithHref returns a copy of the item carrying an explicit href.
func (i Item) WithHref(href string) Item {
	i.Href = href
	return i
}

// WithNew returns a copy of the item marked with the "new" badge.
func (i Item) WithNew() Item {
	i.New = true
	return i
}

// WithCollapsed returns a copy of the item with its initial collapsed state set.
func (i Item) WithCollapsed(collapsed bool) Item {
	i.Collapsed = &collapsed
	return i
}

// WithCollapsible returns a copy of the item with its collapsible flag set.
func (i Item) WithCollapsible(collapsible bool) Item {
	i.Collapsible = &collapsible
	return i
}

func (i Item) IsCategory() bool { return i.Type == KindCategory }
func (i Item) IsDoc() bool      { return i.Type == KindDoc }
func (i Item) IsLink() bool     { return i.Type == KindLink }

// IsCollapsible reports the effective collapsible flag, defaulting to true.
func (i Item) IsCollapsible() bool {
	if i.Collapsible == nil {
		return true
	}
	return *i.Collapsible
}

// IsCollapsed reports the effective initial state, defaulting to expanded.
func (i Item) IsCollapsed() bool {
	if i.Collapsed == nil {
		return false
	}
	return *i.Collapsed
}

// Clone returns a deep copy of the item and all of its descendants.
func (i Item) Clone() Item {
	out := i

	if i.Collapsible != nil {
		v := *i.Collapsible
		out.Collapsible = &v
	}

	if i.Collapsed != nil {
		v := *i.Collapsed
		out.Collapsed = &v
	}

	out.Items = cloneItems(i.Items)

	return out
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}

	out := make([]Item, len(items))
	for n := range items {
		out[n] = items[n].Clone()
	}

	return out
}
