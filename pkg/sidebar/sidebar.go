package sidebar

import (
	"slices"
	"sort"
)

// Sidebar represents the root navigation structure of a documentation site.
type Sidebar struct {
	// Title of the sidebar
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Version of the sidebar document
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Groups maps a navigation group key to its ordered top-level nodes.
	Groups map[string][]Item `json:"groups" yaml:"groups" jsonschema:"required"`
}

// Stats holds node counts by kind.
type Stats struct {
	Categories int `json:"categories"`
	Docs       int `json:"docs"`
	Links      int `json:"links"`
}

// Total returns the number of counted nodes.
func (s Stats) Total() int {
	return s.Categories + s.Docs + s.Links
}

// New creates an empty sidebar with the given title.
func New(title string) *Sidebar {
	return &Sidebar{
		Title:  title,
		Groups: make(map[string][]Item),
	}
}

// Current returns the sidebar itself so a static value can be used as a Source.
func (s *Sidebar) Current() *Sidebar {
	return s
}

// Add appends items to the named group, creating it when needed.
func (s *Sidebar) Add(group string, items ...Item) *Sidebar {
	if s.Groups == nil {
		s.Groups = make(map[string][]Item)
	}

	s.Groups[group] = append(s.Groups[group], items...)

	return s
}

// Group returns a copy of the named group's items.
func (s *Sidebar) Group(name string) ([]Item, bool) {
	items, ok := s.Groups[name]
	if !ok {
		return nil, false
	}

	return cloneItems(items), true
}

// GroupNames returns the group keys in sorted order.
func (s *Sidebar) GroupNames() []string {
	names := make([]string, 0, len(s.Groups))
	for name := range s.Groups {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Find returns the first node with the given id, searching groups in sorted
// order and each tree depth-first.
func (s *Sidebar) Find(id string) (Item, bool) {
	var (
		found Item
		ok    bool
	)

	_ = s.Walk(func(n Node) error {
		if n.Item.ID == id {
			found, ok = n.Item, true
			return errStop
		}
		return nil
	})

	return found, ok
}

// Count returns the number of nodes of each kind across all groups.
func (s *Sidebar) Count() Stats {
	var st Stats

	_ = s.Walk(func(n Node) error {
		st.add(n.Item.Type)
		return nil
	})

	return st
}

// CountGroup returns the node counts of a single group.
func (s *Sidebar) CountGroup(group string) Stats {
	var st Stats

	_ = s.Walk(func(n Node) error {
		if n.Group == group {
			st.add(n.Item.Type)
		}
		return nil
	})

	return st
}

func (st *Stats) add(k Kind) {
	switch k {
	case KindCategory:
		st.Categories++
	case KindDoc:
		st.Docs++
	case KindLink:
		st.Links++
	}
}

// IDs returns every node id in walk order.
func (s *Sidebar) IDs() []string {
	var ids []string

	_ = s.Walk(func(n Node) error {
		ids = append(ids, n.Item.ID)
		return nil
	})

	return ids
}

// Clone returns a deep copy of the sidebar.
func (s *Sidebar) Clone() *Sidebar {
	out := &Sidebar{
		Title:   s.Title,
		Version: s.Version,
		Groups:  make(map[string][]Item, len(s.Groups)),
	}

	for name, items := range s.Groups {
		out.Groups[name] = cloneItems(items)
	}

	return out
}

// Equal reports whether two sidebars hold the same groups and nodes in the same order.
func (s *Sidebar) Equal(o *Sidebar) bool {
	if s == nil || o == nil {
		return s == o
	}

	if s.Title != o.Title || s.Version != o.Version {
		return false
	}

	if !slices.Equal(s.GroupNames(), o.GroupNames()) {
		return false
	}

	for name, items := range s.Groups {
		if !slices.EqualFunc(items, o.Groups[name], itemsEqual) {
			return false
		}
	}

	return true
}

func itemsEqual(a, b Item) bool {
	if a.Type != b.Type || a.ID != b.ID || a.Label != b.Label ||
		a.Icon != b.Icon || a.New != b.New || a.Href != b.Href {
		return false
	}

	if !boolPtrEqual(a.Collapsible, b.Collapsible) || !boolPtrEqual(a.Collapsed, b.Collapsed) {
		return false
	}

	return slices.EqualFunc(a.Items, b.Items, itemsEqual)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
