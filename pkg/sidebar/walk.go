package sidebar

import "errors"

// SkipChildren is returned by a WalkFunc to skip the children of the visited category.
var SkipChildren = errors.New("skip children")

// errStop ends a walk early without reporting an error.
var errStop = errors.New("stop walk")

// Node is a visited position in the sidebar tree.
type Node struct {
	// Group is the navigation group key the node belongs to.
	Group string

	// Parent is the id of the enclosing category, empty at the top level.
	Parent string

	// Path holds the ids of all enclosing categories, outermost first.
	Path []string

	// Depth is zero for top-level nodes.
	Depth int

	// Index is the position of the node among its siblings.
	Index int

	// Item is a deep copy of the visited node. Changes to it are not reflected in the tree.
	Item Item
}

// WalkFunc is called for every node visited by Walk.
type WalkFunc func(n Node) error

// Walk visits every node depth-first in pre-order. Groups are visited in sorted
// key order and children in their declared order.
func (s *Sidebar) Walk(fn WalkFunc) error {
	for _, group := range s.GroupNames() {
		if err := walkItems(group, nil, s.Groups[group], fn); err != nil {
			if errors.Is(err, errStop) {
				return nil
			}
			return err
		}
	}

	return nil
}

// WalkGroup visits the nodes of a single group.
func (s *Sidebar) WalkGroup(group string, fn WalkFunc) error {
	items, ok := s.Groups[group]
	if !ok {
		return ErrGroupNotFound
	}

	if err := walkItems(group, nil, items, fn); err != nil && !errors.Is(err, errStop) {
		return err
	}

	return nil
}

// walkItems recursively visits items and their sub-items.
func walkItems(group string, path []string, items []Item, fn WalkFunc) error {
	for i := range items {
		item := &items[i]

		n := Node{
			Group: group,
			Path:  path,
			Depth: len(path),
			Index: i,
			Item:  item.Clone(),
		}
		if len(path) > 0 {
			n.Parent = path[len(path)-1]
		}

		err := fn(n)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}

		if len(item.Items) == 0 {
			continue
		}

		childPath := make([]string, len(path)+1)
		copy(childPath, path)
		childPath[len(path)] = item.ID

		if err := walkItems(group, childPath, item.Items, fn); err != nil {
			return err
		}
	}

	return nil
}
