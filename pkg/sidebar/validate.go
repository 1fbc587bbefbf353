package sidebar

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownType     = errors.New("unknown node type")
	ErrMissingID       = errors.New("missing id")
	ErrMissingLabel    = errors.New("missing label")
	ErrMissingHref     = errors.New("link requires href")
	ErrEmptyCategory   = errors.New("category has no items")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrUnexpectedField = errors.New("field not allowed for node type")
	ErrEmptyGroup      = errors.New("group has no items")
	ErrNoGroups        = errors.New("sidebar has no groups")
	ErrDuplicateRoute  = errors.New("duplicate route")
	ErrGroupNotFound   = errors.New("group not found")
)

// IDScope selects where node ids must be unique.
type IDScope string

const (
	// ScopeGlobal requires ids to be unique across every group of the sidebar.
	ScopeGlobal IDScope = "global"

	// ScopeSiblings only requires ids to be unique among the children of one parent.
	ScopeSiblings IDScope = "siblings"
)

// ParseIDScope converts a configuration string into an IDScope.
func ParseIDScope(s string) (IDScope, error) {
	switch IDScope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeGlobal:
		return ScopeGlobal, nil
	case ScopeSiblings:
		return ScopeSiblings, nil
	default:
		return "", fmt.Errorf("invalid id scope %q", s)
	}
}

// ValidationError describes one rule violation at a position in the tree.
type ValidationError struct {
	Group  string
	Path   []string
	ID     string
	Reason error
	Detail string
}

func (e *ValidationError) Error() string {
	var b strings.Builder

	if e.Group == "" {
		b.WriteString("sidebar")
	} else {
		b.WriteString(e.Group)
	}
	for _, p := range e.Path {
		b.WriteString("/")
		b.WriteString(p)
	}

	if e.ID != "" {
		b.WriteString("/")
		b.WriteString(e.ID)
	}

	b.WriteString(": ")
	b.WriteString(e.Reason.Error())

	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}

	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// ValidateOptions tunes the checks performed by Validate.
type ValidateOptions struct {
	Scope        IDScope
	StrictRoutes bool
	Resolver     Resolver
}

// ValidateOption configures ValidateOptions.
type ValidateOption func(*ValidateOptions)

// WithIDScope sets where ids must be unique. The default is ScopeGlobal.
func WithIDScope(scope IDScope) ValidateOption {
	return func(o *ValidateOptions) { o.Scope = scope }
}

// WithStrictRoutes reports distinct leaves that resolve to the same URL.
func WithStrictRoutes(r Resolver) ValidateOption {
	return func(o *ValidateOptions) {
		o.StrictRoutes = true
		o.Resolver = r
	}
}

// Validate checks the structural rules of the sidebar. It returns nil for a
// well-formed tree, otherwise the joined *ValidationError values in walk order.
func (s *Sidebar) Validate(opts ...ValidateOption) error {
	o := ValidateOptions{Scope: ScopeGlobal}
	for _, opt := range opts {
		opt(&o)
	}

	v := &validator{
		opts: o,
		seen: make(map[string][]string),
	}

	if len(s.Groups) == 0 {
		v.add("", nil, "", ErrNoGroups, "")
	}

	for _, group := range s.GroupNames() {
		items := s.Groups[group]
		if len(items) == 0 {
			v.add(group, nil, "", ErrEmptyGroup, "")
			continue
		}

		v.items(group, nil, items)
	}

	if o.StrictRoutes {
		v.routes(s)
	}

	return errors.Join(v.errs...)
}

// unnamedSegment stands in for a category without an id in reported paths.
const unnamedSegment = "<unnamed>"

type validator struct {
	opts ValidateOptions
	seen map[string][]string
	errs []error
}

func (v *validator) add(group string, path []string, id string, reason error, detail string) {
	v.errs = append(v.errs, &ValidationError{
		Group:  group,
		Path:   path,
		ID:     id,
		Reason: reason,
		Detail: detail,
	})
}

func (v *validator) items(group string, path []string, items []Item) {
	siblings := make(map[string]bool, len(items))

	for i := range items {
		item := &items[i]

		v.item(group, path, item)

		if item.ID != "" {
			v.unique(group, path, item.ID, siblings)
		}

		if item.IsCategory() && len(item.Items) > 0 {
			segment := item.ID
			if segment == "" {
				segment = unnamedSegment
			}

			childPath := append(append([]string(nil), path...), segment)
			v.items(group, childPath, item.Items)
		}
	}
}

func (v *validator) unique(group string, path []string, id string, siblings map[string]bool) {
	switch v.opts.Scope {
	case ScopeSiblings:
		if siblings[id] {
			v.add(group, path, id, ErrDuplicateID, "")
		}
		siblings[id] = true
	default:
		if prev, ok := v.seen[id]; ok {
			v.add(group, path, id, ErrDuplicateID,
				"first declared in "+strings.Join(prev, "/"))
		} else {
			v.seen[id] = append([]string{group}, path...)
		}
	}
}

func (v *validator) item(group string, path []string, item *Item) {
	if !item.Type.Valid() {
		v.add(group, path, item.ID, ErrUnknownType, fmt.Sprintf("type %q", item.Type))
		return
	}

	if strings.TrimSpace(item.ID) == "" {
		v.add(group, path, item.ID, ErrMissingID, "label "+item.Label)
	}

	if strings.TrimSpace(item.Label) == "" {
		v.add(group, path, item.ID, ErrMissingLabel, "")
	}

	unexpected := func(field string) {
		v.add(group, path, item.ID, ErrUnexpectedField,
			fmt.Sprintf("%s on %s", field, item.Type))
	}

	switch item.Type {
	case KindCategory:
		if len(item.Items) == 0 {
			v.add(group, path, item.ID, ErrEmptyCategory, "")
		}
		if item.Href != "" {
			unexpected("href")
		}
		if item.New {
			unexpected("new")
		}
	case KindDoc, KindLink:
		if item.Type == KindLink {
			if strings.TrimSpace(item.Href) == "" {
				v.add(group, path, item.ID, ErrMissingHref, "")
			}
			if item.New {
				unexpected("new")
			}
		}
		if len(item.Items) > 0 {
			unexpected("items")
		}
		if item.Icon != "" {
			unexpected("icon")
		}
		if item.Collapsible != nil {
			unexpected("collapsible")
		}
		if item.Collapsed != nil {
			unexpected("collapsed")
		}
	}
}

func (v *validator) routes(s *Sidebar) {
	owners := make(map[string]string)

	for _, r := range v.opts.Resolver.Routes(s) {
		if r.Href == "" {
			continue
		}

		if owner, ok := owners[r.Href]; ok && owner != r.ID {
			v.add(r.Group, nil, r.ID, ErrDuplicateRoute,
				fmt.Sprintf("%s already used by %s", r.Href, owner))
			continue
		}

		owners[r.Href] = r.ID
	}
}
