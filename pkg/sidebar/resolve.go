package sidebar

import (
	"net/url"
	"strings"
)

const (
	// DefaultBasePath is the site root hrefs are resolved against.
	DefaultBasePath = "/"

	// DefaultDocsPrefix is the path segment doc pages live under.
	DefaultDocsPrefix = "docs"
)

// Resolver turns node ids and hrefs into site URLs.
// The zero value uses DefaultBasePath and DefaultDocsPrefix.
type Resolver struct {
	// BasePath is the path the site is mounted at, e.g. "/" or "/ui".
	BasePath string

	// DocsPrefix is the segment doc slugs are placed under.
	DocsPrefix string
}

// Route maps a leaf node to its resolved URL.
type Route struct {
	Group string `json:"group"`
	ID    string `json:"id"`
	Type  Kind   `json:"type"`
	Href  string `json:"href"`
}

// Href returns the URL a node points at. Categories never resolve to a page
// and return an empty string.
func (r Resolver) Href(item Item) string {
	switch item.Type {
	case KindLink:
		return r.abs(item.Href)
	case KindDoc:
		if item.Href != "" {
			return r.abs(item.Href)
		}

		prefix := r.DocsPrefix
		if prefix == "" {
			prefix = DefaultDocsPrefix
		}

		return r.abs(strings.Trim(prefix, "/") + "/" + item.ID)
	default:
		return ""
	}
}

// abs joins a relative href to the base path. Hrefs carrying a scheme or a
// fragment-only reference are returned unchanged.
func (r Resolver) abs(href string) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return href
	}

	target, err := url.Parse(href)
	if err != nil || target.Scheme != "" || target.Host != "" {
		return href
	}

	base := r.BasePath
	if base == "" {
		base = DefaultBasePath
	}

	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}

	root, err := url.Parse(base)
	if err != nil {
		return href
	}

	out := root.JoinPath(target.Path)
	out.RawQuery = target.RawQuery
	out.Fragment = target.Fragment

	return out.String()
}

// Resolve returns a deep copy of items in which every doc and link carries its
// resolved href.
func (r Resolver) Resolve(items []Item) []Item {
	out := cloneItems(items)
	r.resolveInPlace(out)

	return out
}

func (r Resolver) resolveInPlace(items []Item) {
	for i := range items {
		if items[i].IsCategory() {
			r.resolveInPlace(items[i].Items)
			continue
		}

		items[i].Href = r.Href(items[i])
	}
}

// Routes returns the route table of every doc and link in walk order.
func (r Resolver) Routes(s *Sidebar) []Route {
	var routes []Route

	_ = s.Walk(func(n Node) error {
		if n.Item.IsCategory() {
			return nil
		}

		routes = append(routes, Route{
			Group: n.Group,
			ID:    n.Item.ID,
			Type:  n.Item.Type,
			Href:  r.Href(n.Item),
		})

		return nil
	})

	return routes
}
