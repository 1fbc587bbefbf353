package sidebar

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Entry is one flattened, resolved row of a rendered group.
type Entry struct {
	Group  string `json:"group"`
	Depth  int    `json:"depth"`
	Type   Kind   `json:"type"`
	ID     string `json:"id"`
	Label  string `json:"label"`
	Parent string `json:"parent,omitempty"`
	Href   string `json:"href,omitempty"`
	Icon   string `json:"icon,omitempty"`
	New    bool   `json:"new,omitempty"`
}

// Entries flattens a group into render order with resolved hrefs.
func (s *Sidebar) Entries(group string, r Resolver) ([]Entry, error) {
	var entries []Entry

	err := s.WalkGroup(group, func(n Node) error {
		entries = append(entries, Entry{
			Group:  n.Group,
			Depth:  n.Depth,
			Type:   n.Item.Type,
			ID:     n.Item.ID,
			Label:  n.Item.Label,
			Parent: n.Parent,
			Href:   r.Href(n.Item),
			Icon:   n.Item.Icon,
			New:    n.Item.New,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", group, err)
	}

	return entries, nil
}

// RenderOutline writes entries as an indented outline, one node per line.
func RenderOutline(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		var b strings.Builder

		b.WriteString(strings.Repeat("  ", e.Depth))

		switch e.Type {
		case KindCategory:
			b.WriteString("+ ")
		default:
			b.WriteString("- ")
		}

		b.WriteString(e.Label)
		b.WriteString(" [")
		b.WriteString(e.ID)
		b.WriteString("]")

		if e.New {
			b.WriteString(" (new)")
		}

		if e.Href != "" {
			b.WriteString(" -> ")
			b.WriteString(e.Href)
		}

		b.WriteString("\n")

		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("write outline: %w", err)
		}
	}

	return nil
}

// RenderTable writes entries as a table.
func RenderTable(w io.Writer, entries []Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Label", "Type", "Parent", "Href"})

	for _, e := range entries {
		label := strings.Repeat("  ", e.Depth) + e.Label
		if e.New {
			label += " *"
		}
		t.AppendRow(table.Row{e.ID, label, string(e.Type), e.Parent, e.Href})
	}

	t.Render()
}

// RenderRoutes writes a route table.
func RenderRoutes(w io.Writer, routes []Route) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Group", "ID", "Type", "Href"})

	for _, r := range routes {
		t.AppendRow(table.Row{r.Group, r.ID, string(r.Type), r.Href})
	}

	t.Render()
}
