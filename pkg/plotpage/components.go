package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

const maxGridColumns = 4

// Grid renders a fixed-column grid of panels. Nil items render as empty
// cells so that slot positions stay stable.
type Grid struct {
	Columns int
	Items   []Renderable
}

// NewGrid creates a new grid layout.
func NewGrid(columns int, items ...Renderable) *Grid {
	columns = max(1, min(columns, maxGridColumns))

	return &Grid{Columns: columns, Items: items}
}

// Render writes the grid HTML.
func (g *Grid) Render(w io.Writer) error {
	colClass := map[int]string{
		1: "grid-cols-1",
		2: "grid-cols-1 lg:grid-cols-2",
		3: "grid-cols-1 lg:grid-cols-3",
		4: "grid-cols-1 md:grid-cols-2 xl:grid-cols-4",
	}[g.Columns]

	items := make([]template.HTML, len(g.Items))

	for i, item := range g.Items {
		if item == nil {
			continue
		}

		var buf bytes.Buffer

		err := item.Render(&buf)
		if err != nil {
			return fmt.Errorf("rendering grid item %d: %w", i, err)
		}

		items[i] = template.HTML(buf.String())
	}

	return writeTemplate(w, "grid.html", gridData{ColClass: colClass, Items: items})
}

// MarkerKind selects the styling of a Marker.
type MarkerKind int

// Marker kinds.
const (
	MarkerInfo MarkerKind = iota
	MarkerError
)

// Marker renders text centered inside a panel.
type Marker struct {
	Text string
	Kind MarkerKind
}

// NewMarker creates a centered text panel.
func NewMarker(text string, kind MarkerKind) *Marker {
	return &Marker{Text: text, Kind: kind}
}

// Render writes the marker HTML.
func (m *Marker) Render(w io.Writer) error {
	colorClass := "text-slate-500 dark:text-slate-400"
	if m.Kind == MarkerError {
		colorClass = "text-red-600 dark:text-red-400"
	}

	return writeTemplate(w, "marker.html", markerData{Text: m.Text, ColorClass: colorClass})
}

// Blank renders an inert panel with no axes and no content.
type Blank struct{}

// Render writes the blank panel HTML.
func (Blank) Render(w io.Writer) error {
	return writeTemplate(w, "blank.html", nil)
}

// Stat renders a labeled value.
type Stat struct {
	Label string
	Value string
}

// NewStat creates a new stat display.
func NewStat(label, value string) *Stat {
	return &Stat{Label: label, Value: value}
}

// Render writes the stat HTML.
func (s *Stat) Render(w io.Writer) error {
	return writeTemplate(w, "stat.html", statData{Label: s.Label, Value: s.Value})
}

// Text renders escaped plain text.
type Text struct {
	Content string
}

// NewText creates a new text block.
func NewText(content string) *Text {
	return &Text{Content: content}
}

// Render writes the text content.
func (t *Text) Render(w io.Writer) error {
	_, err := w.Write([]byte(template.HTMLEscapeString(t.Content)))
	if err != nil {
		return fmt.Errorf("writing text: %w", err)
	}

	return nil
}

func writeTemplate(w io.Writer, name string, data any) error {
	html, err := renderTemplate(name, data)
	if err != nil {
		return err
	}

	_, err = w.Write([]byte(html))
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}
