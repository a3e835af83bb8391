package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/trendscope/pkg/plotpage"
)

const sectionTitle = "Interest over time"

// HTMLSurface writes one standalone HTML page per chart page and an index
// linking them. Panels are stacked in a single column.
type HTMLSurface struct {
	renderer *plotpage.MultiPageRenderer
	pages    []plotpage.PageMeta
	keywords int
	index    string
}

// NewHTMLSurface creates a surface writing into dir.
func NewHTMLSurface(dir, title, footer string, theme plotpage.Theme) *HTMLSurface {
	return &HTMLSurface{
		renderer: &plotpage.MultiPageRenderer{
			OutputDir: dir,
			Title:     title,
			Footer:    footer,
			Theme:     theme,
		},
	}
}

// NewPage starts a page.
func (s *HTMLSurface) NewPage(_ context.Context, info PageInfo) (Canvas, error) {
	if len(info.Subjects) == 0 {
		return nil, fmt.Errorf("%w: page %d has no slots", ErrRender, info.Index+1)
	}

	return &htmlCanvas{
		surface: s,
		info:    info,
		panels:  make([]plotpage.Renderable, len(info.Subjects)),
	}, nil
}

// Close writes the index page. It is a no-op when no page was emitted.
func (s *HTMLSurface) Close(context.Context) error {
	if len(s.pages) == 0 {
		return nil
	}

	path, err := s.renderer.RenderIndex(s.pages,
		plotpage.NewStat("Pages", strconv.Itoa(len(s.pages))),
		plotpage.NewStat("Keywords", strconv.Itoa(s.keywords)),
	)
	if err != nil {
		return fmt.Errorf("%w: index: %w", ErrRender, err)
	}

	s.index = path

	return nil
}

// IndexPath returns the written index file, or "" before Close.
func (s *HTMLSurface) IndexPath() string {
	return s.index
}

func pageMeta(index, total int, subjects []string) plotpage.PageMeta {
	filled := make([]string, 0, len(subjects))

	for _, subject := range subjects {
		if subject != "" {
			filled = append(filled, subject)
		}
	}

	return plotpage.PageMeta{
		ID:          fmt.Sprintf("page-%d", index+1),
		Title:       fmt.Sprintf("Page %d of %d", index+1, total),
		Description: strings.Join(filled, ", "),
	}
}

type htmlCanvas struct {
	surface *HTMLSurface
	info    PageInfo
	panels  []plotpage.Renderable
}

func (c *htmlCanvas) checkSlot(slot int) error {
	if slot < 0 || slot >= len(c.panels) {
		return fmt.Errorf("%w: slot %d out of range [0, %d)", ErrRender, slot, len(c.panels))
	}

	return nil
}

// Plot renders the chart eagerly so a broken chart fails its own slot
// rather than the page.
func (c *htmlCanvas) Plot(slot int, chart Chart) error {
	err := c.checkSlot(slot)
	if err != nil {
		return err
	}

	series := make([]plotpage.LineSeries, len(chart.Series))

	for i, s := range chart.Series {
		data := make([]plotpage.SeriesData, len(s.Values))
		for j, v := range s.Values {
			data[j] = v
		}

		series[i] = plotpage.LineSeries{Name: s.Name, Data: data}
	}

	line := plotpage.BuildLineChart(plotpage.NewChartOpts(c.surface.renderer.Theme),
		plotpage.Axes{Title: chart.Title, X: chart.XLabel, Y: chart.YLabel},
		chart.Labels, series)

	var buf bytes.Buffer

	err = plotpage.WrapChart(line).Render(&buf)
	if err != nil {
		return fmt.Errorf("%w: chart %q: %w", ErrRender, chart.Title, err)
	}

	c.panels[slot] = fragment(buf.Bytes())

	return nil
}

func (c *htmlCanvas) Text(slot int, text string, kind MarkerKind) error {
	err := c.checkSlot(slot)
	if err != nil {
		return err
	}

	markerKind := plotpage.MarkerInfo
	if kind == MarkerError {
		markerKind = plotpage.MarkerError
	}

	c.panels[slot] = plotpage.NewMarker(text, markerKind)

	return nil
}

func (c *htmlCanvas) Blank(slot int) error {
	err := c.checkSlot(slot)
	if err != nil {
		return err
	}

	c.panels[slot] = plotpage.Blank{}

	return nil
}

func (c *htmlCanvas) Finalize() (string, error) {
	meta := pageMeta(c.info.Index, c.info.Total, c.info.Subjects)

	var prev, next plotpage.PageMeta

	if c.info.Index > 0 {
		prev = pageMeta(c.info.Index-1, c.info.Total, nil)
	}

	if c.info.Index+1 < c.info.Total {
		next = pageMeta(c.info.Index+1, c.info.Total, nil)
	}

	path, err := c.surface.renderer.RenderPage(meta, prev, next, []plotpage.Section{
		{Title: sectionTitle, Subtitle: meta.Description, Chart: plotpage.NewGrid(1, c.panels...)},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRender, meta.ID, err)
	}

	c.surface.pages = append(c.surface.pages, meta)

	for _, subject := range c.info.Subjects {
		if subject != "" {
			c.surface.keywords++
		}
	}

	return path, nil
}

// fragment is pre-rendered panel HTML.
type fragment []byte

func (f fragment) Render(w io.Writer) error {
	_, err := w.Write(f)

	return err
}
