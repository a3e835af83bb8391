package plotpage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	indexFileName    = "index.html"
	indexTitle       = "Trend Report"
	indexDescription = "Interest over time, one page per group of keywords."
	dirPerm          = 0o750
)

// PageMeta describes a rendered page for navigation and the index.
type PageMeta struct {
	ID          string // File name stem, e.g. "page-1".
	Title       string
	Description string
}

// FileName returns the HTML file name of the page.
func (m PageMeta) FileName() string {
	return m.ID + ".html"
}

// MultiPageRenderer writes one standalone HTML file per page plus an index.
type MultiPageRenderer struct {
	OutputDir string
	Title     string
	Footer    string
	Theme     Theme
}

// RenderPage writes <OutputDir>/<meta.ID>.html. prev and next are the
// neighbouring pages for navigation; either may be zero.
func (r *MultiPageRenderer) RenderPage(meta, prev, next PageMeta, sections []Section) (string, error) {
	nav := navData{Index: indexFileName}

	if prev.ID != "" {
		nav.Prev = prev.FileName()
	}

	if next.ID != "" {
		nav.Next = next.FileName()
	}

	navHTML, err := renderTemplate("nav.html", nav)
	if err != nil {
		return "", fmt.Errorf("render nav: %w", err)
	}

	page := NewPage(meta.Title, meta.Description).WithTheme(r.Theme)
	page.ProjectName = r.Title
	page.Footer = r.Footer
	page.Sections = append([]Section{{Chart: rawHTML(navHTML)}}, sections...)

	return r.write(meta.FileName(), page)
}

// RenderIndex writes <OutputDir>/index.html linking every page.
func (r *MultiPageRenderer) RenderIndex(pages []PageMeta, stats ...*Stat) (string, error) {
	items := make([]Renderable, len(stats))
	for i, s := range stats {
		items[i] = s
	}

	statsHTML, err := renderFragment(NewGrid(len(stats), items...))
	if err != nil {
		return "", fmt.Errorf("render index stats: %w", err)
	}

	content, err := renderTemplate("index.html", indexData{Stats: statsHTML, Pages: pages})
	if err != nil {
		return "", fmt.Errorf("render index content: %w", err)
	}

	page := NewPage(indexTitle, indexDescription).WithTheme(r.Theme)
	page.ProjectName = r.Title
	page.Footer = r.Footer
	page.Sections = []Section{{Chart: rawHTML(content)}}

	return r.write(indexFileName, page)
}

func (r *MultiPageRenderer) write(name string, page *Page) (string, error) {
	err := os.MkdirAll(r.OutputDir, dirPerm)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", r.OutputDir, err)
	}

	outPath := filepath.Join(r.OutputDir, name)

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	err = HTMLRenderer{}.Render(f, page)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	return outPath, nil
}
