// Package plotpage renders report pages as standalone HTML built from
// go-echarts charts and small layout components.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = len("</style>")

// Renderable is the interface for page components.
type Renderable interface {
	Render(w io.Writer) error
}

// Section represents a titled block within a page.
type Section struct {
	Title    string
	Subtitle string
	Chart    Renderable
}

// Page represents a complete report page.
type Page struct {
	Title       string
	Description string
	ProjectName string
	Footer      string
	Theme       Theme
	Sections    []Section
}

// NewPage creates a new report page.
func NewPage(title, description string) *Page {
	return &Page{
		Title:       title,
		Description: description,
		ProjectName: "trendscope",
		Theme:       ThemeDark,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return HTMLRenderer{}.Render(w, p)
}

// HTMLRenderer renders pages as HTML.
type HTMLRenderer struct {
	ExtraCSS string
}

// Render writes the page as HTML to the writer.
func (r HTMLRenderer) Render(w io.Writer, page *Page) error {
	header, err := renderTemplate("header.html", headerData{
		ProjectName: page.ProjectName,
		Title:       page.Title,
		Description: page.Description,
	})
	if err != nil {
		return fmt.Errorf("render header: %w", err)
	}

	var sectionsHTML bytes.Buffer

	for _, section := range page.Sections {
		sectionHTML, sectionErr := r.renderSection(section)
		if sectionErr != nil {
			return fmt.Errorf("render section %q: %w", section.Title, sectionErr)
		}

		sectionsHTML.WriteString(string(sectionHTML))
	}

	darkClass := ""
	if page.Theme == ThemeDark {
		darkClass = "dark"
	}

	html, err := renderTemplate("page.html", pageData{
		Title:       page.Title,
		ProjectName: page.ProjectName,
		Footer:      page.Footer,
		DarkClass:   darkClass,
		Theme:       GetThemeConfig(page.Theme),
		ExtraCSS:    template.CSS(r.ExtraCSS),
		Header:      header,
		Content:     template.HTML(sectionsHTML.String()),
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = w.Write([]byte(html))
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func (r HTMLRenderer) renderSection(section Section) (template.HTML, error) {
	var content template.HTML

	if section.Chart != nil {
		fragment, err := renderFragment(section.Chart)
		if err != nil {
			return "", err
		}

		content = fragment
	}

	return renderTemplate("section.html", sectionData{
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Chart:    content,
	})
}

// ChartWrapper wraps an echarts chart so that it renders as a fragment
// instead of a full HTML document.
type ChartWrapper struct {
	chart Renderable
}

// WrapChart wraps an echarts chart to render only the div and script.
func WrapChart(chart Renderable) *ChartWrapper {
	return &ChartWrapper{chart: chart}
}

// Render writes the chart element and script without a full HTML page.
func (cw *ChartWrapper) Render(w io.Writer) error {
	if cw.chart == nil {
		return nil
	}

	content, err := renderFragment(cw.chart)
	if err != nil {
		return err
	}

	_, err = w.Write([]byte(content))
	if err != nil {
		return fmt.Errorf("writing chart content: %w", err)
	}

	return nil
}

func renderFragment(r Renderable) (template.HTML, error) {
	var buf bytes.Buffer

	err := r.Render(&buf)
	if err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return template.HTML(extractChartContent(buf.String())), nil
}

// extractChartContent strips the document shell go-echarts emits around a
// chart. Fragments that are not full documents are returned unchanged.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			return content
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			return content
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}
}

// rawHTML is a Renderable that writes pre-rendered HTML.
type rawHTML template.HTML

// Render writes the raw HTML content.
func (r rawHTML) Render(w io.Writer) error {
	_, err := w.Write([]byte(r))
	if err != nil {
		return fmt.Errorf("write raw html: %w", err)
	}

	return nil
}
