package plotpage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	templates     *template.Template
	templatesOnce sync.Once
	errTemplates  error
)

// getTemplates returns the parsed templates, loading them once.
func getTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		var parseErr error

		templates, parseErr = template.New("").ParseFS(templateFS, "templates/*.html")
		if parseErr != nil {
			errTemplates = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})

	return templates, errTemplates
}

// renderTemplate renders a named template with the given data.
func renderTemplate(name string, data any) (template.HTML, error) {
	tmpl, err := getTemplates()
	if err != nil {
		return "", fmt.Errorf("loading templates: %w", err)
	}

	var buf bytes.Buffer

	err = tmpl.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil
}

type pageData struct {
	Title       string
	ProjectName string
	Footer      string
	DarkClass   string
	Theme       ThemeConfig
	ExtraCSS    template.CSS
	Header      template.HTML
	Content     template.HTML
}

type headerData struct {
	ProjectName string
	Title       string
	Description string
}

type sectionData struct {
	Title    string
	Subtitle string
	Chart    template.HTML
}

type gridData struct {
	ColClass string
	Items    []template.HTML
}

type markerData struct {
	Text       string
	ColorClass string
}

type statData struct {
	Label string
	Value string
}

type navData struct {
	Prev  string
	Next  string
	Index string
}

type indexData struct {
	Stats template.HTML
	Pages []PageMeta
}
