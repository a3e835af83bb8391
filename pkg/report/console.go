package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Sumatoshi-tech/trendscope/pkg/artifact"
	"github.com/Sumatoshi-tech/trendscope/pkg/terminal"
	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
)

const (
	summaryLabelWidth = 10
	summaryBarWidth   = 20
)

// Console prints result previews and run summaries. It is not safe for
// concurrent use; the assembler prints in input order from one goroutine.
type Console struct {
	out     io.Writer
	term    terminal.Config
	preview int
	title   cases.Caser
}

// NewConsole creates a Console that shows at most previewRows rows per
// table. A non-positive previewRows prints whole tables.
func NewConsole(out io.Writer, term terminal.Config, previewRows int) *Console {
	return &Console{
		out:     out,
		term:    term,
		preview: previewRows,
		title:   cases.Title(language.English),
	}
}

// CountryName turns a snake_case country subject into a display name.
func (c *Console) CountryName(country string) string {
	return c.title.String(strings.ReplaceAll(country, "_", " "))
}

// Header prints the run banner.
func (c *Console) Header(runID string) {
	fmt.Fprintln(c.out, terminal.DrawHeader("TRENDSCOPE", "run "+runID, c.term.Width))
}

// Result prints the heading and preview, or the no-data or failure line,
// for one normalized result.
func (c *Console) Result(r trends.QueryResult) {
	spec := r.Spec

	switch spec.Kind {
	case trends.KindTrendingTopics:
		c.single(r,
			fmt.Sprintf("Top trending topics in %s:", c.CountryName(spec.Subject)),
			fmt.Sprintf("No trending topics available for '%s'", spec.Subject),
			fmt.Sprintf("Unable to fetch top trending topics for '%s'", spec.Subject))
	case trends.KindRegionalInterest:
		c.single(r,
			fmt.Sprintf("Interest in '%s' by region:", spec.Subject),
			fmt.Sprintf("No regional data available for '%s'", spec.Subject),
			fmt.Sprintf("Unable to fetch interest by region for '%s'", spec.Subject))
	case trends.KindRelatedQueries:
		c.single(r,
			fmt.Sprintf("Related queries for '%s':", spec.Subject),
			fmt.Sprintf("No related queries available for '%s'", spec.Subject),
			fmt.Sprintf("Unable to fetch related queries for '%s'", spec.Subject))
	case trends.KindTimeSeries:
		c.single(r,
			fmt.Sprintf("Interest in '%s' over time:", spec.Subject),
			fmt.Sprintf("No data for '%s' during the selected period", spec.Subject),
			fmt.Sprintf("Unable to fetch interest over time for '%s'", spec.Subject))
	case trends.KindPlatformInterest:
		c.single(r,
			fmt.Sprintf("Interest in '%s' on platform '%s':", spec.Subject, spec.Property),
			fmt.Sprintf("No data for platform '%s' and keyword '%s'", spec.Property, spec.Subject),
			fmt.Sprintf("Unable to fetch interest by platform for '%s'", spec.Subject))
	case trends.KindTopicBreakdown:
		c.topics(r)
	}
}

func (c *Console) single(r trends.QueryResult, heading, empty, failure string) {
	switch r.Status {
	case trends.StatusSuccess:
		c.table(heading, r.Table)
	case trends.StatusEmpty:
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, c.term.Colorize(empty, terminal.ColorYellow))
	case trends.StatusFailure:
		c.failure(failure, r.Reason)
	}
}

func (c *Console) topics(r trends.QueryResult) {
	spec := r.Spec

	switch r.Status {
	case trends.StatusFailure:
		c.failure(fmt.Sprintf("Unable to fetch topics in category %d for '%s'", spec.Category, spec.Subject), r.Reason)
	case trends.StatusEmpty:
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, c.term.Colorize(
			fmt.Sprintf("No data for category '%d' and keyword '%s'", spec.Category, spec.Subject),
			terminal.ColorYellow))
	case trends.StatusSuccess:
		for _, tt := range trends.TopicTypes {
			section, ok := r.Section(tt)
			if ok && section.Status == trends.StatusSuccess {
				c.table(fmt.Sprintf("Top topics in category '%d' for '%s' (%s):", spec.Category, spec.Subject, tt),
					section.Table)

				continue
			}

			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, c.term.Colorize(
				fmt.Sprintf("No data for category '%d' and type '%s' for '%s'", spec.Category, tt, spec.Subject),
				terminal.ColorYellow))
		}
	}
}

func (c *Console) failure(prefix, reason string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.term.Colorize(prefix+": "+reason, terminal.ColorRed))
}

func (c *Console) table(heading string, t *trends.Table) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.term.Colorize(heading, terminal.ColorCyan))
	fmt.Fprintln(c.out, RenderTable(t.Head(c.preview)))
}

// RenderTable formats a table with go-pretty. The index column, when
// present, comes first.
func RenderTable(t *trends.Table) string {
	if t == nil {
		return ""
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Format.Header = text.FormatDefault

	header := table.Row{}
	if t.Index != "" {
		header = append(header, t.Index)
	}

	for _, col := range t.Columns {
		header = append(header, col)
	}

	tbl.AppendHeader(header)

	for _, r := range t.Rows {
		row := make(table.Row, 0, len(header))
		if t.Index != "" {
			row = append(row, r.Key)
		}

		for _, col := range t.Columns {
			row = append(row, artifact.FormatCell(r.Values[col]))
		}

		tbl.AppendRow(row)
	}

	return tbl.Render()
}

// WriteFailure prints an artifact that could not be saved.
func (c *Console) WriteFailure(name string, err error) {
	fmt.Fprintln(c.out, c.term.Colorize(fmt.Sprintf("Unable to save '%s': %v", name, err), terminal.ColorRed))
}

// Saved prints a written artifact.
func (c *Console) Saved(a artifact.Artifact) {
	fmt.Fprintln(c.out, c.term.Colorize("Saved "+a.Path, terminal.ColorGray))
}

// Summary prints the per-status counts of a run.
func (c *Console) Summary(s *Summary) {
	counts := s.Counts()
	total := len(s.Results)

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, terminal.DrawSeparator(c.term.Width))
	fmt.Fprintf(c.out, "Queries: %d  Artifacts: %d  Write failures: %d  Pages: %d\n",
		total, len(s.Artifacts), len(s.WriteFailures), len(s.Pages))

	statuses := []struct {
		status trends.Status
		color  terminal.Color
	}{
		{trends.StatusSuccess, terminal.ColorGreen},
		{trends.StatusEmpty, terminal.ColorYellow},
		{trends.StatusFailure, terminal.ColorRed},
	}

	for _, st := range statuses {
		fraction := 0.0
		if total > 0 {
			fraction = float64(counts[st.status]) / float64(total)
		}

		line := terminal.DrawPercentBar(st.status.String(), fraction, counts[st.status], summaryLabelWidth, summaryBarWidth)
		fmt.Fprintln(c.out, c.term.Colorize(line, st.color))
	}

	for _, p := range s.Pages {
		if p.Err != nil {
			fmt.Fprintln(c.out, c.term.Colorize(fmt.Sprintf("Page %d failed: %v", p.Index+1, p.Err), terminal.ColorRed))

			continue
		}

		fmt.Fprintf(c.out, "Page %d: %s\n", p.Index+1, p.Location)
	}
}
