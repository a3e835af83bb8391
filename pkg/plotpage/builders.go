package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// PanelHeight is the rendered height of one grid panel.
const PanelHeight = "360px"

// SeriesData represents a single numeric value in a chart series.
type SeriesData any

// LineSeries defines the properties and data for a single line chart series.
type LineSeries struct {
	Name  string
	Data  []SeriesData
	Color string // Optional, uses the theme palette if empty.
}

// Axes carries the title and axis names of a chart.
type Axes struct {
	Title string
	X     string
	Y     string
}

// BuildLineChart constructs a fully configured go-echarts Line chart.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildLineChart(cOpts *ChartOpts, axes Axes, labels []string, series []LineSeries) *charts.Line {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init("100%", PanelHeight)),
		charts.WithTitleOpts(cOpts.Title(axes.Title)),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.XAxis(axes.X)),
		charts.WithYAxisOpts(cOpts.YAxis(axes.Y)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	line.SetXAxis(labels)

	for i, s := range series {
		lineData := make([]opts.LineData, len(s.Data))
		for j, v := range s.Data {
			lineData[j] = opts.LineData{Value: v}
		}

		color := s.Color
		if color == "" {
			color = cOpts.SeriesColor(i)
		}

		line.AddSeries(s.Name, lineData,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
		)
	}

	return line
}
