package report

import (
	"context"
	"errors"
	"fmt"
)

// ErrRender wraps every failure raised while drawing a panel or emitting a
// page.
var ErrRender = errors.New("render")

// MarkerKind tags a text panel.
type MarkerKind int

// Text panel kinds.
const (
	MarkerNoData MarkerKind = iota
	MarkerError
)

// Panel outcomes recorded per slot.
const (
	PanelChart  = "chart"
	PanelNoData = "no_data"
	PanelError  = "error"
	PanelBlank  = "blank"
)

// NoDataText is the marker drawn for keywords without data.
const NoDataText = "No data"

// ErrorText returns the marker drawn for a failed keyword.
func ErrorText(reason string) string {
	return "Error: " + reason
}

// Series is one named line of a chart.
type Series struct {
	Name   string
	Values []float64
}

// Chart is a single time-series panel.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Series []Series
}

// PageInfo describes the page a Canvas draws. Subjects has one entry per
// slot; blank slots hold "".
type PageInfo struct {
	Index    int
	Total    int
	Subjects []string
}

// Surface produces one Canvas per page.
type Surface interface {
	NewPage(ctx context.Context, info PageInfo) (Canvas, error)
	// Close is called once after the last page.
	Close(ctx context.Context) error
}

// Canvas draws the panels of one page. Slots are addressed by position; a
// later draw to the same slot replaces the earlier one.
type Canvas interface {
	Plot(slot int, chart Chart) error
	Text(slot int, text string, kind MarkerKind) error
	Blank(slot int) error
	// Finalize emits the page and returns its location.
	Finalize() (string, error)
}

// guard runs fn and converts a panic into an ErrRender error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrRender, r)
		}
	}()

	err = fn()
	if err != nil && !errors.Is(err, ErrRender) {
		err = fmt.Errorf("%w: %w", ErrRender, err)
	}

	return err
}
