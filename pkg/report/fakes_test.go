package report_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Sumatoshi-tech/trendscope/pkg/artifact"
	"github.com/Sumatoshi-tech/trendscope/pkg/report"
	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
)

var errQuota = errors.New("quota exceeded")

func timeSeries(subject string, values ...float64) *trends.Table {
	table := &trends.Table{Index: "date", Columns: []string{subject, "isPartial"}}

	for i, v := range values {
		table.Rows = append(table.Rows, trends.Row{
			Key:    fmt.Sprintf("2024-01-%02d", i+1),
			Values: map[string]any{subject: v, "isPartial": false},
		})
	}

	return table
}

// fakeProvider answers every kind with a small fixed table and fails for
// the configured subjects.
type fakeProvider struct {
	mu    sync.Mutex
	calls []trends.Query
	fail  map[string]error
	empty map[string]bool
}

func (p *fakeProvider) Query(_ context.Context, q trends.Query) (*trends.Response, error) {
	p.mu.Lock()
	p.calls = append(p.calls, q)
	p.mu.Unlock()

	subject := q.Subjects[0]

	if err, ok := p.fail[subject]; ok {
		return nil, err
	}

	if p.empty[subject] {
		return &trends.Response{}, nil
	}

	switch q.Kind {
	case trends.KindTrendingTopics:
		return &trends.Response{Table: &trends.Table{
			Columns: []string{"Trending Topics"},
			Rows:    []trends.Row{{Values: map[string]any{"Trending Topics": "eclipse"}}},
		}}, nil
	case trends.KindRegionalInterest:
		return &trends.Response{Table: &trends.Table{
			Index:   "geoName",
			Columns: []string{subject},
			Rows: []trends.Row{
				{Key: "Poland", Values: map[string]any{subject: 40.0}},
				{Key: "Japan", Values: map[string]any{subject: 90.0}},
			},
		}}, nil
	case trends.KindRelatedQueries:
		return &trends.Response{Sections: map[trends.TopicType]*trends.Table{
			trends.TopicTop: {
				Columns: []string{"query", "value"},
				Rows:    []trends.Row{{Values: map[string]any{"query": subject + " news", "value": 100.0}}},
			},
		}}, nil
	case trends.KindTopicBreakdown:
		return &trends.Response{Sections: map[trends.TopicType]*trends.Table{
			trends.TopicTop: {
				Columns: []string{"topic_title", "value"},
				Rows:    []trends.Row{{Values: map[string]any{"topic_title": "League", "value": 100.0}}},
			},
			trends.TopicRising: {Columns: []string{"topic_title", "value"}},
		}}, nil
	default:
		return &trends.Response{Table: timeSeries(subject, 10, 42, 17)}, nil
	}
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.calls)
}

type recordingWriter struct {
	mu    sync.Mutex
	names []string
	fail  map[string]bool
}

func (w *recordingWriter) Write(table *trends.Table, name string, format artifact.Format) (artifact.Artifact, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	file := artifact.FileName(name, format)

	if w.fail[name] {
		return artifact.Artifact{}, fmt.Errorf("%w: %s: disk full", artifact.ErrWrite, file)
	}

	w.names = append(w.names, file)

	return artifact.Artifact{Name: name, Path: file, Format: format, Rows: table.Len()}, nil
}

type drawing struct {
	op    string // "plot", "text" or "blank"
	text  string
	kind  report.MarkerKind
	chart report.Chart
}

type recordingCanvas struct {
	info      report.PageInfo
	slots     []drawing
	failPlot  bool
	finalized bool
}

func (c *recordingCanvas) Plot(slot int, chart report.Chart) error {
	if c.failPlot {
		return errors.New("renderer exploded")
	}

	c.slots[slot] = drawing{op: "plot", chart: chart}

	return nil
}

func (c *recordingCanvas) Text(slot int, text string, kind report.MarkerKind) error {
	c.slots[slot] = drawing{op: "text", text: text, kind: kind}

	return nil
}

func (c *recordingCanvas) Blank(slot int) error {
	c.slots[slot] = drawing{op: "blank"}

	return nil
}

func (c *recordingCanvas) Finalize() (string, error) {
	c.finalized = true

	return fmt.Sprintf("page-%d", c.info.Index+1), nil
}

type recordingSurface struct {
	pages     []*recordingCanvas
	failPage  map[int]bool
	panicPage map[int]bool
	failPlot  bool
	closed    bool
}

func (s *recordingSurface) NewPage(_ context.Context, info report.PageInfo) (report.Canvas, error) {
	if s.panicPage[info.Index] {
		panic("surface crashed")
	}

	if s.failPage[info.Index] {
		return nil, errors.New("cannot open page")
	}

	c := &recordingCanvas{info: info, slots: make([]drawing, len(info.Subjects)), failPlot: s.failPlot}
	s.pages = append(s.pages, c)

	return c, nil
}

func (s *recordingSurface) Close(context.Context) error {
	s.closed = true

	return nil
}
