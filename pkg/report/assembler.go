package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/trendscope/pkg/artifact"
	"github.com/Sumatoshi-tech/trendscope/pkg/observability"
	"github.com/Sumatoshi-tech/trendscope/pkg/paginate"
	"github.com/Sumatoshi-tech/trendscope/pkg/terminal"
	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
)

const (
	spanRun  = "report.run"
	spanPage = "report.page"

	attrRunID     = "report.run_id"
	attrPageIndex = "report.page.index"
	attrPanels    = "report.page.panels"

	statusSuccess = "success"
	statusFailure = "failure"
)

// ArtifactWriter persists one table.
type ArtifactWriter interface {
	Write(table *trends.Table, name string, format artifact.Format) (artifact.Artifact, error)
}

// Assembler drives a report run: it fetches and normalizes every planned
// query, prints and persists each result, and renders the chart pages.
type Assembler struct {
	fetcher *trends.Fetcher
	writer  ArtifactWriter
	console *Console
	surface Surface
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *observability.ReportMetrics
	runID   string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithConsole sets the console printer. The default discards output.
func WithConsole(console *Console) Option {
	return func(a *Assembler) {
		if console != nil {
			a.console = console
		}
	}
}

// WithSurface sets the chart surface. Without one the visualization pass
// is skipped.
func WithSurface(surface Surface) Option {
	return func(a *Assembler) {
		a.surface = surface
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithTracer sets the tracer for run and page spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Assembler) {
		if tracer != nil {
			a.tracer = tracer
		}
	}
}

// WithMetrics sets the report instruments.
func WithMetrics(metrics *observability.ReportMetrics) Option {
	return func(a *Assembler) {
		a.metrics = metrics
	}
}

// WithRunID tags the summary and the run span.
func WithRunID(runID string) Option {
	return func(a *Assembler) {
		a.runID = runID
	}
}

// NewAssembler creates an Assembler around a fetcher and an artifact writer.
func NewAssembler(fetcher *trends.Fetcher, writer ArtifactWriter, opts ...Option) *Assembler {
	a := &Assembler{
		fetcher: fetcher,
		writer:  writer,
		console: NewConsole(io.Discard, terminal.Config{NoColor: true}, 0),
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer(""),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Run executes the plan in order: the leading queries, the visualization
// pass, then the trailing queries. Query, write and render failures are
// recorded in the summary; only an invalid page size or a cancelled
// context stop the run.
func (a *Assembler) Run(ctx context.Context, plan Plan) (*Summary, error) {
	summary := &Summary{RunID: a.runID}

	if plan.Visualize && plan.PerPage <= 0 {
		return summary, fmt.Errorf("run report: %w: %d", paginate.ErrInvalidPageSize, plan.PerPage)
	}

	ctx, span := a.tracer.Start(ctx, spanRun, trace.WithAttributes(attribute.String(attrRunID, a.runID)))
	defer span.End()

	a.logger.InfoContext(ctx, "report started",
		slog.Int("countries", len(plan.Countries)),
		slog.Int("keywords", len(plan.Keywords)),
		slog.Int("workers", max(plan.Workers, 1)),
	)

	err := a.runBatch(ctx, plan, plan.Leading(), summary)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return summary, err
	}

	if plan.Visualize {
		summary.Pages, err = a.Visualize(ctx, plan)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())

			return summary, err
		}
	}

	err = a.runBatch(ctx, plan, plan.Trailing(), summary)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return summary, err
	}

	counts := summary.Counts()
	a.logger.InfoContext(ctx, "report finished",
		slog.Int("success", counts[trends.StatusSuccess]),
		slog.Int("empty", counts[trends.StatusEmpty]),
		slog.Int("failure", counts[trends.StatusFailure]),
		slog.Int("artifacts", len(summary.Artifacts)),
		slog.Int("write_failures", len(summary.WriteFailures)),
		slog.Int("pages", len(summary.Pages)),
	)

	return summary, nil
}

// runBatch fetches the specs and handles the results in input order.
func (a *Assembler) runBatch(ctx context.Context, plan Plan, specs []trends.QuerySpec, summary *Summary) error {
	if plan.Workers <= 1 {
		for _, spec := range specs {
			ctxErr := ctx.Err()
			if ctxErr != nil {
				return fmt.Errorf("run report: %w", ctxErr)
			}

			a.handle(ctx, plan, a.fetch(ctx, spec), summary)
		}

		return nil
	}

	results := a.fetchAll(ctx, specs, plan.Workers)

	ctxErr := ctx.Err()
	if ctxErr != nil {
		return fmt.Errorf("run report: %w", ctxErr)
	}

	for _, r := range results {
		a.handle(ctx, plan, r, summary)
	}

	return nil
}

func (a *Assembler) fetch(ctx context.Context, spec trends.QuerySpec) trends.QueryResult {
	return trends.Normalize(a.fetcher.Fetch(ctx, spec))
}

// fetchAll fetches specs concurrently with at most workers in flight.
// Results keep the input order.
func (a *Assembler) fetchAll(ctx context.Context, specs []trends.QuerySpec, workers int) []trends.QueryResult {
	results := make([]trends.QueryResult, len(specs))

	var g errgroup.Group

	g.SetLimit(workers)

	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			results[i] = a.fetch(ctx, spec)

			return nil
		})
	}

	// Fetch never returns an error; outcomes live in results.
	_ = g.Wait()

	return results
}

func (a *Assembler) handle(ctx context.Context, plan Plan, r trends.QueryResult, summary *Summary) {
	summary.Results = append(summary.Results, r)
	a.console.Result(r)
	a.persist(ctx, plan.Format, r, summary)
}

// persist writes the tables of a successful result. Topic breakdowns get
// one artifact per non-empty topic type.
func (a *Assembler) persist(ctx context.Context, format artifact.Format, r trends.QueryResult, summary *Summary) {
	if r.Status != trends.StatusSuccess {
		return
	}

	format = format.Resolve(r.Spec.Kind)

	if r.Spec.Kind == trends.KindTopicBreakdown {
		for _, s := range r.Sections {
			if s.Status != trends.StatusSuccess {
				continue
			}

			a.write(ctx, s.Table, fmt.Sprintf("%s_%s", r.Spec.ReportName(), s.Type), format, summary)
		}

		return
	}

	a.write(ctx, r.Table, r.Spec.ReportName(), format, summary)
}

func (a *Assembler) write(ctx context.Context, table *trends.Table, name string, format artifact.Format, summary *Summary) {
	written, err := a.writer.Write(table, name, format)
	if err != nil {
		a.logger.WarnContext(ctx, "artifact write failed", slog.String("name", name), slog.Any("error", err))
		a.console.WriteFailure(name, err)
		a.metrics.RecordArtifact(ctx, statusFailure)
		summary.WriteFailures = append(summary.WriteFailures, WriteFailure{Name: name, Err: err})

		return
	}

	a.console.Saved(written)
	a.metrics.RecordArtifact(ctx, statusSuccess)
	summary.Artifacts = append(summary.Artifacts, written)
}

// Visualize paginates the plan keywords and renders one page per group,
// fetching interest over time for every populated slot. A failing page is
// recorded and the next page still renders.
func (a *Assembler) Visualize(ctx context.Context, plan Plan) ([]PageOutcome, error) {
	pages, err := paginate.Paginate(plan.Keywords, plan.PerPage)
	if err != nil {
		return nil, fmt.Errorf("visualize: %w", err)
	}

	if a.surface == nil {
		a.logger.InfoContext(ctx, "visualization skipped, no surface configured")

		return nil, nil
	}

	outcomes := make([]PageOutcome, 0, len(pages))

	for _, page := range pages {
		ctxErr := ctx.Err()
		if ctxErr != nil {
			return outcomes, fmt.Errorf("visualize: %w", ctxErr)
		}

		outcomes = append(outcomes, a.renderPage(ctx, plan, page, len(pages)))
	}

	closeErr := guard(func() error { return a.surface.Close(ctx) })
	if closeErr != nil {
		a.logger.WarnContext(ctx, "closing chart surface failed", slog.Any("error", closeErr))
	}

	return outcomes, nil
}

func (a *Assembler) renderPage(ctx context.Context, plan Plan, page paginate.Page[string], total int) (outcome PageOutcome) {
	ctx = observability.ContextWithLogAttrs(ctx, slog.Int("page", page.Index+1))

	ctx, span := a.tracer.Start(ctx, spanPage, trace.WithAttributes(
		attribute.Int(attrPageIndex, page.Index),
		attribute.Int(attrPanels, len(page.Slots)),
	))

	outcome.Index = page.Index

	defer func() {
		if r := recover(); r != nil {
			outcome.Err = fmt.Errorf("%w: page %d: panic: %v", ErrRender, page.Index+1, r)
		}

		if outcome.Err != nil {
			span.SetStatus(codes.Error, outcome.Err.Error())
			a.logger.WarnContext(ctx, "page render failed", slog.Any("error", outcome.Err))
		}

		span.End()
	}()

	subjects := make([]string, len(page.Slots))
	for i, slot := range page.Slots {
		subjects[i] = slot.Value
	}

	canvas, err := a.surface.NewPage(ctx, PageInfo{Index: page.Index, Total: total, Subjects: subjects})
	if err != nil {
		outcome.Err = fmt.Errorf("%w: page %d: %w", ErrRender, page.Index+1, err)

		return outcome
	}

	results := a.pageResults(ctx, plan, page)

	for i, slot := range page.Slots {
		outcome.Panels = append(outcome.Panels, a.drawPanel(ctx, canvas, i, slot, results[i]))
	}

	var location string

	err = guard(func() error {
		var finalizeErr error

		location, finalizeErr = canvas.Finalize()

		return finalizeErr
	})
	if err != nil {
		outcome.Err = fmt.Errorf("page %d: %w", page.Index+1, err)

		return outcome
	}

	outcome.Location = location

	a.logger.InfoContext(ctx, "page rendered", slog.String("location", location))

	return outcome
}

// pageResults fetches interest over time for the populated slots of a page.
// The returned slice is slot-aligned.
func (a *Assembler) pageResults(ctx context.Context, plan Plan, page paginate.Page[string]) []trends.QueryResult {
	results := make([]trends.QueryResult, len(page.Slots))

	var (
		specs []trends.QuerySpec
		slots []int
	)

	for i, slot := range page.Slots {
		if !slot.Filled {
			continue
		}

		specs = append(specs, trends.TimeSeriesSpec(slot.Value, plan.VisualizeTimeframe))
		slots = append(slots, i)
	}

	var fetched []trends.QueryResult

	if plan.Workers <= 1 {
		fetched = make([]trends.QueryResult, len(specs))
		for i, spec := range specs {
			fetched[i] = a.fetch(ctx, spec)
		}
	} else {
		fetched = a.fetchAll(ctx, specs, plan.Workers)
	}

	for i, slot := range slots {
		results[slot] = fetched[i]
	}

	return results
}

// drawPanel draws one slot. A failing draw is replaced by an error marker
// in the same slot.
func (a *Assembler) drawPanel(ctx context.Context, canvas Canvas, slot int, s paginate.Slot[string], r trends.QueryResult) PanelOutcome {
	if !s.Filled {
		err := guard(func() error { return canvas.Blank(slot) })
		if err != nil {
			a.logger.WarnContext(ctx, "blank panel failed", slog.Int("slot", slot), slog.Any("error", err))
		}

		a.metrics.RecordPanel(ctx, PanelBlank)

		return PanelOutcome{Outcome: PanelBlank}
	}

	outcome := PanelOutcome{Subject: s.Value}

	var err error

	switch r.Status {
	case trends.StatusSuccess:
		outcome.Outcome = PanelChart
		err = guard(func() error {
			chart, chartErr := ChartFromResult(r)
			if chartErr != nil {
				return chartErr
			}

			return canvas.Plot(slot, chart)
		})
	case trends.StatusEmpty:
		outcome.Outcome = PanelNoData
		err = guard(func() error { return canvas.Text(slot, NoDataText, MarkerNoData) })
	case trends.StatusFailure:
		outcome.Outcome = PanelError
		outcome.Reason = r.Reason
		err = guard(func() error { return canvas.Text(slot, ErrorText(r.Reason), MarkerError) })
	}

	if err != nil {
		a.logger.WarnContext(ctx, "panel render failed",
			slog.String("subject", s.Value), slog.Int("slot", slot), slog.Any("error", err))

		outcome.Outcome = PanelError
		outcome.Reason = err.Error()

		fallbackErr := guard(func() error { return canvas.Text(slot, ErrorText(err.Error()), MarkerError) })
		if fallbackErr != nil {
			a.logger.WarnContext(ctx, "error marker failed", slog.Int("slot", slot), slog.Any("error", fallbackErr))
		}
	}

	a.metrics.RecordPanel(ctx, outcome.Outcome)

	return outcome
}

// ChartFromResult builds the "interest over time" chart of a successful
// time-series result, one point per row.
func ChartFromResult(r trends.QueryResult) (Chart, error) {
	subject := r.Spec.Subject
	if !r.Table.HasColumn(subject) {
		return Chart{}, fmt.Errorf("%w: no %q column", ErrRender, subject)
	}

	labels := make([]string, len(r.Table.Rows))
	values := make([]float64, len(r.Table.Rows))

	for i, row := range r.Table.Rows {
		v, ok := row.Float(subject)
		if !ok {
			return Chart{}, fmt.Errorf("%w: non-numeric value %v at %s", ErrRender, row.Values[subject], row.Key)
		}

		labels[i] = row.Key
		values[i] = v
	}

	return Chart{
		Title:  fmt.Sprintf("Interest in '%s' over time", subject),
		XLabel: "Date",
		YLabel: "Interest score",
		Labels: labels,
		Series: []Series{{Name: subject, Values: values}},
	}, nil
}
