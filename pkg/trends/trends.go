// Package trends defines the query/result model for search-trend reports
// and the per-subject fetch and normalize steps.
package trends

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Sumatoshi-tech/trendscope/pkg/safeconv"
)

// Kind identifies one of the six report types.
type Kind int

// Report kinds.
const (
	KindTrendingTopics Kind = iota
	KindRegionalInterest
	KindRelatedQueries
	KindTopicBreakdown
	KindTimeSeries
	KindPlatformInterest
)

// Default query parameters.
const (
	DefaultShortTimeframe = "now 1-d"
	DefaultLongTimeframe  = "today 12-m"
	DefaultPlatform       = "web"
)

var kindNames = map[Kind]string{
	KindTrendingTopics:   "trending",
	KindRegionalInterest: "interest_by_region",
	KindRelatedQueries:   "related_queries",
	KindTopicBreakdown:   "related_topics",
	KindTimeSeries:       "interest_over_time",
	KindPlatformInterest: "interest_by_platform",
}

// String returns the report-kind name used in artifact file names.
func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return name
}

// ErrUnknownKind is returned by ParseKind for unsupported names.
var ErrUnknownKind = errors.New("unknown report kind")

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// TopicType tags a sub-table of a related-queries or related-topics bundle.
type TopicType string

// Known topic types, in provider order.
const (
	TopicTop    TopicType = "top"
	TopicRising TopicType = "rising"
)

// TopicTypes lists every known topic type in display order.
var TopicTypes = []TopicType{TopicTop, TopicRising}

// QuerySpec describes a single query for a single subject.
// It is a value type; copies never share state.
type QuerySpec struct {
	Subject   string
	Kind      Kind
	Category  int
	Timeframe string
	Geo       string
	// Property filters by search property ("" web, "images", "news",
	// "youtube", "froogle").
	Property string
}

// TrendingSpec builds a trending-topics query for a country.
func TrendingSpec(country string) QuerySpec {
	return QuerySpec{Subject: country, Kind: KindTrendingTopics}
}

// RegionalSpec builds an interest-by-region query over the last day.
func RegionalSpec(keyword string) QuerySpec {
	return QuerySpec{Subject: keyword, Kind: KindRegionalInterest, Timeframe: DefaultShortTimeframe}
}

// RelatedQueriesSpec builds a related-queries query over the last day.
func RelatedQueriesSpec(keyword string) QuerySpec {
	return QuerySpec{Subject: keyword, Kind: KindRelatedQueries, Timeframe: DefaultShortTimeframe}
}

// TopicBreakdownSpec builds a related-topics query restricted to a category.
func TopicBreakdownSpec(keyword string, category int) QuerySpec {
	return QuerySpec{
		Subject:   keyword,
		Kind:      KindTopicBreakdown,
		Category:  category,
		Timeframe: DefaultShortTimeframe,
	}
}

// TimeSeriesSpec builds an interest-over-time query. An empty timeframe
// falls back to the last twelve months.
func TimeSeriesSpec(keyword, timeframe string) QuerySpec {
	if timeframe == "" {
		timeframe = DefaultLongTimeframe
	}

	return QuerySpec{Subject: keyword, Kind: KindTimeSeries, Timeframe: timeframe}
}

// PlatformSpec builds an interest-over-time query filtered by platform.
// "web" and "" both mean plain web search.
func PlatformSpec(keyword, platform string) QuerySpec {
	if platform == "" {
		platform = DefaultPlatform
	}

	return QuerySpec{
		Subject:   keyword,
		Kind:      KindPlatformInterest,
		Timeframe: DefaultShortTimeframe,
		Property:  platform,
	}
}

// WithTimeframe returns a copy of the query with a different timeframe.
func (s QuerySpec) WithTimeframe(timeframe string) QuerySpec {
	s.Timeframe = timeframe

	return s
}

// WithGeo returns a copy of the query restricted to a geo code.
func (s QuerySpec) WithGeo(geo string) QuerySpec {
	s.Geo = geo

	return s
}

// Query converts s into adapter parameters.
func (s QuerySpec) Query() Query {
	property := s.Property
	if property == DefaultPlatform {
		property = ""
	}

	return Query{
		Subjects:  []string{s.Subject},
		Kind:      s.Kind,
		Category:  s.Category,
		Timeframe: s.Timeframe,
		Geo:       s.Geo,
		Property:  property,
	}
}

// ReportName returns the "{subject}_{reportKind}" stem for artifacts.
func (s QuerySpec) ReportName() string {
	if s.Kind == KindPlatformInterest {
		return fmt.Sprintf("%s_%s_%s", s.Subject, s.Kind, s.Property)
	}

	return fmt.Sprintf("%s_%s", s.Subject, s.Kind)
}

// Query is the parameter set handed to an Adapter.
type Query struct {
	Subjects  []string
	Kind      Kind
	Category  int
	Timeframe string
	Geo       string
	Property  string
}

// Response is what an Adapter returns. Single-table kinds fill Table;
// related-queries and related-topics fill Sections keyed by topic type.
type Response struct {
	Table    *Table
	Sections map[TopicType]*Table
}

// Adapter executes one query against a trend provider.
type Adapter interface {
	Query(ctx context.Context, q Query) (*Response, error)
}

// AdapterFunc adapts a plain function to the Adapter interface.
type AdapterFunc func(ctx context.Context, q Query) (*Response, error)

// Query calls f.
func (f AdapterFunc) Query(ctx context.Context, q Query) (*Response, error) {
	return f(ctx, q)
}

// Row is one table row. Key holds the index label (region name, formatted
// date, rank); Time is set for time-series rows.
type Row struct {
	Key    string
	Time   time.Time
	Values map[string]any
}

// Float returns the numeric value of a column.
func (r Row) Float(column string) (float64, bool) {
	return safeconv.ToFloat64(r.Values[column])
}

// Table is an ordered sequence of rows with a stable column order.
type Table struct {
	// Index names the row key column; empty when rows have no index.
	Index   string
	Columns []string
	Rows    []Row
}

// Len returns the row count of a possibly nil table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.Rows)
}

// HasColumn reports whether the table declares the column.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}

	return slices.Contains(t.Columns, name)
}

// Head returns a table holding at most n leading rows.
func (t *Table) Head(n int) *Table {
	if t == nil {
		return nil
	}

	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}

	return &Table{Index: t.Index, Columns: t.Columns, Rows: t.Rows[:n]}
}

// Clone returns a copy whose row slice can be reordered independently.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}

	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)

	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)

	return &Table{Index: t.Index, Columns: columns, Rows: rows}
}

// Status tags the outcome of a query.
type Status int

// Query outcomes.
const (
	StatusSuccess Status = iota
	StatusEmpty
	StatusFailure
)

// String returns the lower-case status name used in logs and metrics.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Section is one topic-type sub-result of a bundle.
type Section struct {
	Type   TopicType
	Status Status
	Table  *Table
}

// QueryResult is the tagged outcome of one QuerySpec.
type QueryResult struct {
	Spec   QuerySpec
	Status Status
	Table  *Table
	// Sections is set for related-queries and related-topics results, in
	// TopicTypes order.
	Sections []Section
	Reason   string
	Err      error
}

// Success builds a successful result.
func Success(spec QuerySpec, table *Table) QueryResult {
	return QueryResult{Spec: spec, Status: StatusSuccess, Table: table}
}

// Empty builds a no-data result.
func Empty(spec QuerySpec) QueryResult {
	return QueryResult{Spec: spec, Status: StatusEmpty}
}

// Failure builds a failed result from an error.
func Failure(spec QuerySpec, err error) QueryResult {
	return QueryResult{Spec: spec, Status: StatusFailure, Reason: err.Error(), Err: err}
}

// OK reports whether the result carries data.
func (r QueryResult) OK() bool {
	return r.Status == StatusSuccess
}

// Section returns the sub-result for a topic type.
func (r QueryResult) Section(tt TopicType) (Section, bool) {
	for _, s := range r.Sections {
		if s.Type == tt {
			return s, true
		}
	}

	return Section{}, false
}
