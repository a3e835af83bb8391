package trends

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrNormalize wraps table conversion failures found while normalizing.
var ErrNormalize = errors.New("normalize result")

// Normalize applies the kind-specific presentation rules to a result.
// Failure and Empty results are returned untouched. The input table is never
// modified; reordering happens on a copy. Normalizing an already normalized
// result returns an equal result.
func Normalize(result QueryResult) (out QueryResult) {
	if result.Status != StatusSuccess {
		return result
	}

	defer func() {
		if r := recover(); r != nil {
			out = Failure(result.Spec, fmt.Errorf("%w: panic: %v", ErrNormalize, r))
		}
	}()

	switch result.Spec.Kind {
	case KindRegionalInterest:
		return normalizeRegional(result)
	case KindRelatedQueries:
		return normalizeRelated(result)
	case KindTopicBreakdown:
		return normalizeTopics(result)
	case KindTrendingTopics, KindTimeSeries, KindPlatformInterest:
		if result.Table.Len() == 0 {
			return Empty(result.Spec)
		}

		return result
	default:
		return result
	}
}

type rankedRow struct {
	row   Row
	value float64
}

// normalizeRegional keeps rows with a positive subject value, ordered by
// that value descending. Ties keep provider order.
func normalizeRegional(result QueryResult) QueryResult {
	column := result.Spec.Subject
	if !result.Table.HasColumn(column) {
		return Empty(result.Spec)
	}

	ranked := make([]rankedRow, 0, result.Table.Len())

	for _, row := range result.Table.Rows {
		value, ok := row.Float(column)
		if !ok {
			return Failure(result.Spec, fmt.Errorf("%w: region %q has non-numeric %q value %v",
				ErrNormalize, row.Key, column, row.Values[column]))
		}

		if value <= 0 {
			continue
		}

		ranked = append(ranked, rankedRow{row: row, value: value})
	}

	if len(ranked) == 0 {
		return Empty(result.Spec)
	}

	slices.SortStableFunc(ranked, func(a, b rankedRow) int {
		return cmp.Compare(b.value, a.value)
	})

	table := &Table{
		Index:   result.Table.Index,
		Columns: slices.Clone(result.Table.Columns),
		Rows:    make([]Row, len(ranked)),
	}

	for i, r := range ranked {
		table.Rows[i] = r.row
	}

	return Success(result.Spec, table)
}

// normalizeRelated keeps only the "top" sub-table.
func normalizeRelated(result QueryResult) QueryResult {
	top, ok := result.Section(TopicTop)
	if !ok || top.Table.Len() == 0 {
		return Empty(result.Spec)
	}

	return QueryResult{
		Spec:     result.Spec,
		Status:   StatusSuccess,
		Table:    top.Table,
		Sections: []Section{{Type: TopicTop, Status: StatusSuccess, Table: top.Table}},
	}
}

// normalizeTopics marks every topic-type sub-table independently.
func normalizeTopics(result QueryResult) QueryResult {
	if len(result.Sections) == 0 {
		return Empty(result.Spec)
	}

	sections := make([]Section, len(result.Sections))

	for i, s := range result.Sections {
		status := StatusSuccess
		if s.Table.Len() == 0 {
			status = StatusEmpty
		}

		sections[i] = Section{Type: s.Type, Status: status, Table: s.Table}
	}

	return QueryResult{Spec: result.Spec, Status: StatusSuccess, Sections: sections}
}
