package report

import (
	"github.com/Sumatoshi-tech/trendscope/pkg/artifact"
	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
)

// WriteFailure records an artifact that could not be persisted.
type WriteFailure struct {
	Name string
	Err  error
}

// PanelOutcome records what was drawn in one slot.
type PanelOutcome struct {
	Subject string
	Outcome string // One of PanelChart, PanelNoData, PanelError, PanelBlank.
	Reason  string
}

// PageOutcome records one visualization page.
type PageOutcome struct {
	Index    int
	Location string
	Panels   []PanelOutcome
	Err      error
}

// Summary collects everything a run produced.
type Summary struct {
	RunID         string
	Results       []trends.QueryResult
	Artifacts     []artifact.Artifact
	WriteFailures []WriteFailure
	Pages         []PageOutcome
}

// Counts returns the number of results per status.
func (s *Summary) Counts() map[trends.Status]int {
	counts := make(map[trends.Status]int, len(s.Results))

	for _, r := range s.Results {
		counts[r.Status]++
	}

	return counts
}

// FailedPages returns the number of pages that could not be emitted.
func (s *Summary) FailedPages() int {
	n := 0

	for _, p := range s.Pages {
		if p.Err != nil {
			n++
		}
	}

	return n
}
