package usecase

import (
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

// Selector extracts one numeric field from an analysis record.
type Selector func(domain.AnalysisRecord) float64

const daysPerYear = 365.25

// Field selectors for the metrics the research questions look at.
var (
	AgeYears          Selector = func(r domain.AnalysisRecord) float64 { return float64(r.AgeDays) / daysPerYear }
	MergedPRs         Selector = func(r domain.AnalysisRecord) float64 { return float64(r.MergedPRs) }
	TotalReleases     Selector = func(r domain.AnalysisRecord) float64 { return float64(r.TotalReleases) }
	DaysSinceUpdate   Selector = func(r domain.AnalysisRecord) float64 { return float64(r.DaysSinceUpdate) }
	Stars             Selector = func(r domain.AnalysisRecord) float64 { return float64(r.Stars) }
	ClosedIssuesRatio Selector = func(r domain.AnalysisRecord) float64 { return r.ClosedIssuesRatio }
)

// Summarize computes the descriptive statistics of values.
// An empty input yields a zero summary; the standard deviation is the sample
// deviation and is zero with fewer than two values.
func Summarize(values []float64) domain.StatSummary {
	if len(values) == 0 {
		return domain.StatSummary{}
	}
	data := stats.Float64Data(values)

	// The inputs are non-empty, which is the only error condition of these functions.
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	minimum, _ := stats.Min(data)
	maximum, _ := stats.Max(data)
	summary := domain.StatSummary{
		Mean:   mean,
		Median: median,
		Min:    minimum,
		Max:    maximum,
	}
	if len(values) > 1 {
		summary.StdDev, _ = stats.StandardDeviationSample(data)
	}
	return summary
}

// SummarizeField computes the statistics of one field over records.
func SummarizeField(records []domain.AnalysisRecord, field Selector) domain.StatSummary {
	return Summarize(Values(records, field))
}

// Values extracts field from every record, preserving order.
func Values(records []domain.AnalysisRecord, field Selector) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = field(r)
	}
	return out
}

// countWhere counts the records satisfying pred.
func countWhere(records []domain.AnalysisRecord, pred func(domain.AnalysisRecord) bool) int {
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}
