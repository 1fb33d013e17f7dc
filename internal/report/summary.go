package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

// DefaultSummaryPath is where the summary is written unless configured otherwise.
const DefaultSummaryPath = "github_analysis_report.txt"

// summaryTopLanguages is how many languages the summary ranks.
const summaryTopLanguages = 5

// WriteSummary writes the headline numbers of every research question.
func WriteSummary(w io.Writer, a domain.Analysis, generatedAt time.Time) error {
	var b bytes.Buffer

	b.WriteString("POPULAR GITHUB REPOSITORIES - ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&b, "Analysis date: %s\n", generatedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Repositories analyzed: %d\n\n", a.Total)
	b.WriteString("RESEARCH QUESTIONS SUMMARY:\n")
	b.WriteString(strings.Repeat("-", 40) + "\n\n")

	b.WriteString("RQ01 - Maturity:\n")
	if a.Maturity.NoData {
		b.WriteString(noData)
	} else {
		fmt.Fprintf(&b, "  Mean age: %.2f years\n", a.Maturity.Summary.Mean)
		fmt.Fprintf(&b, "  Median age: %.2f years\n", a.Maturity.Summary.Median)
		fmt.Fprintf(&b, "  Older than 5 years: %s\n", formatShare(a.Maturity.Highlight))
	}
	b.WriteString("\n")

	b.WriteString("RQ02 - Contributions:\n")
	if a.Contribution.NoData {
		b.WriteString(noData)
	} else {
		fmt.Fprintf(&b, "  Mean merged PRs: %.2f\n", a.Contribution.Summary.Mean)
		fmt.Fprintf(&b, "  Median merged PRs: %.2f\n", a.Contribution.Summary.Median)
		fmt.Fprintf(&b, "  Above the median: %s\n", formatShare(a.Contribution.Highlight))
	}
	b.WriteString("\n")

	b.WriteString("RQ03 - Releases:\n")
	if a.Releases.NoData {
		b.WriteString(noData)
	} else {
		fmt.Fprintf(&b, "  Mean releases: %.2f\n", a.Releases.Summary.Mean)
		fmt.Fprintf(&b, "  With at least one release: %s\n", formatShare(a.Releases.Highlight))
	}
	b.WriteString("\n")

	b.WriteString("RQ04 - Updates:\n")
	if a.Freshness.NoData {
		b.WriteString(noData)
	} else {
		fmt.Fprintf(&b, "  Mean days since update: %.2f\n", a.Freshness.Summary.Mean)
		fmt.Fprintf(&b, "  Updated in the last 30 days: %s\n", formatShare(a.Freshness.Highlight))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "RQ05 - Top %d languages:\n", summaryTopLanguages)
	if a.Languages.NoData {
		b.WriteString(noData)
	}
	for i, l := range a.Languages.Entries[:min(summaryTopLanguages, len(a.Languages.Entries))] {
		fmt.Fprintf(&b, "  %d. %s: %d repos (%.1f%%)\n", i+1, l.Language, l.Count, l.Percent)
	}
	b.WriteString("\n")

	b.WriteString("RQ06 - Closed issues:\n")
	if a.IssueClosure.NoData {
		b.WriteString(noData)
	} else {
		fmt.Fprintf(&b, "  Repositories with issues: %d of %d\n", a.IssueClosure.WithIssues, a.Total)
		fmt.Fprintf(&b, "  Mean closure: %.2f%%\n", a.IssueClosure.Summary.Mean)
		fmt.Fprintf(&b, "  More than 80%% closed: %s\n", formatShare(a.IssueClosure.Highlight))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "RQ07 - Top %d languages compared (medians):\n", a.LanguageComparison.TopK)
	if a.LanguageComparison.NoData {
		b.WriteString(noData)
	}
	for _, p := range a.LanguageComparison.Profiles {
		fmt.Fprintf(&b, "  %s (%d repos): merged PRs %.2f, releases %.2f, days since update %.2f, stars %.0f\n",
			p.Language, p.Count, p.MergedPRs.Median, p.Releases.Median, p.DaysSinceUpdate.Median, p.Stars.Median)
	}

	_, err := w.Write(b.Bytes())
	return err
}

const noData = "  No data.\n"

// formatShare renders a share as "count (percent%)".
func formatShare(s domain.Share) string {
	return fmt.Sprintf("%d (%.1f%%)", s.Count, s.Percent)
}
