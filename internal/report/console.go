package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

// DefaultBarWidth is the length of the longest bar in a chart.
const DefaultBarWidth = 40

const barGlyph = "█"

// Bar renders count as a bar scaled linearly so that maxCount fills width.
// Counts above maxCount are capped at width.
func Bar(count, maxCount, width int) string {
	if count <= 0 || maxCount <= 0 || width <= 0 {
		return ""
	}
	n := min(count*width/maxCount, width)
	return strings.Repeat(barGlyph, n)
}

// Console narrates an analysis for a terminal. Colors are only emitted when
// the destination supports them.
type Console struct {
	w        io.Writer
	barWidth int

	title  lipgloss.Style
	label  lipgloss.Style
	number lipgloss.Style
	bar    lipgloss.Style
	dim    lipgloss.Style
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:        w,
		barWidth: DefaultBarWidth,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		label:    r.NewStyle().Foreground(lipgloss.Color("245")),
		number:   r.NewStyle().Foreground(lipgloss.Color("255")),
		bar:      r.NewStyle().Foreground(lipgloss.Color("35")),
		dim:      r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Narrate prints every research question followed by the charts.
func (c *Console) Narrate(a domain.Analysis) {
	c.metric("RQ01: Are popular repositories mature?", a.Maturity.MetricResult, "years", "Older than 5 years")
	c.metric("RQ02: Do popular repositories receive external contributions?", a.Contribution, "merged PRs", "Above the median")
	c.metric("RQ03: Do popular repositories release often?", a.Releases, "releases", "With at least one release")
	c.metric("RQ04: Are popular repositories updated often?", a.Freshness, "days since update", "Updated in the last 30 days")
	c.languages(a.Languages)
	c.issues(a.IssueClosure, a.Total)
	c.comparison(a.LanguageComparison)
	c.charts(a)
}

func (c *Console) heading(text string, width int) {
	fmt.Fprintf(c.w, "\n%s\n%s\n%s\n", c.dim.Render(strings.Repeat("=", width)), c.title.Render(text), c.dim.Render(strings.Repeat("=", width)))
}

func (c *Console) line(label, value string) {
	fmt.Fprintf(c.w, "%s %s\n", c.label.Render(label+":"), c.number.Render(value))
}

func (c *Console) noData() {
	fmt.Fprintln(c.w, c.dim.Render("No data."))
}

func (c *Console) summary(s domain.StatSummary, unit string) {
	c.line("Mean", fmt.Sprintf("%.2f %s", s.Mean, unit))
	c.line("Median", fmt.Sprintf("%.2f %s", s.Median, unit))
	c.line("Standard deviation", fmt.Sprintf("%.2f", s.StdDev))
	c.line("Minimum", fmt.Sprintf("%.2f %s", s.Min, unit))
	c.line("Maximum", fmt.Sprintf("%.2f %s", s.Max, unit))
}

func (c *Console) metric(title string, m domain.MetricResult, unit, highlight string) {
	c.heading(title, 50)
	if m.NoData {
		c.noData()
		return
	}
	c.summary(m.Summary, unit)
	fmt.Fprintln(c.w)
	c.line(highlight, formatShare(m.Highlight))
}

func (c *Console) languages(r domain.LanguageRanking) {
	c.heading("RQ05: Are popular repositories written in popular languages?", 50)
	if r.NoData {
		c.noData()
		return
	}
	fmt.Fprintln(c.w, c.label.Render("Top 10 languages:"))
	for i, l := range topEntries(r, 10) {
		fmt.Fprintf(c.w, "%2d. %s: %s repositories (%.1f%%)\n", i+1, l.Language, c.number.Render(fmt.Sprint(l.Count)), l.Percent)
	}
}

func (c *Console) issues(r domain.IssueClosureResult, total int) {
	c.heading("RQ06: Do popular repositories close most of their issues?", 50)
	if r.NoData {
		fmt.Fprintln(c.w, c.dim.Render("No repository with issues found."))
		return
	}
	c.line("Repositories with issues", fmt.Sprintf("%d of %d", r.WithIssues, total))
	c.summary(r.Summary, "%")
	fmt.Fprintln(c.w)
	c.line("More than 80% closed", formatShare(r.Highlight))
}

func (c *Console) comparison(r domain.LanguageComparison) {
	c.heading(fmt.Sprintf("RQ07: Top %d languages compared", r.TopK), 60)
	if r.NoData {
		c.noData()
		return
	}
	for _, p := range r.Profiles {
		fmt.Fprintf(c.w, "\n%s (%d repositories):\n", c.title.Render(p.Language), p.Count)
		fmt.Fprintf(c.w, "  Merged PRs - mean: %.2f, median: %.2f\n", p.MergedPRs.Mean, p.MergedPRs.Median)
		fmt.Fprintf(c.w, "  Releases - mean: %.2f, median: %.2f\n", p.Releases.Mean, p.Releases.Median)
		fmt.Fprintf(c.w, "  Days since update - mean: %.2f, median: %.2f\n", p.DaysSinceUpdate.Mean, p.DaysSinceUpdate.Median)
		fmt.Fprintf(c.w, "  Stars - median: %.0f\n", p.Stars.Median)
	}
}

func (c *Console) charts(a domain.Analysis) {
	c.heading("CHARTS", 60)
	if a.Total == 0 {
		c.noData()
		return
	}

	fmt.Fprintf(c.w, "\n%s\n%s\n", c.title.Render("RQ05: Top 10 languages"), c.dim.Render(strings.Repeat("-", 50)))
	top := topEntries(a.Languages, 10)
	maxCount := 0
	for _, l := range top {
		maxCount = max(maxCount, l.Count)
	}
	for i, l := range top {
		fmt.Fprintf(c.w, "%2d. %-15s %s %d (%.1f%%)\n", i+1, l.Language, c.bar.Render(Bar(l.Count, maxCount, c.barWidth)), l.Count, l.Percent)
	}

	fmt.Fprintf(c.w, "\n%s\n%s\n", c.title.Render("RQ01: Age distribution (years)"), c.dim.Render(strings.Repeat("-", 50)))
	maxCount = 0
	for _, b := range a.Maturity.Buckets {
		maxCount = max(maxCount, b.Share.Count)
	}
	for _, b := range a.Maturity.Buckets {
		fmt.Fprintf(c.w, "%-6s years %s %d (%.1f%%)\n", b.Label, c.bar.Render(Bar(b.Share.Count, maxCount, c.barWidth)), b.Share.Count, b.Share.Percent)
	}
}

func topEntries(r domain.LanguageRanking, n int) []domain.LanguageCount {
	return r.Entries[:min(n, len(r.Entries))]
}
