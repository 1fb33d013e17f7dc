package usecase

import (
	"sort"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

const (
	// DefaultTopLanguages is how many languages the cross-language comparison covers.
	DefaultTopLanguages = 5

	matureAgeDays   = 5 * daysPerYear
	freshUpdateDays = 30
	highClosurePct  = 80
)

// ageBuckets are the histogram bars of repository age, in years.
// The last bucket is open-ended.
var ageBuckets = []domain.AgeBucket{
	{Label: "0-2", Lower: 0, Upper: 2},
	{Label: "2-4", Lower: 2, Upper: 4},
	{Label: "4-6", Lower: 4, Upper: 6},
	{Label: "6-8", Lower: 6, Upper: 8},
	{Label: "8-10", Lower: 8, Upper: 10},
	{Label: "10-15", Lower: 10, Upper: 15},
	{Label: "15+", Lower: 15},
}

// Research answers every research question over records.
// Each answer is computed independently; an empty input marks the answer
// as NoData instead of failing.
func Research(records []domain.AnalysisRecord, topLanguages int) domain.Analysis {
	return domain.Analysis{
		Total:              len(records),
		Maturity:           Maturity(records),
		Contribution:       Contribution(records),
		Releases:           Releases(records),
		Freshness:          Freshness(records),
		Languages:          RankLanguages(records),
		IssueClosure:       IssueClosure(records),
		LanguageComparison: CompareLanguages(records, topLanguages),
	}
}

// Maturity answers RQ01: how old are popular repositories?
func Maturity(records []domain.AnalysisRecord) domain.MaturityResult {
	mature := countWhere(records, func(r domain.AnalysisRecord) bool { return float64(r.AgeDays) > matureAgeDays })
	return domain.MaturityResult{
		MetricResult: metric(records, AgeYears, mature),
		Buckets:      AgeHistogram(records),
	}
}

// AgeHistogram distributes records over the fixed age buckets.
// Every record lands in exactly one bucket.
func AgeHistogram(records []domain.AnalysisRecord) []domain.AgeBucket {
	buckets := make([]domain.AgeBucket, len(ageBuckets))
	copy(buckets, ageBuckets)

	counts := make([]int, len(buckets))
	for _, r := range records {
		age := AgeYears(r)
		i := len(buckets) - 1
		for j, b := range buckets[:len(buckets)-1] {
			if age < b.Upper {
				i = j
				break
			}
		}
		counts[i]++
	}
	for i := range buckets {
		buckets[i].Share = domain.NewShare(counts[i], len(records))
	}
	return buckets
}

// Contribution answers RQ02: do popular repositories get many merged pull requests?
// The highlight counts repositories strictly above the median.
func Contribution(records []domain.AnalysisRecord) domain.MetricResult {
	median := SummarizeField(records, MergedPRs).Median
	above := countWhere(records, func(r domain.AnalysisRecord) bool { return float64(r.MergedPRs) > median })
	return metric(records, MergedPRs, above)
}

// Releases answers RQ03: do popular repositories publish releases?
func Releases(records []domain.AnalysisRecord) domain.MetricResult {
	released := countWhere(records, func(r domain.AnalysisRecord) bool { return r.TotalReleases > 0 })
	return metric(records, TotalReleases, released)
}

// Freshness answers RQ04: are popular repositories updated often?
func Freshness(records []domain.AnalysisRecord) domain.MetricResult {
	fresh := countWhere(records, func(r domain.AnalysisRecord) bool { return r.DaysSinceUpdate <= freshUpdateDays })
	return metric(records, DaysSinceUpdate, fresh)
}

// RankLanguages answers RQ05: the frequency of each primary language,
// most frequent first, ties kept in first-seen order.
func RankLanguages(records []domain.AnalysisRecord) domain.LanguageRanking {
	group := domain.GroupByLanguage(records)
	entries := make([]domain.LanguageCount, 0, group.Len())
	for _, lang := range group.Languages() {
		n := len(group.Records(lang))
		entries = append(entries, domain.LanguageCount{
			Language: lang,
			Count:    n,
			Percent:  domain.NewShare(n, len(records)).Percent,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return domain.LanguageRanking{
		NoData:  len(records) == 0,
		Total:   len(records),
		Entries: entries,
	}
}

// IssueClosure answers RQ06: what share of issues do popular repositories close?
// Repositories without issues are left out.
func IssueClosure(records []domain.AnalysisRecord) domain.IssueClosureResult {
	withIssues := make([]domain.AnalysisRecord, 0, len(records))
	for _, r := range records {
		if r.TotalIssues > 0 {
			withIssues = append(withIssues, r)
		}
	}
	high := countWhere(withIssues, func(r domain.AnalysisRecord) bool { return r.ClosedIssuesRatio > highClosurePct })
	return domain.IssueClosureResult{
		MetricResult: metric(withIssues, ClosedIssuesRatio, high),
		WithIssues:   len(withIssues),
	}
}

// CompareLanguages answers RQ07: how do the topK most frequent languages compare?
// topK <= 0 falls back to DefaultTopLanguages.
func CompareLanguages(records []domain.AnalysisRecord, topK int) domain.LanguageComparison {
	if topK <= 0 {
		topK = DefaultTopLanguages
	}
	group := domain.GroupByLanguage(records)
	ranking := RankLanguages(records).Entries
	ranking = ranking[:min(topK, len(ranking))]

	profiles := make([]domain.LanguageProfile, 0, len(ranking))
	for _, entry := range ranking {
		members := group.Records(entry.Language)
		profiles = append(profiles, domain.LanguageProfile{
			Language:        entry.Language,
			Count:           len(members),
			MergedPRs:       SummarizeField(members, MergedPRs),
			Releases:        SummarizeField(members, TotalReleases),
			DaysSinceUpdate: SummarizeField(members, DaysSinceUpdate),
			Stars:           SummarizeField(members, Stars),
		})
	}
	return domain.LanguageComparison{
		NoData:   len(records) == 0,
		TopK:     topK,
		Profiles: profiles,
	}
}

func metric(records []domain.AnalysisRecord, field Selector, highlighted int) domain.MetricResult {
	return domain.MetricResult{
		NoData:    len(records) == 0,
		Summary:   SummarizeField(records, field),
		Highlight: domain.NewShare(highlighted, len(records)),
	}
}
