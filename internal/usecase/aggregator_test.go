package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

func langRecords(langs ...string) []domain.AnalysisRecord {
	records := make([]domain.AnalysisRecord, len(langs))
	for i, l := range langs {
		records[i] = domain.AnalysisRecord{Name: l, PrimaryLanguage: l}
	}
	return records
}

func TestMaturity(t *testing.T) {
	records := []domain.AnalysisRecord{{AgeDays: 2190}, {AgeDays: 100}, {AgeDays: 1826}}

	result := Maturity(records)

	assert.False(t, result.NoData)
	assert.Equal(t, domain.NewShare(1, 3), result.Highlight)
	assert.InDelta(t, 2190/daysPerYear, result.Summary.Max, 1e-9)
}

func TestAgeHistogram(t *testing.T) {
	records := []domain.AnalysisRecord{{AgeDays: 0}, {AgeDays: 730}, {AgeDays: 731}, {AgeDays: 3650}, {AgeDays: 5479}}

	buckets := AgeHistogram(records)

	require.Len(t, buckets, 7)
	counts := make(map[string]int)
	sum := 0
	for _, b := range buckets {
		counts[b.Label] = b.Share.Count
		sum += b.Share.Count
		assert.Equal(t, len(records), b.Share.Total)
	}
	assert.Equal(t, len(records), sum)
	assert.Equal(t, 2, counts["0-2"])
	assert.Equal(t, 1, counts["2-4"])
	assert.Equal(t, 1, counts["8-10"])
	assert.Equal(t, 1, counts["15+"])
	assert.Equal(t, 0, counts["10-15"])
}

func TestContribution(t *testing.T) {
	records := []domain.AnalysisRecord{{MergedPRs: 1}, {MergedPRs: 2}, {MergedPRs: 3}, {MergedPRs: 10}}

	result := Contribution(records)

	assert.Equal(t, 2.5, result.Summary.Median)
	assert.Equal(t, domain.Share{Count: 2, Total: 4, Percent: 50}, result.Highlight)
}

func TestReleases(t *testing.T) {
	records := []domain.AnalysisRecord{{TotalReleases: 0}, {TotalReleases: 1}, {TotalReleases: 0}, {TotalReleases: 3}}

	result := Releases(records)

	assert.Equal(t, domain.Share{Count: 2, Total: 4, Percent: 50}, result.Highlight)
	assert.Equal(t, 1.0, result.Summary.Mean)
}

func TestFreshness(t *testing.T) {
	records := []domain.AnalysisRecord{{DaysSinceUpdate: 0}, {DaysSinceUpdate: 30}, {DaysSinceUpdate: 31}, {DaysSinceUpdate: 365}}

	result := Freshness(records)

	assert.Equal(t, domain.Share{Count: 2, Total: 4, Percent: 50}, result.Highlight)
	assert.Equal(t, 365.0, result.Summary.Max)
}

func TestRankLanguages(t *testing.T) {
	testCases := []struct {
		name     string
		records  []domain.AnalysisRecord
		expected []domain.LanguageCount
	}{
		{
			name:    "descending by count",
			records: langRecords("Go", "Go", "Rust"),
			expected: []domain.LanguageCount{
				{Language: "Go", Count: 2, Percent: domain.NewShare(2, 3).Percent},
				{Language: "Rust", Count: 1, Percent: domain.NewShare(1, 3).Percent},
			},
		},
		{
			name:    "ties keep first-seen order",
			records: langRecords("Rust", "Go", "Python", "Go", "Python"),
			expected: []domain.LanguageCount{
				{Language: "Go", Count: 2, Percent: domain.NewShare(2, 5).Percent},
				{Language: "Python", Count: 2, Percent: domain.NewShare(2, 5).Percent},
				{Language: "Rust", Count: 1, Percent: domain.NewShare(1, 5).Percent},
			},
		},
		{
			name:     "empty input",
			records:  nil,
			expected: []domain.LanguageCount{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ranking := RankLanguages(tc.records)
			assert.Equal(t, tc.expected, ranking.Entries)
			assert.Equal(t, len(tc.records), ranking.Total)
			assert.Equal(t, len(tc.records) == 0, ranking.NoData)
		})
	}
}

func TestIssueClosure(t *testing.T) {
	records := []domain.AnalysisRecord{
		{TotalIssues: 0, ClosedIssues: 0, ClosedIssuesRatio: closedRatio(0, 0)},
		{TotalIssues: 10, ClosedIssues: 10, ClosedIssuesRatio: closedRatio(10, 10)},
		{TotalIssues: 10, ClosedIssues: 2, ClosedIssuesRatio: closedRatio(2, 10)},
	}

	result := IssueClosure(records)

	assert.False(t, result.NoData)
	assert.Equal(t, 2, result.WithIssues)
	assert.Equal(t, 60.0, result.Summary.Mean)
	assert.Equal(t, 100.0, result.Summary.Max)
	assert.Equal(t, 20.0, result.Summary.Min)
	assert.Equal(t, domain.Share{Count: 1, Total: 2, Percent: 50}, result.Highlight)
}

func TestIssueClosure_NoRepositoryWithIssues(t *testing.T) {
	result := IssueClosure([]domain.AnalysisRecord{{TotalIssues: 0}, {TotalIssues: 0}})

	assert.True(t, result.NoData)
	assert.Equal(t, 0, result.WithIssues)
	assert.Equal(t, domain.StatSummary{}, result.Summary)
	assert.Equal(t, domain.Share{}, result.Highlight)
}

func TestCompareLanguages(t *testing.T) {
	records := []domain.AnalysisRecord{
		{PrimaryLanguage: "Go", MergedPRs: 10, TotalReleases: 1, DaysSinceUpdate: 5, Stars: 100},
		{PrimaryLanguage: "Rust", MergedPRs: 5, TotalReleases: 0, DaysSinceUpdate: 2, Stars: 50},
		{PrimaryLanguage: "Python", MergedPRs: 7, TotalReleases: 4, DaysSinceUpdate: 1, Stars: 70},
		{PrimaryLanguage: "Go", MergedPRs: 20, TotalReleases: 3, DaysSinceUpdate: 15, Stars: 300},
	}

	result := CompareLanguages(records, 2)

	assert.False(t, result.NoData)
	assert.Equal(t, 2, result.TopK)
	require.Len(t, result.Profiles, 2)

	goProfile := result.Profiles[0]
	assert.Equal(t, "Go", goProfile.Language)
	assert.Equal(t, 2, goProfile.Count)
	assert.Equal(t, 15.0, goProfile.MergedPRs.Median)
	assert.Equal(t, 2.0, goProfile.Releases.Median)
	assert.Equal(t, 10.0, goProfile.DaysSinceUpdate.Median)
	assert.Equal(t, 200.0, goProfile.Stars.Median)

	assert.Equal(t, "Rust", result.Profiles[1].Language)
	assert.Equal(t, 5.0, result.Profiles[1].MergedPRs.Median)
}

func TestCompareLanguages_DefaultTopK(t *testing.T) {
	result := CompareLanguages(langRecords("a", "b", "c", "d", "e", "f", "g"), 0)

	assert.Equal(t, DefaultTopLanguages, result.TopK)
	assert.Len(t, result.Profiles, DefaultTopLanguages)
}

func TestResearch_EmptyBatch(t *testing.T) {
	analysis := Research(nil, 5)

	assert.Equal(t, 0, analysis.Total)
	assert.True(t, analysis.Maturity.NoData)
	assert.True(t, analysis.Contribution.NoData)
	assert.True(t, analysis.Releases.NoData)
	assert.True(t, analysis.Freshness.NoData)
	assert.True(t, analysis.Languages.NoData)
	assert.True(t, analysis.IssueClosure.NoData)
	assert.True(t, analysis.LanguageComparison.NoData)
	assert.Empty(t, analysis.LanguageComparison.Profiles)
	assert.Equal(t, domain.Share{}, analysis.Freshness.Highlight)
	for _, b := range analysis.Maturity.Buckets {
		assert.Equal(t, domain.Share{}, b.Share)
	}
}

func TestResearch_IndependentQuestions(t *testing.T) {
	records := []domain.AnalysisRecord{
		{PrimaryLanguage: "Go", AgeDays: 4000, MergedPRs: 3, TotalIssues: 0},
		{PrimaryLanguage: "Go", AgeDays: 100, MergedPRs: 1, TotalIssues: 0},
	}

	analysis := Research(records, 5)

	assert.Equal(t, 2, analysis.Total)
	assert.False(t, analysis.Maturity.NoData)
	assert.True(t, analysis.IssueClosure.NoData)
	assert.Equal(t, 1, analysis.Maturity.Highlight.Count)
	assert.Equal(t, 1, analysis.Contribution.Highlight.Count)
	assert.Len(t, analysis.LanguageComparison.Profiles, 1)
}
