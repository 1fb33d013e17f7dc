package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

var refNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func rawRepo(name string) domain.RawRecord {
	return domain.RawRecord{
		Name:               name,
		OwnerLogin:         "octo",
		Stars:              1500,
		CreatedAt:          "2020-01-01T00:00:00Z",
		UpdatedAt:          "2024-12-01T00:00:00Z",
		PrimaryLanguage:    strPtr("Go"),
		MergedPullRequests: 12,
		Releases:           3,
		TotalIssues:        10,
		ClosedIssues:       4,
		URL:                "https://github.com/octo/" + name,
		Description:        strPtr("a repository"),
	}
}

func TestTransform(t *testing.T) {
	record, err := Transform(rawRepo("tool"), refNow)
	require.NoError(t, err)

	assert.Equal(t, domain.AnalysisRecord{
		Name:              "tool",
		Owner:             "octo",
		Stars:             1500,
		AgeDays:           1827,
		MergedPRs:         12,
		TotalReleases:     3,
		DaysSinceUpdate:   31,
		PrimaryLanguage:   "Go",
		TotalIssues:       10,
		ClosedIssues:      4,
		ClosedIssuesRatio: 40,
		URL:               "https://github.com/octo/tool",
		Description:       strPtr("a repository"),
	}, record)
}

func TestTransform_NullableFields(t *testing.T) {
	raw := rawRepo("bare")
	raw.PrimaryLanguage = nil
	raw.Description = nil

	record, err := Transform(raw, refNow)
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownLanguage, record.PrimaryLanguage)
	assert.Nil(t, record.Description)
}

func TestTransform_PartialDaysRoundDown(t *testing.T) {
	raw := rawRepo("recent")
	raw.UpdatedAt = "2024-12-31T12:00:00Z"

	record, err := Transform(raw, refNow)
	require.NoError(t, err)
	assert.Equal(t, 0, record.DaysSinceUpdate)
}

func TestTransform_ClosedIssuesRatio(t *testing.T) {
	testCases := []struct {
		name     string
		total    int
		closed   int
		expected float64
	}{
		{name: "no issues is zero", total: 0, closed: 0, expected: 0},
		{name: "no issues ignores closed count", total: 0, closed: 5, expected: 0},
		{name: "all closed", total: 10, closed: 10, expected: 100},
		{name: "one fifth closed", total: 10, closed: 2, expected: 20},
		{name: "inconsistent counts are capped", total: 3, closed: 9, expected: 100},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := rawRepo("r")
			raw.TotalIssues = tc.total
			raw.ClosedIssues = tc.closed

			record, err := Transform(raw, refNow)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, record.ClosedIssuesRatio)
			assert.GreaterOrEqual(t, record.ClosedIssuesRatio, 0.0)
			assert.LessOrEqual(t, record.ClosedIssuesRatio, 100.0)
		})
	}
}

func TestTransform_MalformedTimestamp(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*domain.RawRecord)
		field  string
	}{
		{name: "garbage createdAt", mutate: func(r *domain.RawRecord) { r.CreatedAt = "yesterday" }, field: "createdAt"},
		{name: "empty createdAt", mutate: func(r *domain.RawRecord) { r.CreatedAt = "" }, field: "createdAt"},
		{name: "date-only updatedAt", mutate: func(r *domain.RawRecord) { r.UpdatedAt = "2024-01-01" }, field: "updatedAt"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := rawRepo("broken")
			tc.mutate(&raw)

			_, err := Transform(raw, refNow)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedTimestamp))
			assert.Contains(t, err.Error(), tc.field)
			assert.Contains(t, err.Error(), "octo/broken")
		})
	}
}

func TestTransformAll(t *testing.T) {
	t.Run("uses one reference instant for the whole batch", func(t *testing.T) {
		a, b := rawRepo("a"), rawRepo("b")
		records, err := TransformAll([]domain.RawRecord{a, b}, refNow)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, records[0].AgeDays, records[1].AgeDays)
		assert.Equal(t, records[0].DaysSinceUpdate, records[1].DaysSinceUpdate)
	})

	t.Run("aborts on the first malformed record", func(t *testing.T) {
		bad := rawRepo("bad")
		bad.UpdatedAt = "not-a-time"
		records, err := TransformAll([]domain.RawRecord{rawRepo("ok"), bad}, refNow)
		assert.ErrorIs(t, err, domain.ErrMalformedTimestamp)
		assert.Nil(t, records)
	})

	t.Run("empty batch", func(t *testing.T) {
		records, err := TransformAll(nil, refNow)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
