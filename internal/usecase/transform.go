package usecase

import (
	"fmt"
	"math"
	"time"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

// Transform derives the analysis record for one repository.
// now is the reference instant for every elapsed-time field; callers pass
// the same value for a whole batch so the derived ages agree with each other.
func Transform(raw domain.RawRecord, now time.Time) (domain.AnalysisRecord, error) {
	createdAt, err := parseTimestamp(raw, "createdAt", raw.CreatedAt)
	if err != nil {
		return domain.AnalysisRecord{}, err
	}
	updatedAt, err := parseTimestamp(raw, "updatedAt", raw.UpdatedAt)
	if err != nil {
		return domain.AnalysisRecord{}, err
	}

	language := domain.UnknownLanguage
	if raw.PrimaryLanguage != nil && *raw.PrimaryLanguage != "" {
		language = *raw.PrimaryLanguage
	}

	return domain.AnalysisRecord{
		Name:              raw.Name,
		Owner:             raw.OwnerLogin,
		Stars:             raw.Stars,
		AgeDays:           elapsedDays(createdAt, now),
		MergedPRs:         raw.MergedPullRequests,
		TotalReleases:     raw.Releases,
		DaysSinceUpdate:   elapsedDays(updatedAt, now),
		PrimaryLanguage:   language,
		TotalIssues:       raw.TotalIssues,
		ClosedIssues:      raw.ClosedIssues,
		ClosedIssuesRatio: closedRatio(raw.ClosedIssues, raw.TotalIssues),
		URL:               raw.URL,
		Description:       raw.Description,
	}, nil
}

// TransformAll maps a whole batch against a single reference instant.
// The first malformed record aborts the batch.
func TransformAll(raws []domain.RawRecord, now time.Time) ([]domain.AnalysisRecord, error) {
	records := make([]domain.AnalysisRecord, 0, len(raws))
	for _, raw := range raws {
		r, err := Transform(raw, now)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func parseTimestamp(raw domain.RawRecord, field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("repository %s/%s: %s %q: %w", raw.OwnerLogin, raw.Name, field, value, domain.ErrMalformedTimestamp)
	}
	return t, nil
}

// elapsedDays counts whole days from t to now, rounding down.
func elapsedDays(t, now time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}

// closedRatio is the closed share of issues as a percentage in [0, 100].
// A repository without issues has ratio 0.
func closedRatio(closed, total int) float64 {
	if total <= 0 || closed <= 0 {
		return 0
	}
	ratio := float64(closed) / float64(total) * 100
	return math.Min(ratio, 100)
}
