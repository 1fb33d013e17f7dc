// Package domain contains the core data structures and domain logic for the application.
package domain

import "errors"

// UnknownLanguage is the placeholder used when a repository reports no primary language.
const UnknownLanguage = "Unknown"

// ErrMalformedTimestamp is returned when a repository carries a creation or
// update timestamp that cannot be parsed. Every derived statistic depends on
// these fields, so a batch containing one cannot be analyzed.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// RawRecord is one repository exactly as returned by the search API.
// Timestamps are kept as the raw RFC 3339 strings sent by the server.
type RawRecord struct {
	Name               string
	OwnerLogin         string
	Stars              int
	CreatedAt          string
	UpdatedAt          string
	PrimaryLanguage    *string
	MergedPullRequests int
	Releases           int
	TotalIssues        int
	ClosedIssues       int
	URL                string
	Description        *string
}

// AnalysisRecord is the flat, derived view of a repository used by every
// research question. The field order is also the column order of the dataset file.
type AnalysisRecord struct {
	Name              string  `json:"name"`
	Owner             string  `json:"owner"`
	Stars             int     `json:"stars"`
	AgeDays           int     `json:"age_days"`
	MergedPRs         int     `json:"merged_prs"`
	TotalReleases     int     `json:"total_releases"`
	DaysSinceUpdate   int     `json:"days_since_update"`
	PrimaryLanguage   string  `json:"primary_language"`
	TotalIssues       int     `json:"total_issues"`
	ClosedIssues      int     `json:"closed_issues"`
	ClosedIssuesRatio float64 `json:"closed_issues_ratio"`
	URL               string  `json:"url"`
	Description       *string `json:"description"`
}

// Columns lists the dataset column names in AnalysisRecord field order.
var Columns = []string{
	"name",
	"owner",
	"stars",
	"age_days",
	"merged_prs",
	"total_releases",
	"days_since_update",
	"primary_language",
	"total_issues",
	"closed_issues",
	"closed_issues_ratio",
	"url",
	"description",
}
