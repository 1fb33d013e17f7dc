package domain

// StatSummary holds the descriptive statistics of a numeric sequence.
// All fields are zero for an empty sequence.
type StatSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Share counts the records matching a research question's criterion.
type Share struct {
	Count   int     `json:"count"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// NewShare builds a Share, leaving Percent at zero when total is zero.
func NewShare(count, total int) Share {
	s := Share{Count: count, Total: total}
	if total > 0 {
		s.Percent = float64(count) / float64(total) * 100
	}
	return s
}

// MetricResult is the answer to a research question over one numeric field.
// Highlight is the question-specific classification (e.g. "older than five years").
type MetricResult struct {
	NoData    bool        `json:"no_data"`
	Summary   StatSummary `json:"summary"`
	Highlight Share       `json:"highlight"`
}

// AgeBucket is one bar of the repository age histogram, in years.
// Upper is zero for the open-ended last bucket.
type AgeBucket struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Share Share   `json:"share"`
}

// MaturityResult answers RQ01. Summary figures are in years.
type MaturityResult struct {
	MetricResult
	Buckets []AgeBucket `json:"buckets"`
}

// LanguageCount is one entry of the language frequency ranking.
type LanguageCount struct {
	Language string  `json:"language"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// LanguageRanking answers RQ05.
type LanguageRanking struct {
	NoData  bool            `json:"no_data"`
	Total   int             `json:"total"`
	Entries []LanguageCount `json:"entries"`
}

// IssueClosureResult answers RQ06. Only repositories with at least one issue
// are considered; WithIssues is the size of that subset.
type IssueClosureResult struct {
	MetricResult
	WithIssues int `json:"with_issues"`
}

// LanguageProfile compares one language group across metrics (RQ07).
type LanguageProfile struct {
	Language        string      `json:"language"`
	Count           int         `json:"count"`
	MergedPRs       StatSummary `json:"merged_prs"`
	Releases        StatSummary `json:"releases"`
	DaysSinceUpdate StatSummary `json:"days_since_update"`
	Stars           StatSummary `json:"stars"`
}

// LanguageComparison answers RQ07 for the most frequent languages.
type LanguageComparison struct {
	NoData   bool              `json:"no_data"`
	TopK     int               `json:"top_k"`
	Profiles []LanguageProfile `json:"profiles"`
}

// Analysis is the complete result of one run over a dataset snapshot.
type Analysis struct {
	Total              int                `json:"total"`
	Maturity           MaturityResult     `json:"maturity"`
	Contribution       MetricResult       `json:"contribution"`
	Releases           MetricResult       `json:"releases"`
	Freshness          MetricResult       `json:"freshness"`
	Languages          LanguageRanking    `json:"languages"`
	IssueClosure       IssueClosureResult `json:"issue_closure"`
	LanguageComparison LanguageComparison `json:"language_comparison"`
}
