// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/gateway"
)

// Params controls one collection run.
type Params struct {
	Query        string
	Target       int
	TopLanguages int
	// Now is the reference instant for every derived age in the run.
	Now time.Time
}

// Result is the dataset snapshot of one run and its analysis.
type Result struct {
	Records  []domain.AnalysisRecord
	Analysis domain.Analysis
	// Truncated holds the reason pagination stopped early, if it did.
	Truncated error
}

// Analyzer is the use case for collecting and analyzing popular repositories.
// It runs fetch, transform and aggregate strictly in sequence.
type Analyzer struct {
	searcher gateway.Searcher
	logger   *log.Logger
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(searcher gateway.Searcher, logger *log.Logger) *Analyzer {
	return &Analyzer{
		searcher: searcher,
		logger:   logger,
	}
}

// Run fetches up to p.Target repositories and analyzes them.
// A search that stops early is not an error: the partial dataset is analyzed
// and the cause is kept in Result.Truncated. A malformed timestamp is fatal.
func (a *Analyzer) Run(ctx context.Context, p Params) (*Result, error) {
	a.logger.Debug("Usecase: Starting collection", "query", p.Query, "target", p.Target)

	raws, err := a.searcher.SearchRepositories(ctx, p.Query, p.Target)
	if err != nil {
		a.logger.Warn("Pagination stopped early; continuing with partial results", "collected", len(raws), "err", err)
	}
	if len(raws) == 0 {
		a.logger.Warn("No repositories were collected")
	}

	records, terr := TransformAll(raws, p.Now)
	if terr != nil {
		return nil, fmt.Errorf("failed to transform repositories: %w", terr)
	}
	a.logger.Debug("Usecase: Transformed repositories", "count", len(records))

	analysis := Research(records, p.TopLanguages)
	a.logger.Debug("Usecase: Analysis complete.")
	return &Result{
		Records:   records,
		Analysis:  analysis,
		Truncated: err,
	}, nil
}
