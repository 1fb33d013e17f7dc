// Package report renders an analysis as a CSV dataset, a text summary,
// a JSON snapshot and console narration.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

// DefaultCSVPath is where the dataset is written unless configured otherwise.
const DefaultCSVPath = "github_repositories_data.csv"

// descriptionEscaper keeps carriage returns intact through the CSV reader,
// which folds "\r\n" inside quoted fields into "\n".
var (
	descriptionEscaper   = strings.NewReplacer(`\`, `\\`, "\r", `\r`)
	descriptionUnescaper = strings.NewReplacer(`\\`, `\`, `\r`, "\r")
)

// WriteCSV writes one header row followed by one row per record.
// Columns follow domain.Columns; a nil description is an empty cell.
// Descriptions store backslashes as `\\` and carriage returns as `\r`.
func WriteCSV(w io.Writer, records []domain.AnalysisRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("failed to write CSV row for %s/%s: %w", r.Owner, r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(r domain.AnalysisRecord) []string {
	description := ""
	if r.Description != nil {
		description = descriptionEscaper.Replace(*r.Description)
	}
	return []string{
		r.Name,
		r.Owner,
		strconv.Itoa(r.Stars),
		strconv.Itoa(r.AgeDays),
		strconv.Itoa(r.MergedPRs),
		strconv.Itoa(r.TotalReleases),
		strconv.Itoa(r.DaysSinceUpdate),
		r.PrimaryLanguage,
		strconv.Itoa(r.TotalIssues),
		strconv.Itoa(r.ClosedIssues),
		strconv.FormatFloat(r.ClosedIssuesRatio, 'f', -1, 64),
		r.URL,
		description,
	}
}

// ReadCSV parses a dataset written by WriteCSV, undoing the description escaping.
// Empty description cells are read back as nil, so an empty description
// and a missing one are indistinguishable after a round trip.
func ReadCSV(r io.Reader) ([]domain.AnalysisRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(domain.Columns)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty dataset: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if !slices.Equal(header, domain.Columns) {
		return nil, fmt.Errorf("unexpected CSV header %v", header)
	}

	records := []domain.AnalysisRecord{}
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rec, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
}

func parseRow(f []string) (domain.AnalysisRecord, error) {
	p := rowParser{fields: f}
	rec := domain.AnalysisRecord{
		Name:              f[0],
		Owner:             f[1],
		Stars:             p.intAt(2),
		AgeDays:           p.intAt(3),
		MergedPRs:         p.intAt(4),
		TotalReleases:     p.intAt(5),
		DaysSinceUpdate:   p.intAt(6),
		PrimaryLanguage:   f[7],
		TotalIssues:       p.intAt(8),
		ClosedIssues:      p.intAt(9),
		ClosedIssuesRatio: p.floatAt(10),
		URL:               f[11],
	}
	if f[12] != "" {
		description := descriptionUnescaper.Replace(f[12])
		rec.Description = &description
	}
	return rec, p.err
}

// rowParser converts numeric cells, keeping the first failure.
type rowParser struct {
	fields []string
	err    error
}

func (p *rowParser) intAt(i int) int {
	v, err := strconv.Atoi(p.fields[i])
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %s: %w", domain.Columns[i], err)
	}
	return v
}

func (p *rowParser) floatAt(i int) float64 {
	v, err := strconv.ParseFloat(p.fields[i], 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %s: %w", domain.Columns[i], err)
	}
	return v
}
