package cmd

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/repo-insights/internal/domain"
	"github.com/naka-gawa/repo-insights/internal/report"
)

// outputs names the files a run writes. An empty path skips that output.
type outputs struct {
	csv     string
	summary string
	json    string
}

// emit narrates the analysis to the console and writes every configured file.
// A failed write is logged and the remaining outputs are still produced.
func emit(logger *log.Logger, out outputs, records []domain.AnalysisRecord, analysis domain.Analysis, generatedAt time.Time) {
	report.NewConsole(os.Stdout).Narrate(analysis)

	save := func(kind, path string, write func(io.Writer) error) {
		if path == "" {
			return
		}
		if err := report.Save(path, write); err != nil {
			logger.Error("Failed to save "+kind, "err", err)
			return
		}
		logger.Info("Saved "+kind, "path", path)
	}

	save("dataset", out.csv, func(w io.Writer) error {
		return report.WriteCSV(w, records)
	})
	save("summary report", out.summary, func(w io.Writer) error {
		return report.WriteSummary(w, analysis, generatedAt)
	})
	save("JSON snapshot", out.json, func(w io.Writer) error {
		return report.WriteJSON(w, analysis)
	})
}
