package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-insights/internal/report"
	"github.com/naka-gawa/repo-insights/internal/usecase"
)

func newReportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "report",
		Short: "Re-analyzes a previously collected dataset",
		Long:  `Reads a dataset written by "collect" and regenerates the analysis, the summary report and console charts without contacting GitHub.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := stringSetting(cmd, "from-csv", cfg.CSVPath)

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open dataset: %w", err)
			}
			defer f.Close()

			records, err := report.ReadCSV(f)
			if err != nil {
				return fmt.Errorf("failed to read dataset %s: %w", path, err)
			}
			logger.Info("Loaded dataset", "path", path, "count", len(records))

			analysis := usecase.Research(records, intSetting(cmd, "top-languages", cfg.TopLanguages))
			emit(logger, outputs{
				summary: stringSetting(cmd, "summary", cfg.SummaryPath),
				json:    stringSetting(cmd, "json", cfg.JSONPath),
			}, records, analysis, time.Now().UTC())
			return nil
		},
	}

	c.Flags().String("from-csv", report.DefaultCSVPath, "Dataset to analyze")
	c.Flags().Int("top-languages", usecase.DefaultTopLanguages, "Languages included in the cross-language comparison")
	c.Flags().String("summary", report.DefaultSummaryPath, "Summary report output file")
	c.Flags().String("json", "", "Optional JSON snapshot output file")
	return c
}
