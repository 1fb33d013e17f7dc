package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-insights/internal/config"
	"github.com/naka-gawa/repo-insights/internal/gateway"
	"github.com/naka-gawa/repo-insights/internal/report"
	"github.com/naka-gawa/repo-insights/internal/usecase"
)

func newCollectCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "collect",
		Short: "Collects popular repositories from GitHub and reports on them",
		Long: `Searches GitHub for popular repositories, derives per-repository metrics,
answers every research question and writes the dataset, the summary report
and console charts. If the search stops early the repositories gathered so
far are still analyzed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			timeout, err := durationSetting(cmd, "timeout", cfg)
			if err != nil {
				return err
			}

			token, source := cfg.ResolveToken()
			if source == config.SourceNone {
				logger.Warn(fmt.Sprintf("No GitHub token found; set %s or github_token in the config file. Requests will likely be rejected.", config.TokenEnv))
			} else {
				logger.Debug("Using GitHub token", "source", source)
			}

			// Inject dependencies and run the main business logic.
			searcher, err := gateway.NewGitHubGateway(gateway.Options{
				Token:    token,
				Endpoint: stringSetting(cmd, "endpoint", cfg.Endpoint),
				Timeout:  timeout,
			}, logger)
			if err != nil {
				return fmt.Errorf("failed to create GitHub gateway: %w", err)
			}
			analyzer := usecase.NewAnalyzer(searcher, logger)

			// One reference instant for every derived age in this run.
			now := time.Now().UTC()
			result, err := analyzer.Run(ctx, usecase.Params{
				Query:        stringSetting(cmd, "query", cfg.Query),
				Target:       intSetting(cmd, "target", cfg.Target),
				TopLanguages: intSetting(cmd, "top-languages", cfg.TopLanguages),
				Now:          now,
			})
			if err != nil {
				return err
			}
			logger.Info("Analyzed repositories", "count", len(result.Records))

			emit(logger, outputs{
				csv:     stringSetting(cmd, "csv", cfg.CSVPath),
				summary: stringSetting(cmd, "summary", cfg.SummaryPath),
				json:    stringSetting(cmd, "json", cfg.JSONPath),
			}, result.Records, result.Analysis, now)
			return nil
		},
	}

	c.Flags().StringP("query", "q", gateway.DefaultQuery, "GitHub repository search query")
	c.Flags().IntP("target", "n", 100, "Number of repositories to collect")
	c.Flags().Int("top-languages", usecase.DefaultTopLanguages, "Languages included in the cross-language comparison")
	c.Flags().String("endpoint", gateway.DefaultEndpoint, "GitHub GraphQL endpoint")
	c.Flags().Duration("timeout", gateway.DefaultTimeout, "Timeout for each API request")
	c.Flags().String("csv", report.DefaultCSVPath, "Dataset output file")
	c.Flags().String("summary", report.DefaultSummaryPath, "Summary report output file")
	c.Flags().String("json", "", "Optional JSON snapshot output file")
	return c
}
