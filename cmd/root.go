// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-insights/internal/config"
)

// newRootCmd assembles the command tree. Each call returns fresh commands
// with their own flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "repo-insights",
		Short: "A CLI tool to analyze popular GitHub repositories.",
		Long: `repo-insights collects metadata about popular GitHub repositories and
answers a fixed set of research questions about them: age, external
contributions, releases, update frequency, languages and issue closure.
Results are written as a CSV dataset, a text report and console charts.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	// Persistent flags are available to all commands.
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	root.PersistentFlags().StringP("config", "c", config.DefaultPath, "Config file (.json, .toml or .yaml)")

	root.AddCommand(newCollectCmd())
	root.AddCommand(newReportCmd())
	return root
}

// Execute builds the command tree and runs it.
// This is called by main.main().
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

