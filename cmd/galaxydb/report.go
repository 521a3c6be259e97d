package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrenholt/galaxydb/internal/report"
	"github.com/wrenholt/galaxydb/internal/store"
)

var (
	reportDBURL  string
	reportFormat string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize a loaded galaxy database",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDBURL, "db-url", "", "Database URL (default: sqlite://<data-dir>/galaxy.db)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "Output format: text or markdown")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if reportDBURL != "" {
		cfg.DatabaseURL = reportDBURL
	}

	ctx := cmd.Context()
	st, err := store.Open(ctx, cfg.EffectiveDatabaseURL(), nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close database: %v\n", err)
		}
	}()

	summary, err := report.Build(ctx, st)
	if err != nil {
		return err
	}

	var writer = os.Stdout
	if reportOutput != "" {
		f, err := os.Create(reportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		writer = f
	}

	switch reportFormat {
	case "text":
		return report.NewTextFormatter(writer).Format(summary)
	case "markdown":
		return report.NewMarkdownFormatter(writer).Format(summary)
	}
	return fmt.Errorf("invalid format: %s (must be 'text' or 'markdown')", reportFormat)
}
