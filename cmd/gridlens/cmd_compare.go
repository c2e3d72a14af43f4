package main

import (
	"fmt"

	"github.com/spboyer/gridlens/internal/analysis"
	"github.com/spboyer/gridlens/internal/batchfile"
	"github.com/spboyer/gridlens/internal/reporting"
	"github.com/spboyer/gridlens/internal/spinner"
	"github.com/spf13/cobra"
)

// comparisonReport is the JSON output of compare.
type comparisonReport struct {
	Files   []string               `json:"files"`
	Batches []reporting.Comparison `json:"batches"`
}

func newCompareCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compare <batch1> <batch2> [batch3 ...]",
		Short: "Compare several batches side by side",
		Long: `Compare two or more batch files side by side.

Shows each batch's best pick and quality distribution, followed by how every
sampling parameter correlates with quality in each batch.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Report.Format
			}
			if err := checkFormat(format, "table", "json"); err != nil {
				return err
			}

			stop := func() {}
			if isTerminal(cmd.ErrOrStderr()) {
				stop = spinner.Start(cmd.ErrOrStderr(), fmt.Sprintf("Loading %d batches", len(args)))
			}
			report, err := buildComparisonReport(args)
			stop()
			if err != nil {
				return err
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), reporting.FormatComparison(report.Batches))
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")

	return cmd
}

func buildComparisonReport(files []string) (*comparisonReport, error) {
	loaded, err := batchfile.LoadAll(files)
	if err != nil {
		return nil, fmt.Errorf("failed to load: %w", err)
	}

	report := &comparisonReport{Files: files}
	for i, bf := range loaded {
		b, err := analysis.NewBatch(bf.Responses, bf.Metrics)
		if err != nil {
			return nil, fmt.Errorf("invalid batch %s: %w", files[i], err)
		}
		report.Batches = append(report.Batches, reporting.Comparison{
			Experiment: bf.Experiment,
			Overview:   b.Overview(),
		})
	}
	return report, nil
}
