package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spboyer/gridlens/internal/analysis"
	"github.com/spboyer/gridlens/internal/batchfile"
	"github.com/spboyer/gridlens/internal/models"
	"github.com/spboyer/gridlens/internal/reporting"
	"github.com/spf13/cobra"
)

// overviewReport is the JSON output of analyze without --response.
type overviewReport struct {
	Experiment models.Experiment `json:"experiment"`
	Overview   analysis.Overview `json:"overview"`
}

func newAnalyzeCommand() *cobra.Command {
	var responseID string
	var format string

	cmd := &cobra.Command{
		Use:   "analyze <batch-file>",
		Short: "Analyze one batch of responses",
		Long: `Analyze one batch file (.json, .yaml, .yml or .json.gz).

Without --response, prints the batch overview: best pick, quality distribution,
metric profile and parameter tendencies. With --response, prints the full
analysis of that response: strengths, weaknesses, variety and summary.`,
		Args: cobra.ExactArgs(1),
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

			bf, b, err := loadBatch(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			width := previewWidth(w, cfg)
			if responseID != "" {
				return writeInspection(w, b, responseID, format, width)
			}
			if format == "json" {
				return writeJSON(w, overviewReport{Experiment: bf.Experiment, Overview: b.Overview()})
			}
			_, err = fmt.Fprint(w, reporting.FormatOverview(bf.Experiment, b, width))
			return err
		},
	}

	cmd.Flags().StringVarP(&responseID, "response", "r", "", "Analyze a single response by ID")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")

	return cmd
}

func writeInspection(w io.Writer, b *analysis.Batch, id, format string, width int) error {
	if format == "json" {
		in, err := b.Inspect(id)
		if err != nil {
			return fmt.Errorf("response %s: %w", id, err)
		}
		return writeJSON(w, in)
	}
	out, err := reporting.FormatInspection(b, id, width)
	if err != nil {
		return fmt.Errorf("response %s: %w", id, err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}

// loadBatch reads a batch file and builds its analysis.
func loadBatch(path string) (*models.BatchFile, *analysis.Batch, error) {
	bf, err := batchfile.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	b, err := analysis.NewBatch(bf.Responses, bf.Metrics)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid batch %s: %w", path, err)
	}
	return bf, b, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
