package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spboyer/gridlens/internal/export"
	"github.com/spf13/cobra"
)

func newExportCommand() *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export <batch-file>",
		Short: "Export one row per response as CSV or JSON",
		Long: `Export a batch as one row per response, including the experiment, the
response text, its parameters, its metric scores and whether it is the best
fit of the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "csv", "json"); err != nil {
				return err
			}

			bf, b, err := loadBatch(args[0])
			if err != nil {
				return err
			}
			rows := export.Rows(bf.Experiment, b)

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close() //nolint:errcheck
				w = f
			}

			if format == "json" {
				err = export.WriteJSON(w, export.NewDocument(bf.Experiment, rows))
			} else {
				err = export.WriteCSV(w, rows)
			}
			if err != nil {
				return err
			}
			if output != "" {
				slog.Debug("export written", "path", output, "rows", len(rows), "format", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
