package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spboyer/gridlens/internal/projectconfig"
	"github.com/spboyer/gridlens/internal/reporting"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gridlens",
		Short: "gridlens - analyze parameter sweeps of LLM responses",
		Long: `gridlens analyzes batches of LLM responses generated for one prompt under
different sampling parameters.

Given the responses and the quality metrics scored for them, it picks the best
response, ranks each response's strengths and weaknesses against the batch,
estimates how distinct each response's wording is, and reports which
parameters tend to go with higher quality.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newServeCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadProjectConfig reads .gridlens.yaml from the working directory or one
// of its parents, falling back to defaults when there is none.
func loadProjectConfig() (*projectconfig.ProjectConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// previewWidth is the terminal width when w is a terminal, else the configured width.
func previewWidth(w io.Writer, cfg *projectconfig.ProjectConfig) int {
	if isTerminal(w) {
		f := w.(*os.File)
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	if cfg.Report.PreviewWidth > 0 {
		return cfg.Report.PreviewWidth
	}
	return reporting.DefaultPreviewWidth
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q: must be one of %v", format, allowed)
}
