// Package reporting renders batch analyses as plain-language text.
package reporting

import (
	"fmt"
	"strings"

	"github.com/spboyer/gridlens/internal/analysis"
	"github.com/spboyer/gridlens/internal/models"
	"github.com/spboyer/gridlens/internal/statistics"
)

// DefaultPreviewWidth is used when the caller has no terminal width.
const DefaultPreviewWidth = 80

func heading(exp models.Experiment) string {
	switch {
	case exp.Title != "" && exp.ID != "":
		return fmt.Sprintf("%s (%s)", exp.Title, exp.ID)
	case exp.Title != "":
		return exp.Title
	case exp.ID != "":
		return exp.ID
	}
	return "Untitled experiment"
}

// FormatOverview produces the batch-level report: best pick, quality
// distribution, metric profile and parameter tendencies.
func FormatOverview(exp models.Experiment, b *analysis.Batch, previewWidth int) string {
	var sb strings.Builder
	o := b.Overview()

	sb.WriteString(fmt.Sprintf("=== %s ===\n\n", heading(exp)))
	if exp.Model != "" {
		sb.WriteString(fmt.Sprintf("Model:      %s\n", exp.Model))
	}
	if exp.Prompt != "" {
		sb.WriteString(fmt.Sprintf("Prompt:     %s\n", Preview(exp.Prompt, previewWidth-12)))
	}
	sb.WriteString(fmt.Sprintf("Responses:  %d (%d scored)\n\n", o.Responses, o.Scored))

	if o.Scored > 0 {
		sb.WriteString(fmt.Sprintf("Overall Quality: mean %.2f, std %.2f — %s\n",
			o.Quality.Mean, o.Quality.StdDev, InterpretQuality(o.Quality.Mean)))
		sb.WriteString(fmt.Sprintf("  %s\n", InterpretSpread(o.Quality)))
	} else {
		sb.WriteString("Overall Quality: no scored responses\n")
	}

	if o.BestPickID != "" {
		m, _ := b.Metric(o.BestPickID)
		sb.WriteString(fmt.Sprintf("\nBest Pick: %s (%.2f) — %s\n",
			o.BestPickID, m.OverallQuality, InterpretQuality(m.OverallQuality)))
		if r, ok := b.Response(o.BestPickID); ok {
			sb.WriteString(fmt.Sprintf("  %q\n", Preview(r.Text, previewWidth-4)))
		}
	}

	if len(o.Metrics) > 0 {
		sb.WriteString("\nMetric Profile:\n")
		rows := make([][]string, 0, len(o.Metrics))
		for _, ms := range o.Metrics {
			rows = append(rows, []string{
				analysis.Label(ms.Key),
				fmt.Sprintf("%.2f", ms.Mean),
				fmt.Sprintf("%.2f", ms.StdDev),
			})
		}
		writeTable(&sb, "  ", []string{"Metric", "Mean", "Std"}, rows)
	}

	sb.WriteString("\nParameter Tendencies:\n")
	rows := make([][]string, 0, len(o.Tendencies))
	for _, t := range o.Tendencies {
		rows = append(rows, []string{t.Param, t.Correlation.String()})
	}
	writeTable(&sb, "  ", []string{"Parameter", "Correlation with quality"}, rows)

	sb.WriteString("\n")
	writeNotes(&sb, o.ParameterNotes)
	return sb.String()
}

func writeNotes(sb *strings.Builder, notes []string) {
	if len(notes) == 0 {
		sb.WriteString(analysis.NoTendenciesNote + "\n")
		return
	}
	sb.WriteString("Notes:\n")
	for _, n := range notes {
		sb.WriteString("  - " + n + "\n")
	}
}

// FormatInspection produces the report for a single response.
func FormatInspection(b *analysis.Batch, id string, previewWidth int) (string, error) {
	in, err := b.Inspect(id)
	if err != nil {
		return "", err
	}
	r, _ := b.Response(id)

	var sb strings.Builder
	title := "Response " + id
	if in.IsBestPick {
		title += " ★ best pick"
	}
	sb.WriteString(fmt.Sprintf("=== %s ===\n\n", title))
	sb.WriteString(fmt.Sprintf("  %q\n\n", Preview(r.Text, previewWidth-4)))

	sb.WriteString(fmt.Sprintf("Overall Quality: %.2f — %s\n", in.OverallQuality, InterpretQuality(in.OverallQuality)))
	sb.WriteString(fmt.Sprintf("Variety:         %.2f (%s)\n", in.Variety, InterpretVariety(in.Variety)))

	var set []string
	for _, p := range in.Params {
		if p.Value != nil {
			set = append(set, fmt.Sprintf("%s=%g", p.Name, *p.Value))
		}
	}
	if len(set) > 0 {
		sb.WriteString(fmt.Sprintf("Parameters:      %s\n", strings.Join(set, ", ")))
	}

	sb.WriteString("\nSummary: " + in.Summary + "\n")

	writeRanked(&sb, "Strengths", in.Ranking.Strengths, in.Ranking.StrengthsFallback)
	writeRanked(&sb, "Weaknesses", in.Ranking.Weaknesses, in.Ranking.WeaknessesFallback)

	if len(in.Explanations) > 0 {
		sb.WriteString("\nWhat the scores mean:\n")
		rows := make([][]string, 0, len(in.Explanations))
		for _, e := range in.Explanations {
			rows = append(rows, []string{e.Label, fmt.Sprintf("%d%%", e.Percent), e.Verdict})
		}
		writeTable(&sb, "  ", []string{"Metric", "Score", "Verdict"}, rows)
	}

	if len(in.MissingKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("\nTry mentioning: %s\n", strings.Join(in.MissingKeywords, ", ")))
	}

	sb.WriteString("\n")
	writeNotes(&sb, in.ParameterNotes)
	return sb.String(), nil
}

func writeRanked(sb *strings.Builder, title string, items []analysis.RankedMetric, fallback bool) {
	sb.WriteString("\n" + title + ":")
	if len(items) == 0 {
		sb.WriteString(" none\n")
		return
	}
	if fallback {
		sb.WriteString(" (nothing stands out; showing the raw extreme)")
	}
	sb.WriteString("\n")
	for _, it := range items {
		sb.WriteString(fmt.Sprintf("  - %s %.2f (z=%s)\n", analysis.Label(it.Key), it.Value, it.Z))
	}
}

// Comparison is one batch in a side-by-side report.
type Comparison struct {
	Experiment models.Experiment `json:"experiment"`
	Overview   analysis.Overview `json:"overview"`
}

// FormatComparison renders several batches side by side: one summary row per
// batch, then a parameter-by-batch table of tendencies.
func FormatComparison(items []Comparison) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== Comparing %d batches ===\n\n", len(items)))

	rows := make([][]string, 0, len(items))
	for _, c := range items {
		best, mean, std, label := "—", "—", "—", "—"
		if c.Overview.BestPickID != "" {
			best = c.Overview.BestPickID
		}
		if c.Overview.Scored > 0 {
			mean = fmt.Sprintf("%.2f", c.Overview.Quality.Mean)
			std = fmt.Sprintf("%.2f", c.Overview.Quality.StdDev)
			label = InterpretQuality(c.Overview.Quality.Mean)
		}
		rows = append(rows, []string{
			heading(c.Experiment),
			c.Experiment.Model,
			fmt.Sprintf("%d/%d", c.Overview.Scored, c.Overview.Responses),
			best, mean, std, label,
		})
	}
	writeTable(&sb, "", []string{"Experiment", "Model", "Scored", "Best", "Mean", "Std", "Quality"}, rows)

	params := comparedParams(items)
	if len(params) == 0 {
		return sb.String()
	}

	sb.WriteString("\nTendencies (r with overall quality):\n")
	header := []string{"Parameter"}
	for _, c := range items {
		header = append(header, heading(c.Experiment))
	}
	rows = rows[:0]
	for _, p := range params {
		row := []string{p}
		for _, c := range items {
			row = append(row, tendencyCell(c.Overview, p))
		}
		rows = append(rows, row)
	}
	writeTable(&sb, "  ", header, rows)
	return sb.String()
}

// comparedParams is the union of tendency parameters, in first-seen order.
func comparedParams(items []Comparison) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range items {
		for _, t := range c.Overview.Tendencies {
			if !seen[t.Param] {
				seen[t.Param] = true
				out = append(out, t.Param)
			}
		}
	}
	return out
}

func tendencyCell(o analysis.Overview, param string) string {
	for _, t := range o.Tendencies {
		if t.Param == param {
			return correlationCell(t.Correlation)
		}
	}
	return "—"
}

func correlationCell(c statistics.Correlation) string {
	if !c.Sufficient {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f", c.Coefficient)
}
