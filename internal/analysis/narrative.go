package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spboyer/gridlens/internal/models"
	"github.com/spboyer/gridlens/internal/statistics"
)

// NoPatternSummary is returned when no summary threshold is crossed.
const NoPatternSummary = "No decisive pattern detected."

// NoTendenciesNote is shown when no parameter correlates strongly enough
// with quality to report.
const NoTendenciesNote = "Insufficient parameter spread to learn tendencies this batch."

// TendencyThreshold is the smallest |r| reported by ParameterNotes.
const TendencyThreshold = 0.2

// Summarize returns a one- or two-sentence description of m. A non-blank
// summary supplied by the upstream scorer in details always wins, even when
// other detail keys are malformed.
func Summarize(m models.Metric) string {
	d, _ := m.TypedDetails()
	if s := strings.TrimSpace(d.Summary); s != "" {
		return s
	}
	return SummarizeScores(m.Scores)
}

// SummarizeScores describes a score map using fixed per-metric thresholds.
// These phrases are user-facing product text; change them deliberately.
func SummarizeScores(scores map[string]float64) string {
	score := func(key string, missing float64) float64 {
		if v, ok := scores[key]; ok {
			return v
		}
		return missing
	}

	var good []string
	if score(models.MetricStructure, 0) > 0.8 {
		good = append(good, "well-structured")
	}
	if score(models.MetricReadability, 0) > 0.7 {
		good = append(good, "readable")
	}
	if score(models.MetricLexicalDiversity, 0) > 0.6 {
		good = append(good, "uses diverse wording")
	}
	if score(models.MetricRedundancy, 0) == 1 {
		good = append(good, "avoids repetition")
	}

	var issues []string
	if score(models.MetricCoherence, 1) < 0.4 {
		issues = append(issues, "coherence is weak")
	}
	if score(models.MetricLengthAdequacy, 1) < 0.5 {
		issues = append(issues, "length is far from the expected target")
	}
	if score(models.MetricCompleteness, 1) < 0.6 {
		issues = append(issues, "coverage of the prompt is incomplete")
	}

	var sentences []string
	if len(good) > 0 {
		sentences = append(sentences, "This response is "+strings.Join(good, ", ")+".")
	}
	if len(issues) > 0 {
		sentences = append(sentences, "However, "+strings.Join(issues, "; ")+".")
	}
	if len(sentences) == 0 {
		return NoPatternSummary
	}
	return strings.Join(sentences, " ")
}

// Summarize returns the narrative summary for response id.
func (b *Batch) Summarize(id string) (string, error) {
	m, err := b.Metric(id)
	if err != nil {
		return "", err
	}
	return Summarize(m), nil
}

// MetricExplanation describes one canonical score in plain language.
type MetricExplanation struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Meaning string `json:"meaning"`
	Verdict string `json:"verdict"`
}

var metricMeanings = map[string]string{
	models.MetricCoherence:        "How smoothly sentences connect.",
	models.MetricRedundancy:       "How much repetition exists.",
	models.MetricCompleteness:     "How much of your prompt the response covered.",
	models.MetricLexicalDiversity: "Variety of vocabulary used.",
	models.MetricStructure:        "Presence of headings, lists, bullet points, etc.",
	models.MetricReadability:      "How easy it is to read (sentence length, syllables).",
	models.MetricLengthAdequacy:   "How close the response is to the target length.",
}

func verdict(key string, pct int) string {
	switch key {
	case models.MetricCoherence:
		if pct < 40 {
			return "Very poor flow → sentences feel disconnected."
		}
		return "Good flow."
	case models.MetricRedundancy:
		if pct == 100 {
			return "No repetition at all → very good."
		}
		return "Some repetition present."
	case models.MetricCompleteness:
		if pct >= 70 {
			return "Good keyword coverage, but not perfect."
		}
		return "Missing many prompt keywords."
	case models.MetricLexicalDiversity:
		if pct >= 60 {
			return "Good variety, not repetitive."
		}
		return "Low vocabulary variety."
	case models.MetricStructure:
		if pct == 100 {
			return "Excellent structure → formatting is strong."
		}
		return "Weak structure; add headings/lists."
	case models.MetricReadability:
		if pct >= 70 {
			return "Very readable, flows well."
		}
		return "Hard to read; simplify sentences."
	case models.MetricLengthAdequacy:
		if pct < 50 {
			return "Too short or too long compared to ideal length."
		}
		return "Close to ideal length."
	}
	return ""
}

// ExplainMetrics explains every canonical score present in scores, in
// canonical order. Non-canonical keys are skipped.
func ExplainMetrics(scores map[string]float64) []MetricExplanation {
	out := make([]MetricExplanation, 0, len(models.MetricOrder))
	for _, k := range models.MetricOrder {
		v, ok := scores[k]
		if !ok {
			continue
		}
		pct := Percent(v)
		out = append(out, MetricExplanation{
			Key:     k,
			Label:   Label(k),
			Percent: pct,
			Meaning: metricMeanings[k],
			Verdict: verdict(k, pct),
		})
	}
	return out
}

// MissingKeywordsHint returns up to three prompt keywords the response missed,
// but only when completeness is low enough for them to matter. A missing
// completeness score counts as 0.
func MissingKeywordsHint(m models.Metric) []string {
	if m.Scores[models.MetricCompleteness] >= 0.4 {
		return nil
	}
	d, _ := m.TypedDetails()
	if len(d.KeywordsMissed) == 0 {
		return nil
	}
	if len(d.KeywordsMissed) > 3 {
		return d.KeywordsMissed[:3]
	}
	return d.KeywordsMissed
}

// ParameterNotes turns parameter tendencies into sentences, one per
// parameter whose correlation is sufficient and at least TendencyThreshold in
// magnitude, sorted by parameter name.
func ParameterNotes(tendencies map[string]statistics.Correlation) []string {
	names := make([]string, 0, len(tendencies))
	for name := range tendencies {
		names = append(names, name)
	}
	sort.Strings(names)

	var notes []string
	for _, name := range names {
		c := tendencies[name]
		if !c.Sufficient || math.Abs(c.Coefficient) < TendencyThreshold {
			continue
		}
		direction := "higher"
		if c.Coefficient < 0 {
			direction = "lower"
		}
		notes = append(notes, fmt.Sprintf("%s: %s values correlate with higher overall quality (r≈%.2f).",
			name, direction, c.Coefficient))
	}
	return notes
}

// Percent renders a [0,1] score as a whole percentage, clamping out-of-range values.
func Percent(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(clamp01(v) * 100))
}

// Label is the display form of a score key.
func Label(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
