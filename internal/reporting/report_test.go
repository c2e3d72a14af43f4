package reporting

import (
	"strings"
	"testing"

	"github.com/spboyer/gridlens/internal/analysis"
	"github.com/spboyer/gridlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sweep = models.Experiment{ID: "exp-1", Title: "Capitals", Model: "gpt-4o", Prompt: "What is the capital of France?"}

func sweepBatch(t *testing.T) *analysis.Batch {
	t.Helper()
	b, err := analysis.NewBatch(
		[]models.Response{
			{ID: "r1", Text: "Paris is the capital of France.", Params: map[string]any{"temperature": 0.2}},
			{ID: "r2", Text: "The capital city of France is Paris,\n home of the Louvre.", Params: map[string]any{"temperature": 0.5}},
			{ID: "r3", Text: "France has Paris as its capital.", Params: map[string]any{"temperature": 0.8}},
		},
		[]models.Metric{
			{ResponseID: "r1", OverallQuality: 0.2, Scores: map[string]float64{"coherence": 0.9, "structure": 0.2}},
			{ResponseID: "r2", OverallQuality: 0.9, Scores: map[string]float64{"coherence": 0.5, "structure": 0.6}},
			{ResponseID: "r3", OverallQuality: 0.5, Scores: map[string]float64{"coherence": 0.1, "structure": 1.0},
				Details: map[string]any{"keywordsMissed": []any{"Louvre"}}},
		},
	)
	require.NoError(t, err)
	return b
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a b c", Preview("a\n  b\tc", 80))
	assert.Equal(t, "abcd…", Preview("abcdefgh", 5))
	assert.Equal(t, "abcdefgh", Preview("abcdefgh", 0))
	assert.Equal(t, "日本…", Preview("日本語テキスト", 5), "wide runes count two columns")
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "日本", padRight("日本", 3))
	assert.Equal(t, "abcdef", padRight("abcdef", 2))
}

func TestWriteTable(t *testing.T) {
	var sb strings.Builder
	writeTable(&sb, "", []string{"A", "Long header"}, [][]string{{"xyz", "1"}, {"q", "22"}})
	assert.Equal(t, "A    Long header\n────────────────\nxyz  1\nq    22\n", sb.String())
}

func TestFormatOverview(t *testing.T) {
	out := FormatOverview(sweep, sweepBatch(t), 80)

	assert.Contains(t, out, "=== Capitals (exp-1) ===")
	assert.Contains(t, out, "Responses:  3 (3 scored)")
	assert.Contains(t, out, "Overall Quality: mean 0.53, std 0.29 — Needs Work (50-70%)")
	assert.Contains(t, out, "Best Pick: r2 (0.90) — Good (70-90%)")
	assert.Contains(t, out, `"The capital city of France is Paris, home of the Louvre."`)
	assert.Contains(t, out, "coherence")
	assert.Contains(t, out, "top_p        insufficient data")
	assert.Contains(t, out, "temperature: higher values correlate with higher overall quality")
}

func TestFormatOverview_NoScores(t *testing.T) {
	b, err := analysis.NewBatch([]models.Response{{ID: "a", Text: "x"}}, nil)
	require.NoError(t, err)

	out := FormatOverview(models.Experiment{}, b, 80)
	assert.Contains(t, out, "=== Untitled experiment ===")
	assert.Contains(t, out, "Overall Quality: no scored responses")
	assert.NotContains(t, out, "Best Pick")
	assert.Contains(t, out, analysis.NoTendenciesNote)
}

func TestFormatInspection(t *testing.T) {
	out, err := FormatInspection(sweepBatch(t), "r1", 40)
	require.NoError(t, err)

	assert.Contains(t, out, "=== Response r1 ===")
	assert.NotContains(t, out, "best pick")
	assert.Contains(t, out, "Overall Quality: 0.20 — Poor (<50%)")
	assert.Contains(t, out, "Parameters:      temperature=0.2")
	assert.Contains(t, out, "Strengths:\n  - coherence 0.90 (z=1.22)")
	assert.Contains(t, out, "Weaknesses:\n  - structure 0.20 (z=-1.22)")
	assert.Contains(t, out, "Weak structure; add headings/lists.")
}

func TestFormatInspection_BestPickAndHints(t *testing.T) {
	b := sweepBatch(t)

	out, err := FormatInspection(b, "r2", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "★ best pick")
	assert.Contains(t, out, "(nothing stands out; showing the raw extreme)")

	out, err = FormatInspection(b, "r3", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Try mentioning: Louvre")
}

func TestFormatInspection_Unknown(t *testing.T) {
	_, err := FormatInspection(sweepBatch(t), "nope", 80)
	require.ErrorIs(t, err, analysis.ErrUnknownResponse)
}

func TestFormatComparison(t *testing.T) {
	b := sweepBatch(t)
	empty, err := analysis.NewBatch([]models.Response{{ID: "a"}}, nil)
	require.NoError(t, err)

	out := FormatComparison([]Comparison{
		{Experiment: sweep, Overview: b.Overview()},
		{Experiment: models.Experiment{ID: "exp-2"}, Overview: empty.Overview()},
	})

	assert.Contains(t, out, "=== Comparing 2 batches ===")
	assert.Contains(t, out, "Capitals (exp-1)")
	assert.Contains(t, out, "3/3")
	assert.Contains(t, out, "0/1")
	assert.Contains(t, out, "Tendencies (r with overall quality):")

	var tempLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "temperature") {
			tempLine = line
		}
	}
	require.NotEmpty(t, tempLine)
	assert.Contains(t, tempLine, "+0.")
	assert.True(t, strings.HasSuffix(tempLine, "n/a"))
}
