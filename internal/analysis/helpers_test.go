package analysis

import (
	"testing"

	"github.com/spboyer/gridlens/internal/models"
	"github.com/stretchr/testify/require"
)

func response(id, text string, params map[string]any) models.Response {
	return models.Response{ID: id, Text: text, Params: params}
}

func metric(responseID string, quality float64, scores map[string]float64) models.Metric {
	return models.Metric{
		ID:             "m-" + responseID,
		ResponseID:     responseID,
		OverallQuality: quality,
		Scores:         scores,
	}
}

func mustBatch(t *testing.T, responses []models.Response, rows []models.Metric) *Batch {
	t.Helper()
	b, err := NewBatch(responses, rows)
	require.NoError(t, err)
	return b
}

// qualityBatch is the three-response batch with overall quality 0.2, 0.9, 0.5.
func qualityBatch(t *testing.T) *Batch {
	t.Helper()
	return mustBatch(t,
		[]models.Response{
			response("r1", "Paris is the capital of France.", map[string]any{"temperature": 0.2}),
			response("r2", "The capital city of France is Paris, home of the Louvre.", map[string]any{"temperature": 0.5}),
			response("r3", "France has Paris as its capital.", map[string]any{"temperature": 0.8}),
		},
		[]models.Metric{
			metric("r1", 0.2, map[string]float64{"coherence": 0.9, "readability": 0.5, "structure": 0.2}),
			metric("r2", 0.9, map[string]float64{"coherence": 0.5, "readability": 0.5, "structure": 0.6}),
			metric("r3", 0.5, map[string]float64{"coherence": 0.1, "readability": 0.5, "structure": 1.0}),
		},
	)
}
