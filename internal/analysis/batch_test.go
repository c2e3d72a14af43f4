package analysis

import (
	"errors"
	"testing"

	"github.com/spboyer/gridlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatch_Invariants(t *testing.T) {
	tests := []struct {
		name      string
		responses []models.Response
		metrics   []models.Metric
		wantErr   error
	}{
		{
			name:      "duplicate response",
			responses: []models.Response{response("r1", "a", nil), response("r1", "b", nil)},
			wantErr:   ErrDuplicateResponse,
		},
		{
			name:      "orphan metric",
			responses: []models.Response{response("r1", "a", nil)},
			metrics:   []models.Metric{metric("r9", 0.5, nil)},
			wantErr:   ErrOrphanMetric,
		},
		{
			name:      "two metrics for one response",
			responses: []models.Response{response("r1", "a", nil)},
			metrics:   []models.Metric{metric("r1", 0.5, nil), metric("r1", 0.6, nil)},
			wantErr:   ErrDuplicateMetric,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBatch(tt.responses, tt.metrics)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestNewBatch_Empty(t *testing.T) {
	b := mustBatch(t, nil, nil)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.ScoredLen())
	assert.Empty(t, b.MetricKeys())
}

func TestBatch_MetricLookupErrors(t *testing.T) {
	b := mustBatch(t,
		[]models.Response{response("r1", "scored", nil), response("r2", "unscored", nil)},
		[]models.Metric{metric("r1", 0.4, map[string]float64{"coherence": 0.4})},
	)

	m, err := b.Metric("r1")
	require.NoError(t, err)
	assert.Equal(t, "m-r1", m.ID)

	_, err = b.Metric("r2")
	assert.ErrorIs(t, err, ErrNoMetrics)

	_, err = b.Metric("nope")
	assert.ErrorIs(t, err, ErrUnknownResponse)
}

func TestNewBatch_CopiesInput(t *testing.T) {
	responses := []models.Response{response("r1", "original", nil)}
	b := mustBatch(t, responses, nil)

	responses[0].Text = "changed"
	r, ok := b.Response("r1")
	require.True(t, ok)
	assert.Equal(t, "original", r.Text)

	out := b.Responses()
	out[0].Text = "also changed"
	r, _ = b.Response("r1")
	assert.Equal(t, "original", r.Text)
}
