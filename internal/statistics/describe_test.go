package statistics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		wantMean float64
		wantSD   float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{0.75}, 0.75, 0},
		{"uniform", []float64{0.4, 0.4, 0.4}, 0.4, 0},
		{"population", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2},
		{"quality batch", []float64{0.2, 0.9, 0.5}, 1.6 / 3, math.Sqrt(0.0822222222222222)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.input)
			assert.InDelta(t, tt.wantMean, got.Mean, epsilon)
			assert.InDelta(t, tt.wantSD, got.StdDev, epsilon)
			assert.Equal(t, len(tt.input), got.N)
		})
	}
}

func TestDescribe_QualityScenario(t *testing.T) {
	s := Describe([]float64{0.2, 0.9, 0.5})
	assert.InDelta(t, 0.5333, s.Mean, 1e-4)
	assert.InDelta(t, 0.2867, s.StdDev, 1e-4)
}

func TestStandardScore(t *testing.T) {
	t.Run("with spread", func(t *testing.T) {
		z := StandardScore(7, Summary{Mean: 5, StdDev: 2, N: 8})
		require.True(t, z.Applicable)
		assert.InDelta(t, 1.0, z.Value, epsilon)
	})

	t.Run("zero spread", func(t *testing.T) {
		z := StandardScore(0.9, Summary{Mean: 0.9, StdDev: 0, N: 1})
		assert.False(t, z.Applicable)
		assert.False(t, math.IsNaN(z.Value))
		assert.False(t, math.IsInf(z.Value, 0))
	})

	t.Run("rounding residue", func(t *testing.T) {
		s := Describe([]float64{0.7, 0.7, 0.7, 0.7, 0.7, 0.7, 0.7})
		z := StandardScore(0.7, s)
		assert.False(t, z.Applicable)
	})
}

func TestScore_JSON(t *testing.T) {
	data, err := json.Marshal([]Score{{Value: 1.5, Applicable: true}, NotApplicable})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, "not-applicable"]`, string(data))

	var back []Score
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []Score{{Value: 1.5, Applicable: true}, NotApplicable}, back)
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name           string
		xs, ys         []float64
		wantSufficient bool
		want           float64
	}{
		{"empty", nil, nil, false, 0},
		{"two pairs", []float64{0.1, 0.9}, []float64{0.3, 0.8}, false, 0},
		{"perfect positive", []float64{0.2, 0.5, 0.8, 1.1}, []float64{0.3, 0.4, 0.5, 0.6}, true, 1},
		{"perfect negative", []float64{0.2, 0.5, 0.8}, []float64{0.9, 0.6, 0.3}, true, -1},
		{"constant x", []float64{0.7, 0.7, 0.7}, []float64{0.1, 0.5, 0.9}, true, 0},
		{"constant y", []float64{1, 2, 3}, []float64{0.5, 0.5, 0.5}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pearson(tt.xs, tt.ys)
			assert.Equal(t, tt.wantSufficient, got.Sufficient)
			assert.InDelta(t, tt.want, got.Coefficient, epsilon)
			assert.False(t, math.IsNaN(got.Coefficient))
		})
	}
}

func TestPearson_Bounds(t *testing.T) {
	xs := []float64{0.1, 0.4, 0.35, 0.8, 0.9, 0.05}
	ys := []float64{0.3, 0.2, 0.6, 0.7, 0.65, 0.4}
	got := Pearson(xs, ys)
	require.True(t, got.Sufficient)
	assert.GreaterOrEqual(t, got.Coefficient, -1.0)
	assert.LessOrEqual(t, got.Coefficient, 1.0)
	assert.Equal(t, 6, got.Samples)
}

func TestCorrelation_JSON(t *testing.T) {
	data, err := json.Marshal(Pearson([]float64{1}, []float64{1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"coefficient":"insufficient-data","samples":1}`, string(data))

	data, err = json.Marshal(Correlation{Coefficient: 0, Samples: 4, Sufficient: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"coefficient":0,"samples":4}`, string(data))

	var back Correlation
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Correlation{Samples: 4, Sufficient: true}, back)

	require.NoError(t, json.Unmarshal([]byte(`{"coefficient":"insufficient-data","samples":2}`), &back))
	assert.Equal(t, Correlation{Samples: 2}, back)

	assert.Error(t, json.Unmarshal([]byte(`{"coefficient":"strong","samples":2}`), &back))
}

func TestCorrelation_String(t *testing.T) {
	assert.Equal(t, "insufficient data", Correlation{Samples: 2}.String())
	assert.Equal(t, "r=0.50 (n=5)", Correlation{Coefficient: 0.5, Samples: 5, Sufficient: true}.String())
}
