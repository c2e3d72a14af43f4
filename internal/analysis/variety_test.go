package analysis

import (
	"testing"

	"github.com/spboyer/gridlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariety(t *testing.T) {
	t.Run("identical texts", func(t *testing.T) {
		text := "Use a write-through cache with a short TTL."
		b := mustBatch(t,
			[]models.Response{response("a", text, nil), response("b", text, nil)},
			[]models.Metric{metric("a", 0.5, nil), metric("b", 0.6, nil)},
		)
		for _, id := range []string{"a", "b"} {
			v, err := b.Variety(id)
			require.NoError(t, err)
			assert.Equal(t, 0.0, v, id)
		}
	})

	t.Run("disjoint vocabulary", func(t *testing.T) {
		b := mustBatch(t,
			[]models.Response{response("a", "alpha beta gamma", nil), response("b", "delta epsilon", nil)},
			[]models.Metric{metric("a", 0.5, nil)},
		)
		v, err := b.Variety("a")
		require.NoError(t, err)
		assert.Equal(t, 1.0, v)
	})

	t.Run("averaged over peers", func(t *testing.T) {
		b := mustBatch(t,
			[]models.Response{
				response("focus", "alpha beta gamma", nil),
				response("p1", "beta gamma delta", nil),
				response("p2", "omega sigma", nil),
			},
			[]models.Metric{metric("focus", 0.5, nil)},
		)
		v, err := b.Variety("focus")
		require.NoError(t, err)
		assert.InDelta(t, 0.75, v, 1e-12, "unscored peers still count")
	})

	t.Run("no peers", func(t *testing.T) {
		b := mustBatch(t,
			[]models.Response{response("solo", "anything at all", nil)},
			[]models.Metric{metric("solo", 0.5, nil)},
		)
		v, err := b.Variety("solo")
		require.NoError(t, err)
		assert.Equal(t, 0.0, v)
	})

	t.Run("empty texts", func(t *testing.T) {
		b := mustBatch(t,
			[]models.Response{response("a", "", nil), response("b", "ok", nil)},
			[]models.Metric{metric("a", 0.5, nil)},
		)
		v, err := b.Variety("a")
		require.NoError(t, err)
		assert.Equal(t, 1.0, v, "both token sets empty means similarity 0")
	})
}

func TestVariety_Bounds(t *testing.T) {
	b := qualityBatch(t)
	for _, id := range []string{"r1", "r2", "r3"} {
		v, err := b.Variety(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.0, id)
		assert.LessOrEqual(t, v, 1.0, id)
	}
}

func TestVariety_MissingData(t *testing.T) {
	b := mustBatch(t,
		[]models.Response{response("a", "text", nil), response("b", "text", nil)},
		[]models.Metric{metric("a", 0.5, nil)},
	)
	_, err := b.Variety("b")
	assert.ErrorIs(t, err, ErrNoMetrics)
	_, err = b.Variety("z")
	assert.ErrorIs(t, err, ErrUnknownResponse)
}
