package analysis

import (
	"sort"

	"github.com/spboyer/gridlens/internal/models"
	"github.com/spboyer/gridlens/internal/statistics"
)

const (
	// StrengthThreshold is how many batch standard deviations a score must sit
	// above (or below) the batch mean to count as a strength (or weakness).
	StrengthThreshold = 0.5
	// MaxRanked caps the strengths and the weaknesses reported per response.
	MaxRanked = 3
)

// RankedMetric is one score key of a response, placed relative to its batch.
type RankedMetric struct {
	Key   string           `json:"key"`
	Value float64          `json:"value"`
	Z     statistics.Score `json:"z"`
}

// Ranking lists a response's strengths and weaknesses relative to its batch.
// A Fallback flag is set when no key cleared the threshold on that side and
// the list instead holds the single best (or worst) raw score.
type Ranking struct {
	Strengths          []RankedMetric `json:"strengths"`
	Weaknesses         []RankedMetric `json:"weaknesses"`
	StrengthsFallback  bool           `json:"strengthsFallback"`
	WeaknessesFallback bool           `json:"weaknessesFallback"`
}

// Rank ranks the scores of response id against the batch.
func (b *Batch) Rank(id string) (Ranking, error) {
	m, err := b.Metric(id)
	if err != nil {
		return Ranking{}, err
	}
	return RankMetric(m, b.AllMetricStats()), nil
}

// RankMetric classifies each score of m using the batch distributions in
// batch. Keys without a distribution, or whose distribution has no spread,
// get a not-applicable z and can only surface through the fallback.
func RankMetric(m models.Metric, batch map[string]statistics.Summary) Ranking {
	items := make([]RankedMetric, 0, len(m.Scores))
	for _, k := range m.ScoreKeys() {
		v := m.Scores[k]
		items = append(items, RankedMetric{
			Key:   k,
			Value: v,
			Z:     statistics.StandardScore(v, batch[k]),
		})
	}

	r := Ranking{Strengths: []RankedMetric{}, Weaknesses: []RankedMetric{}}
	for _, it := range items {
		if !it.Z.Applicable {
			continue
		}
		switch {
		case it.Z.Value >= StrengthThreshold:
			r.Strengths = append(r.Strengths, it)
		case it.Z.Value <= -StrengthThreshold:
			r.Weaknesses = append(r.Weaknesses, it)
		}
	}
	sort.SliceStable(r.Strengths, func(i, j int) bool {
		return r.Strengths[i].Z.Value > r.Strengths[j].Z.Value
	})
	sort.SliceStable(r.Weaknesses, func(i, j int) bool {
		return r.Weaknesses[i].Z.Value < r.Weaknesses[j].Z.Value
	})
	if len(r.Strengths) > MaxRanked {
		r.Strengths = r.Strengths[:MaxRanked]
	}
	if len(r.Weaknesses) > MaxRanked {
		r.Weaknesses = r.Weaknesses[:MaxRanked]
	}

	if len(items) == 0 {
		return r
	}
	if len(r.Strengths) == 0 {
		r.Strengths = []RankedMetric{pickRaw(items, func(a, b float64) bool { return a > b })}
		r.StrengthsFallback = true
	}
	if len(r.Weaknesses) == 0 {
		r.Weaknesses = []RankedMetric{pickRaw(items, func(a, b float64) bool { return a < b })}
		r.WeaknessesFallback = true
	}
	return r
}

// pickRaw returns the item whose raw value is preferred by better. The key
// may already sit on the other side. Ties keep the earliest item in
// canonical order.
func pickRaw(items []RankedMetric, better func(a, b float64) bool) RankedMetric {
	pick := items[0]
	for _, it := range items[1:] {
		if better(it.Value, pick.Value) {
			pick = it
		}
	}
	return pick
}
