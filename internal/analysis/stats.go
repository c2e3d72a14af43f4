package analysis

import (
	"sort"

	"github.com/spboyer/gridlens/internal/models"
	"github.com/spboyer/gridlens/internal/statistics"
)

// OverallQualityStats returns the mean and population standard deviation of
// overall quality across scored responses.
func (b *Batch) OverallQualityStats() statistics.Summary {
	values := make([]float64, len(b.scored))
	for i, s := range b.scored {
		values[i] = s.metric.OverallQuality
	}
	return statistics.Describe(values)
}

// PerMetricStats returns the distribution of one score key across scored
// responses. A response missing the key counts as 0.
func (b *Batch) PerMetricStats(key string) statistics.Summary {
	values := make([]float64, len(b.scored))
	for i, s := range b.scored {
		values[i] = s.metric.Scores[key]
	}
	return statistics.Describe(values)
}

// AllMetricStats returns PerMetricStats for every score key in the batch.
func (b *Batch) AllMetricStats() map[string]statistics.Summary {
	keys := b.store.Keys()
	out := make(map[string]statistics.Summary, len(keys))
	for _, k := range keys {
		out[k] = b.PerMetricStats(k)
	}
	return out
}

// ParameterQualityCorrelation correlates a sampling parameter with overall
// quality, using only scored responses where the parameter is numeric.
func (b *Batch) ParameterQualityCorrelation(param string) statistics.Correlation {
	var xs, ys []float64
	for _, s := range b.scored {
		v, ok := s.response.NumericParam(param)
		if !ok {
			continue
		}
		xs = append(xs, v)
		ys = append(ys, s.metric.OverallQuality)
	}
	return statistics.Pearson(xs, ys)
}

// ParamNames returns the parameters reported as tendencies: the default sweep
// parameters, followed by any other parameter that is numeric on at least one
// scored response, alphabetically.
func (b *Batch) ParamNames() []string {
	names := append([]string(nil), models.DefaultSweepParams...)
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	var extra []string
	for _, s := range b.scored {
		for name := range s.response.Params {
			if known[name] {
				continue
			}
			if _, ok := s.response.NumericParam(name); ok {
				known[name] = true
				extra = append(extra, name)
			}
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// ParameterTendencies correlates every parameter in ParamNames with overall quality.
func (b *Batch) ParameterTendencies() map[string]statistics.Correlation {
	names := b.ParamNames()
	out := make(map[string]statistics.Correlation, len(names))
	for _, n := range names {
		out[n] = b.ParameterQualityCorrelation(n)
	}
	return out
}

// ProfilePoint is the batch mean of one score key.
type ProfilePoint struct {
	Key  string  `json:"key"`
	Mean float64 `json:"mean"`
}

// Profile returns the batch's mean score per key, each score clamped to
// [0,1], in canonical key order.
func (b *Batch) Profile() []ProfilePoint {
	keys := b.store.Keys()
	out := make([]ProfilePoint, 0, len(keys))
	for _, k := range keys {
		values := make([]float64, len(b.scored))
		for i, s := range b.scored {
			values[i] = clamp01(s.metric.Scores[k])
		}
		out = append(out, ProfilePoint{Key: k, Mean: statistics.Describe(values).Mean})
	}
	return out
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
