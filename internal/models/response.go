package models

import (
	"encoding/json"
	"math"
	"time"
)

// Response is a single generation produced for one cell of a parameter grid.
// Responses are immutable once produced; analysis code only reads them.
type Response struct {
	ID        string         `json:"id" yaml:"id"`
	CreatedAt time.Time      `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	Text      string         `json:"text" yaml:"text"`
	Params    map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	TokensIn  *int           `json:"tokensIn" yaml:"tokensIn"`
	TokensOut *int           `json:"tokensOut" yaml:"tokensOut"`
	LatencyMs *int           `json:"latencyMs" yaml:"latencyMs"`
}

// DefaultSweepParams are the sampling parameters the experiment grid varies.
// They are always reported in parameter tendencies, even when absent.
var DefaultSweepParams = []string{"temperature", "top_p", "max_tokens", "seed"}

// NumericParam returns the named sampling parameter when it is present and
// numeric. Booleans, strings, nulls and non-finite numbers are not numeric.
func (r Response) NumericParam(name string) (float64, bool) {
	v, ok := r.Params[name]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
