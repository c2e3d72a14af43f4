package statistics

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// ZeroVarianceEpsilon is the spread below which a sample is treated as having
// no variance at all. Floating-point means of identical values can leave a
// residue on the order of 1e-17; that must not turn into a huge z-score.
const ZeroVarianceEpsilon = 1e-12

// MinCorrelationSamples is the number of paired observations required before
// a correlation coefficient is reported.
const MinCorrelationSamples = 3

// Summary is the location and spread of a sample.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	N      int     `json:"n"`
}

// Describe returns the mean and population standard deviation of values.
// StdDev is 0 when fewer than 2 values exist. Empty input yields a zero Summary.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	m, err := stats.Mean(values)
	if err != nil {
		return Summary{N: len(values)}
	}
	s := Summary{Mean: m, N: len(values)}
	if len(values) < 2 {
		return s
	}
	sd, err := stats.StandardDeviationPopulation(values)
	if err != nil || math.IsNaN(sd) {
		return s
	}
	s.StdDev = sd
	return s
}

// HasSpread reports whether the sample varies enough to standardize against.
func (s Summary) HasSpread() bool {
	return s.StdDev > ZeroVarianceEpsilon
}

// Score is a standardized score. Applicable is false when the batch has no
// spread for the metric; Value is then 0 and carries no meaning.
type Score struct {
	Value      float64
	Applicable bool
}

// NotApplicable is the Score reported for zero-variance metrics.
var NotApplicable = Score{}

// StandardScore returns (value - mean) / stddev, or NotApplicable when the
// summary has no spread.
func StandardScore(value float64, s Summary) Score {
	if !s.HasSpread() {
		return NotApplicable
	}
	z := (value - s.Mean) / s.StdDev
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return NotApplicable
	}
	return Score{Value: z, Applicable: true}
}

func (s Score) String() string {
	if !s.Applicable {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", s.Value)
}

// MarshalJSON encodes the score as a number, or "not-applicable".
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Applicable {
		return json.Marshal("not-applicable")
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts the encodings produced by MarshalJSON.
func (s *Score) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*s = Score{Value: v, Applicable: true}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("standard score: %w", err)
	}
	if str != "not-applicable" {
		return fmt.Errorf("standard score: unexpected value %q", str)
	}
	*s = NotApplicable
	return nil
}

// Correlation is a Pearson coefficient together with the number of pairs it
// was computed from. Sufficient is false when fewer than
// MinCorrelationSamples pairs exist; Coefficient is then meaningless and must
// not be displayed as a value.
type Correlation struct {
	Coefficient float64
	Samples     int
	Sufficient  bool
}

// Pearson computes the Pearson correlation of xs and ys. Pairs beyond the
// shorter slice are ignored. When either side has no spread the coefficient is 0.
func Pearson(xs, ys []float64) Correlation {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	c := Correlation{Samples: n}
	if n < MinCorrelationSamples {
		return c
	}
	c.Sufficient = true

	x, y := xs[:n], ys[:n]
	if !Describe(x).HasSpread() || !Describe(y).HasSpread() {
		return c
	}
	r, err := stats.Pearson(x, y)
	if err != nil || math.IsNaN(r) {
		return c
	}
	c.Coefficient = math.Max(-1, math.Min(1, r))
	return c
}

func (c Correlation) String() string {
	if !c.Sufficient {
		return "insufficient data"
	}
	return fmt.Sprintf("r=%.2f (n=%d)", c.Coefficient, c.Samples)
}

type correlationJSON struct {
	Coefficient any `json:"coefficient"`
	Samples     int `json:"samples"`
}

// MarshalJSON encodes the coefficient as a number, or "insufficient-data".
func (c Correlation) MarshalJSON() ([]byte, error) {
	out := correlationJSON{Coefficient: c.Coefficient, Samples: c.Samples}
	if !c.Sufficient {
		out.Coefficient = "insufficient-data"
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the encodings produced by MarshalJSON.
func (c *Correlation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Coefficient json.RawMessage `json:"coefficient"`
		Samples     int             `json:"samples"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("correlation: %w", err)
	}
	out := Correlation{Samples: raw.Samples}
	var v float64
	if err := json.Unmarshal(raw.Coefficient, &v); err == nil {
		out.Coefficient = v
		out.Sufficient = true
		*c = out
		return nil
	}
	var str string
	if err := json.Unmarshal(raw.Coefficient, &str); err != nil || str != "insufficient-data" {
		return fmt.Errorf("correlation: unexpected coefficient %s", raw.Coefficient)
	}
	*c = out
	return nil
}
