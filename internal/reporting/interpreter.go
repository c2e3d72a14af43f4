package reporting

import (
	"fmt"

	"github.com/spboyer/gridlens/internal/statistics"
)

// InterpretQuality returns a plain-language label for an overall quality score (0–1).
func InterpretQuality(score float64) string {
	pct := score * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretSpread explains how consistent quality was across a batch.
func InterpretSpread(s statistics.Summary) string {
	switch {
	case s.N == 0:
		return "No scored responses."
	case !s.HasSpread():
		return fmt.Sprintf("Every scored response has the same quality (n=%d).", s.N)
	case s.StdDev < 0.1:
		return fmt.Sprintf("Quality is consistent across responses (σ=%.2f).", s.StdDev)
	default:
		return fmt.Sprintf("Quality varies noticeably between responses (σ=%.2f). Parameter choice matters here.", s.StdDev)
	}
}

// InterpretVariety labels how different a response's wording is from its peers.
func InterpretVariety(v float64) string {
	switch {
	case v >= 0.8:
		return "distinct wording"
	case v >= 0.5:
		return "partly overlaps other responses"
	default:
		return "mostly repeats other responses"
	}
}
