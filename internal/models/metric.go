package models

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Canonical score keys produced by the upstream scorer.
const (
	MetricCoherence        = "coherence"
	MetricRedundancy       = "redundancy"
	MetricCompleteness     = "completeness"
	MetricLexicalDiversity = "lexical_diversity"
	MetricStructure        = "structure"
	MetricReadability      = "readability"
	MetricLengthAdequacy   = "length_adequacy"
)

// MetricOrder is the display order of the canonical score keys.
var MetricOrder = []string{
	MetricCoherence,
	MetricRedundancy,
	MetricCompleteness,
	MetricLexicalDiversity,
	MetricStructure,
	MetricReadability,
	MetricLengthAdequacy,
}

// Metric holds the upstream scores for exactly one Response.
type Metric struct {
	ID             string             `json:"id" yaml:"id"`
	ResponseID     string             `json:"responseId" yaml:"responseId"`
	OverallQuality float64            `json:"overallQuality" yaml:"overallQuality"`
	Scores         map[string]float64 `json:"scores" yaml:"scores"`
	Details        map[string]any     `json:"details,omitempty" yaml:"details,omitempty"`
	Versions       map[string]string  `json:"versions,omitempty" yaml:"versions,omitempty"`
}

// Well-known keys of Metric.Details.
const (
	DetailSummary        = "summary"
	DetailKeywordsMissed = "keywordsMissed"
)

// Details is the typed view of the well-known keys in Metric.Details.
type Details struct {
	Summary        string
	KeywordsMissed []string
}

// TypedDetails decodes the well-known keys of the free-form details map.
// Each key is decoded on its own: a key that fails to decode is left zero
// and reported in the joined error, while the other keys are still filled.
// Unknown keys are ignored.
func (m Metric) TypedDetails() (Details, error) {
	var d Details
	var errs []error
	if v, ok := m.Details[DetailSummary]; ok {
		var summary string
		if err := mapstructure.Decode(v, &summary); err != nil {
			errs = append(errs, fmt.Errorf("details.%s: %w", DetailSummary, err))
		} else {
			d.Summary = summary
		}
	}
	if v, ok := m.Details[DetailKeywordsMissed]; ok {
		var keywords []string
		if err := mapstructure.Decode(v, &keywords); err != nil {
			errs = append(errs, fmt.Errorf("details.%s: %w", DetailKeywordsMissed, err))
		} else {
			d.KeywordsMissed = keywords
		}
	}
	return d, errors.Join(errs...)
}

// ScoreKeys returns the metric's score keys in canonical order.
func (m Metric) ScoreKeys() []string {
	keys := make([]string, 0, len(m.Scores))
	for k := range m.Scores {
		keys = append(keys, k)
	}
	return SortMetricKeys(keys)
}

// SortMetricKeys orders keys canonically: keys from MetricOrder first, in that
// order, then any other keys alphabetically. The input slice is sorted in place
// and returned.
func SortMetricKeys(keys []string) []string {
	rank := make(map[string]int, len(MetricOrder))
	for i, k := range MetricOrder {
		rank[k] = i
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ri, iKnown := rank[keys[i]]
		rj, jKnown := rank[keys[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
