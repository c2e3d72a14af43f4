package analysis

import "github.com/spboyer/gridlens/internal/statistics"

// ParamValue is one sampling parameter of a response. Value is nil when the
// response did not set the parameter numerically.
type ParamValue struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// Inspection is everything the dashboard shows for a single response.
type Inspection struct {
	ResponseID      string              `json:"responseId"`
	OverallQuality  float64             `json:"overallQuality"`
	IsBestPick      bool                `json:"isBestPick"`
	Params          []ParamValue        `json:"params"`
	Ranking         Ranking             `json:"ranking"`
	Variety         float64             `json:"variety"`
	Summary         string              `json:"summary"`
	Explanations    []MetricExplanation `json:"explanations"`
	MissingKeywords []string            `json:"missingKeywords,omitempty"`
	ParameterNotes  []string            `json:"parameterNotes"`
}

// Inspect assembles the full analysis of response id.
func (b *Batch) Inspect(id string) (Inspection, error) {
	m, err := b.Metric(id)
	if err != nil {
		return Inspection{}, err
	}
	variety, err := b.Variety(id)
	if err != nil {
		return Inspection{}, err
	}
	r, _ := b.Response(id)
	best, hasBest := b.BestPickID()

	params := make([]ParamValue, 0, len(b.ParamNames()))
	for _, name := range b.ParamNames() {
		pv := ParamValue{Name: name}
		if v, ok := r.NumericParam(name); ok {
			pv.Value = &v
		}
		params = append(params, pv)
	}

	notes := ParameterNotes(b.ParameterTendencies())
	if notes == nil {
		notes = []string{}
	}

	return Inspection{
		ResponseID:      id,
		OverallQuality:  m.OverallQuality,
		IsBestPick:      hasBest && best == id,
		Params:          params,
		Ranking:         RankMetric(m, b.AllMetricStats()),
		Variety:         variety,
		Summary:         Summarize(m),
		Explanations:    ExplainMetrics(m.Scores),
		MissingKeywords: MissingKeywordsHint(m),
		ParameterNotes:  notes,
	}, nil
}

// MetricStat is the batch distribution of one score key.
type MetricStat struct {
	Key string `json:"key"`
	statistics.Summary
}

// Tendency is the correlation of one sampling parameter with overall quality.
type Tendency struct {
	Param       string                 `json:"param"`
	Correlation statistics.Correlation `json:"correlation"`
}

// Overview is the batch-level analysis.
type Overview struct {
	Responses      int                `json:"responses"`
	Scored         int                `json:"scored"`
	BestPickID     string             `json:"bestPickId,omitempty"`
	Quality        statistics.Summary `json:"quality"`
	Metrics        []MetricStat       `json:"metrics"`
	Tendencies     []Tendency         `json:"tendencies"`
	ParameterNotes []string           `json:"parameterNotes"`
	Profile        []ProfilePoint     `json:"profile"`
}

// Overview assembles the batch-level analysis. Slices follow canonical key
// order and ParamNames order so the result is deterministic.
func (b *Batch) Overview() Overview {
	o := Overview{
		Responses: b.Len(),
		Scored:    b.ScoredLen(),
		Quality:   b.OverallQualityStats(),
		Profile:   b.Profile(),
	}
	o.BestPickID, _ = b.BestPickID()

	o.Metrics = make([]MetricStat, 0)
	for _, k := range b.MetricKeys() {
		o.Metrics = append(o.Metrics, MetricStat{Key: k, Summary: b.PerMetricStats(k)})
	}

	tendencies := b.ParameterTendencies()
	o.Tendencies = make([]Tendency, 0, len(tendencies))
	for _, name := range b.ParamNames() {
		o.Tendencies = append(o.Tendencies, Tendency{Param: name, Correlation: tendencies[name]})
	}
	o.ParameterNotes = ParameterNotes(tendencies)
	if o.ParameterNotes == nil {
		o.ParameterNotes = []string{}
	}
	return o
}
