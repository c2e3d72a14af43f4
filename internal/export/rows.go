// Package export flattens an analyzed batch into per-response rows for CSV
// and JSON download.
package export

import (
	"time"

	"github.com/spboyer/gridlens/internal/analysis"
	"github.com/spboyer/gridlens/internal/models"
)

// ExportType tags JSON documents produced for a single experiment.
const ExportType = "per-experiment"

// Columns is the fixed CSV column order. Row's json tags use the same names.
var Columns = []string{
	"experimentId",
	"experimentTitle",
	"experimentPrompt",
	"model",
	"experimentCreatedAt",
	"responseIndex",
	"responseId",
	"responseText",
	"tokensIn",
	"tokensOut",
	"latencyMs",
	"params",
	"overallQuality",
	"scores",
	"details",
	"isBestFit",
}

// Row is one response together with its experiment and metric data.
// Pointer fields are nil when the value is absent.
type Row struct {
	ExperimentID        string             `json:"experimentId"`
	ExperimentTitle     string             `json:"experimentTitle"`
	ExperimentPrompt    string             `json:"experimentPrompt"`
	Model               string             `json:"model"`
	ExperimentCreatedAt string             `json:"experimentCreatedAt"`
	ResponseIndex       int                `json:"responseIndex"`
	ResponseID          string             `json:"responseId"`
	ResponseText        string             `json:"responseText"`
	TokensIn            *int               `json:"tokensIn"`
	TokensOut           *int               `json:"tokensOut"`
	LatencyMs           *int               `json:"latencyMs"`
	Params              map[string]any     `json:"params"`
	OverallQuality      *float64           `json:"overallQuality"`
	Scores              map[string]float64 `json:"scores"`
	Details             map[string]any     `json:"details"`
	IsBestFit           bool               `json:"isBestFit"`
}

// ExperimentInfo is the experiment header of a JSON export.
type ExperimentInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Prompt    string `json:"prompt"`
	Model     string `json:"model"`
	CreatedAt string `json:"createdAt"`
}

// Document is the JSON export of one experiment.
type Document struct {
	ExportType string         `json:"exportType"`
	Experiment ExperimentInfo `json:"experiment"`
	Results    []Row          `json:"results"`
}

// Rows builds one row per response in batch order. At most one row is
// marked as the best fit: the batch's best pick.
func Rows(exp models.Experiment, b *analysis.Batch) []Row {
	best, hasBest := b.BestPickID()
	created := formatTime(exp.CreatedAt)

	rows := make([]Row, 0, b.Len())
	for i, r := range b.Responses() {
		row := Row{
			ExperimentID:        exp.ID,
			ExperimentTitle:     exp.Title,
			ExperimentPrompt:    exp.Prompt,
			Model:               exp.Model,
			ExperimentCreatedAt: created,
			ResponseIndex:       i + 1,
			ResponseID:          r.ID,
			ResponseText:        r.Text,
			TokensIn:            r.TokensIn,
			TokensOut:           r.TokensOut,
			LatencyMs:           r.LatencyMs,
			Params:              orEmpty(r.Params),
			Scores:              map[string]float64{},
			Details:             map[string]any{},
			IsBestFit:           hasBest && r.ID == best,
		}
		if m, err := b.Metric(r.ID); err == nil {
			q := m.OverallQuality
			row.OverallQuality = &q
			if m.Scores != nil {
				row.Scores = m.Scores
			}
			row.Details = orEmpty(m.Details)
		}
		rows = append(rows, row)
	}
	return rows
}

// NewDocument wraps rows in the per-experiment JSON envelope.
func NewDocument(exp models.Experiment, rows []Row) Document {
	if rows == nil {
		rows = []Row{}
	}
	return Document{
		ExportType: ExportType,
		Experiment: ExperimentInfo{
			ID:        exp.ID,
			Title:     exp.Title,
			Prompt:    exp.Prompt,
			Model:     exp.Model,
			CreatedAt: formatTime(exp.CreatedAt),
		},
		Results: rows,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
