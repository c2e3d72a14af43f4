package webapi

import (
	"time"

	"github.com/spboyer/gridlens/internal/analysis"
	"github.com/spboyer/gridlens/internal/models"
)

// ExperimentSummary is the API response for a single experiment in the list.
type ExperimentSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"createdAt"`
	Responses  int       `json:"responses"`
	Scored     int       `json:"scored"`
	BestPickID string    `json:"bestPickId,omitempty"`
	Quality    float64   `json:"quality"`
	// Error is set when the batch file loaded but its rows do not form a
	// valid batch.
	Error string `json:"error,omitempty"`
}

// ExperimentDetail is the batch-level analysis of one experiment.
type ExperimentDetail struct {
	Experiment models.Experiment `json:"experiment"`
	Overview   analysis.Overview `json:"overview"`
}

// BestPickResponse names the best response of an experiment. Found is false
// when the experiment has no scored responses.
type BestPickResponse struct {
	ExperimentID   string           `json:"experimentId"`
	Found          bool             `json:"found"`
	ResponseID     string           `json:"responseId,omitempty"`
	OverallQuality float64          `json:"overallQuality,omitempty"`
	Response       *models.Response `json:"response,omitempty"`
}

// TendenciesResponse is the parameter/quality correlation report of one experiment.
type TendenciesResponse struct {
	ExperimentID string              `json:"experimentId"`
	Tendencies   []analysis.Tendency `json:"tendencies"`
	Notes        []string            `json:"notes"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
