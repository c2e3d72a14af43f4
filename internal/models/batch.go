package models

import "time"

// Experiment identifies the prompt and model a batch was generated for.
type Experiment struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Prompt    string    `json:"prompt" yaml:"prompt"`
	Model     string    `json:"model" yaml:"model"`
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// BatchFile is the on-disk snapshot of one experiment run: its responses and
// the metrics scored for them.
type BatchFile struct {
	Experiment Experiment `json:"experiment" yaml:"experiment"`
	Responses  []Response `json:"responses" yaml:"responses"`
	Metrics    []Metric   `json:"metrics" yaml:"metrics"`
}
