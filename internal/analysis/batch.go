// Package analysis ranks and summarizes the responses of one experiment batch
// relative to each other.
//
// Every query is a pure function of the Batch snapshot it is called on. A
// Batch never changes after NewBatch returns, so it may be shared between
// goroutines freely; callers build a fresh Batch whenever their responses or
// metrics change.
package analysis

import (
	"errors"
	"fmt"

	"github.com/spboyer/gridlens/internal/metrics"
	"github.com/spboyer/gridlens/internal/models"
)

var (
	// ErrUnknownResponse is returned when a response ID is not part of the batch.
	ErrUnknownResponse = errors.New("unknown response")
	// ErrNoMetrics is returned when a response exists but was never scored.
	ErrNoMetrics = errors.New("no metrics for this response")

	// ErrDuplicateResponse is returned by NewBatch when two responses share an ID.
	ErrDuplicateResponse = errors.New("duplicate response id")
	// ErrOrphanMetric is returned by NewBatch when a metric references a response
	// that is not in the batch.
	ErrOrphanMetric = errors.New("metric references unknown response")
	// ErrDuplicateMetric is returned by NewBatch when a response has more than one metric.
	ErrDuplicateMetric = errors.New("response has more than one metric")
)

// scored pairs a response with its metric.
type scored struct {
	response models.Response
	metric   models.Metric
}

// Batch is an immutable snapshot of one experiment run.
type Batch struct {
	responses []models.Response
	index     map[string]int
	store     *metrics.Store
	scored    []scored
}

// NewBatch validates and indexes a batch. The slices are copied; the maps
// inside responses and metrics are shared and must not be mutated afterwards.
func NewBatch(responses []models.Response, rows []models.Metric) (*Batch, error) {
	b := &Batch{
		responses: append([]models.Response(nil), responses...),
		index:     make(map[string]int, len(responses)),
	}
	for i, r := range b.responses {
		if _, dup := b.index[r.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateResponse, r.ID)
		}
		b.index[r.ID] = i
	}

	rows = append([]models.Metric(nil), rows...)
	seen := make(map[string]bool, len(rows))
	for _, m := range rows {
		if _, ok := b.index[m.ResponseID]; !ok {
			return nil, fmt.Errorf("%w: metric %q references %q", ErrOrphanMetric, m.ID, m.ResponseID)
		}
		if seen[m.ResponseID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMetric, m.ResponseID)
		}
		seen[m.ResponseID] = true
	}
	b.store = metrics.NewStore(rows)

	for _, r := range b.responses {
		if m, ok := b.store.Lookup(r.ID); ok {
			b.scored = append(b.scored, scored{response: r, metric: m})
		}
	}
	return b, nil
}

// Responses returns the batch's responses in their original order.
func (b *Batch) Responses() []models.Response {
	return append([]models.Response(nil), b.responses...)
}

// Metrics returns the batch's metric rows in their original order.
func (b *Batch) Metrics() []models.Metric {
	return append([]models.Metric(nil), b.store.Rows()...)
}

// MetricKeys returns every score key present in the batch, in canonical order.
func (b *Batch) MetricKeys() []string {
	return b.store.Keys()
}

// Len returns the number of responses.
func (b *Batch) Len() int {
	return len(b.responses)
}

// ScoredLen returns the number of responses that have a metric.
func (b *Batch) ScoredLen() int {
	return len(b.scored)
}

// Response returns the response with the given ID.
func (b *Batch) Response(id string) (models.Response, bool) {
	i, ok := b.index[id]
	if !ok {
		return models.Response{}, false
	}
	return b.responses[i], true
}

// Metric returns the metric scored for response id. It distinguishes a
// response that does not exist (ErrUnknownResponse) from one that was never
// scored (ErrNoMetrics).
func (b *Batch) Metric(id string) (models.Metric, error) {
	if _, ok := b.index[id]; !ok {
		return models.Metric{}, fmt.Errorf("%w: %q", ErrUnknownResponse, id)
	}
	m, ok := b.store.Lookup(id)
	if !ok {
		return models.Metric{}, fmt.Errorf("%w: %q", ErrNoMetrics, id)
	}
	return m, nil
}
