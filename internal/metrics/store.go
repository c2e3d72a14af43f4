// Package metrics provides an in-memory, read-only view over a batch's
// metric rows.
package metrics

import "github.com/spboyer/gridlens/internal/models"

// Store indexes metric rows by the response they score.
type Store struct {
	rows       []models.Metric
	byResponse map[string]int
	keys       []string
}

// NewStore builds a Store over rows. When two rows reference the same
// response, the first one wins; callers that care should reject duplicates
// before building the store.
func NewStore(rows []models.Metric) *Store {
	s := &Store{
		rows:       rows,
		byResponse: make(map[string]int, len(rows)),
	}
	seen := make(map[string]bool)
	for i, m := range rows {
		if _, ok := s.byResponse[m.ResponseID]; !ok {
			s.byResponse[m.ResponseID] = i
		}
		for k := range m.Scores {
			if !seen[k] {
				seen[k] = true
				s.keys = append(s.keys, k)
			}
		}
	}
	models.SortMetricKeys(s.keys)
	return s
}

// Lookup returns the metric row for responseID.
func (s *Store) Lookup(responseID string) (models.Metric, bool) {
	i, ok := s.byResponse[responseID]
	if !ok {
		return models.Metric{}, false
	}
	return s.rows[i], true
}

// Rows returns the metric rows in their original order.
func (s *Store) Rows() []models.Metric {
	return s.rows
}

// Len returns the number of metric rows.
func (s *Store) Len() int {
	return len(s.rows)
}

// Keys returns the union of score keys across all rows, in canonical order.
func (s *Store) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}
