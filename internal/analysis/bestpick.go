package analysis

import (
	"math"

	"github.com/spboyer/gridlens/internal/models"
)

// BestPick returns the response ID of the metric with the highest overall
// quality. Ties go to the metric that appears first in rows, so the pick is
// stable for a given input order. It returns false when rows holds no metric
// with a comparable quality.
func BestPick(rows []models.Metric) (string, bool) {
	bestID, best, found := "", 0.0, false
	for _, m := range rows {
		if math.IsNaN(m.OverallQuality) {
			continue
		}
		if !found || m.OverallQuality > best {
			bestID, best, found = m.ResponseID, m.OverallQuality, true
		}
	}
	return bestID, found
}

// BestPickID returns the best pick of the batch.
func (b *Batch) BestPickID() (string, bool) {
	return BestPick(b.store.Rows())
}
