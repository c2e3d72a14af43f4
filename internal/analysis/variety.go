package analysis

import "github.com/spboyer/gridlens/internal/lexical"

// Variety returns how differently response id is worded from the rest of
// the batch: 1 minus its mean Jaccard token similarity to every other
// response. 0 means identical vocabulary on average, 1 fully disjoint. A
// response with no peers has variety 0, since there is nothing to compare.
func (b *Batch) Variety(id string) (float64, error) {
	if _, err := b.Metric(id); err != nil {
		return 0, err
	}
	focus := lexical.NewSet(b.responses[b.index[id]].Text)

	total, peers := 0.0, 0
	for _, r := range b.responses {
		if r.ID == id {
			continue
		}
		total += lexical.Jaccard(focus, lexical.NewSet(r.Text))
		peers++
	}
	if peers == 0 {
		return 0, nil
	}
	return clamp01(1 - total/float64(peers)), nil
}
