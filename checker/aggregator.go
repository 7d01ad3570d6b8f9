package checker

import "pricewatch/models"

// Aggregator collects the violations of one (venue, date) run in discovery
// order: page order, then in-page slot order. It never deduplicates —
// identical-looking violations on different pages are distinct occurrences.
// Each run owns its own Aggregator; nothing is shared across runs.
type Aggregator struct {
	records []models.Violation
}

// NewAggregator returns an empty per-run Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add appends records in the order given.
func (a *Aggregator) Add(records ...models.Violation) {
	a.records = append(a.records, records...)
}

// Len returns the number of collected records.
func (a *Aggregator) Len() int {
	return len(a.records)
}

// Drain hands the collected records to the caller and resets the Aggregator.
func (a *Aggregator) Drain() []models.Violation {
	out := a.records
	a.records = nil
	return out
}
