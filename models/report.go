package models

// SummaryReport holds the aggregate view over all violations found in one
// monitoring sweep.
type SummaryReport struct {
	TotalViolations   int
	ViolationsByVenue map[string]int
	ViolationsByDate  map[string]int
	Worst             *Violation // largest gap below expectation
	WorstGap          float64
}
