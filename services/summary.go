package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"pricewatch/models"
	"pricewatch/utils"
)

type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Generate aggregates one sweep's violations into a SummaryReport.
func (s *SummaryService) Generate(violations []models.Violation) *models.SummaryReport {
	report := &models.SummaryReport{
		ViolationsByVenue: make(map[string]int),
		ViolationsByDate:  make(map[string]int),
	}

	if len(violations) == 0 {
		return report
	}

	report.TotalViolations = len(violations)

	for i := range violations {
		v := &violations[i]
		report.ViolationsByVenue[v.VenueName]++
		report.ViolationsByDate[v.Date.String()]++

		gap := v.ExpectedPrice - float64(v.PricePerPerson)
		if gap > report.WorstGap {
			report.WorstGap = gap
			report.Worst = v
		}
	}

	return report
}

// Print renders the report to stdout.
func (s *SummaryService) Print(r *models.SummaryReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  PRICE INTEGRITY SWEEP SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Violations found : \033[1m%d\033[0m\n", r.TotalViolations)
	fmt.Println()

	if r.Worst != nil {
		fmt.Printf("\033[1;33m  Worst Underpricing\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", r.Worst)
		fmt.Printf("  Gap below expectation : \033[1;31m%.2f€ per person\033[0m\n", r.WorstGap)
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Violations by Venue\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ViolationsByVenue) == 0 {
		fmt.Printf("  No violations\n")
	} else {
		printCounts(r.ViolationsByVenue)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Affected Dates\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ViolationsByDate) == 0 {
		fmt.Printf("  No violations\n")
	} else {
		printCounts(r.ViolationsByDate)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// printCounts renders a count map sorted by count descending, then key.
func printCounts(counts map[string]int) {
	type entry struct {
		key   string
		count int
	}
	var entries []entry
	for k, c := range counts {
		entries = append(entries, entry{k, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	for _, e := range entries {
		bar := strings.Repeat("█", e.count)
		fmt.Printf("  %-30s %s (%s)\n", e.key, bar, strconv.Itoa(e.count))
	}
}
