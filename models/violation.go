package models

import (
	"fmt"
	"strconv"
)

// Violation records one slot priced below its floor-derived expectation.
// Immutable once created.
type Violation struct {
	VenueName      string
	RoomName       string
	Date           CalendarDate
	TimeLabel      string
	PricePerPerson int     // actual, whole euros as rendered
	ExpectedPrice  float64 // floor rate * session hours, un-rounded
	TotalPrice     string
}

// CSVHeader is the header row of the cumulative violation report.
var CSVHeader = []string{
	"VENUE", "ROOM", "DATE", "SLOT",
	"PRICE_PER_PERSON", "EXPECTED_PRICE_PER_PERSON", "TOTAL_PRICE",
}

// CSVRow renders the violation as one report row, aligned with CSVHeader.
func (v Violation) CSVRow() []string {
	return []string{
		v.VenueName,
		v.RoomName,
		v.Date.String(),
		v.TimeLabel,
		strconv.Itoa(v.PricePerPerson),
		strconv.FormatFloat(v.ExpectedPrice, 'f', -1, 64),
		v.TotalPrice,
	}
}

// String renders the human-readable violation line.
func (v Violation) String() string {
	return fmt.Sprintf("%s - %s (%s) [%s] => got: %d€ per person / expected: > %s per person (total: %s)",
		v.VenueName, v.RoomName, v.Date, v.TimeLabel,
		v.PricePerPerson,
		strconv.FormatFloat(v.ExpectedPrice, 'f', -1, 64),
		v.TotalPrice)
}
