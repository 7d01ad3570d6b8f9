package checker

import (
	"fmt"
	"strconv"
	"strings"

	"pricewatch/models"
)

// ValidatePage checks every slot on the page against the venue's floor rate
// and returns a violation for each slot priced below expectation. Violations
// are data outcomes, not errors: the whole page is always validated. An
// error means the page's data itself is inconsistent (unparsable time or
// price, non-positive duration) and the run must not trust it.
func ValidatePage(venue models.Venue, page *models.SlotPage) ([]models.Violation, error) {
	var violations []models.Violation

	for _, slot := range page.Slots {
		start, end, err := SplitTimeLabel(slot.TimeLabel)
		if err != nil {
			return nil, fmt.Errorf("room %q: %w", slot.RoomName, err)
		}
		hours, err := SessionHours(start, end)
		if err != nil {
			return nil, fmt.Errorf("room %q: %w", slot.RoomName, err)
		}

		actual, err := parsePricePerPerson(slot.PricePerPerson)
		if err != nil {
			return nil, fmt.Errorf("room %q slot [%s]: %w", slot.RoomName, slot.TimeLabel, err)
		}

		// Actual is the rendered whole-euro amount; expected stays an
		// un-rounded decimal. Equal prices never violate.
		expected := venue.FloorRate * hours
		if float64(actual) < expected {
			violations = append(violations, models.Violation{
				VenueName:      venue.Name,
				RoomName:       slot.RoomName,
				Date:           page.Date,
				TimeLabel:      slot.TimeLabel,
				PricePerPerson: actual,
				ExpectedPrice:  expected,
				TotalPrice:     slot.TotalPrice,
			})
		}
	}

	return violations, nil
}

// parsePricePerPerson reads the leading integer of a rendered per-person
// price such as "10", "10.50" or "10€", discarding any fractional part and
// trailing currency decoration.
func parsePricePerPerson(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("price per person %q: no leading integer", raw)
	}
	return strconv.Atoi(s[:i])
}
