package checker

import (
	"fmt"

	"pricewatch/models"
)

// AlignSlots zips the four positionally-aligned sequences a calendar page
// renders into per-slot records. Position i in every sequence must refer to
// the same slot; a length mismatch means the page was queried mid-render and
// nothing on it can be trusted, reported as ErrShapeMismatch.
func AlignSlots(timeLabels, roomNames, totalPrices, perPersonPrices []string) ([]models.RawSlot, error) {
	n := len(timeLabels)
	if len(roomNames) != n || len(totalPrices) != n || len(perPersonPrices) != n {
		return nil, fmt.Errorf("%w: times=%d rooms=%d totals=%d per-person=%d",
			ErrShapeMismatch, n, len(roomNames), len(totalPrices), len(perPersonPrices))
	}

	slots := make([]models.RawSlot, n)
	for i := 0; i < n; i++ {
		slots[i] = models.RawSlot{
			RoomName:       roomNames[i],
			TimeLabel:      timeLabels[i],
			TotalPrice:     totalPrices[i],
			PricePerPerson: perPersonPrices[i],
		}
	}
	return slots, nil
}
