package checker

import (
	"errors"
	"math"
	"testing"

	"pricewatch/models"
)

var testDate = models.CalendarDate{Year: 2026, Month: 9, Day: 15}

func slotPage(slots ...models.RawSlot) *models.SlotPage {
	return &models.SlotPage{Date: testDate, Slots: slots}
}

func TestValidatePageFlagsUnderpricedSlot(t *testing.T) {
	venue := models.Venue{ID: 2, Name: "Richer", FloorRate: 4.5}
	// 14:00 - 16:30 -> 2.3h -> expected 10.35
	page := slotPage(models.RawSlot{
		RoomName:       "Tokyo",
		TimeLabel:      "14:00 - 16:30",
		TotalPrice:     "60€",
		PricePerPerson: "10",
	})

	violations, err := ValidatePage(venue, page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1", len(violations))
	}

	v := violations[0]
	if v.VenueName != "Richer" || v.RoomName != "Tokyo" {
		t.Errorf("attribution: got %s/%s", v.VenueName, v.RoomName)
	}
	if v.Date != testDate {
		t.Errorf("date: got %s, want %s", v.Date, testDate)
	}
	if v.PricePerPerson != 10 {
		t.Errorf("actual price: got %d, want 10", v.PricePerPerson)
	}
	if math.Abs(v.ExpectedPrice-10.35) > 1e-9 {
		t.Errorf("expected price: got %v, want 10.35", v.ExpectedPrice)
	}
}

func TestValidatePageEqualPriceNeverViolates(t *testing.T) {
	venue := models.Venue{ID: 6, Name: "Recoletos", FloorRate: 4}
	// 10:00 - 12:00 -> 2h -> expected exactly 8
	page := slotPage(models.RawSlot{
		RoomName:       "Madrid",
		TimeLabel:      "10:00 - 12:00",
		TotalPrice:     "40€",
		PricePerPerson: "8",
	})

	violations, err := ValidatePage(venue, page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("got %d violations, want 0 (equal price is compliant)", len(violations))
	}
}

func TestValidatePageMidnightSlot(t *testing.T) {
	venue := models.Venue{ID: 5, Name: "Chartrons", FloorRate: 3}
	// 22:00 - 00:30 crosses midnight -> 2.3h -> expected 6.9
	page := slotPage(
		models.RawSlot{RoomName: "Bordeaux", TimeLabel: "22:00 - 00:30", TotalPrice: "50€", PricePerPerson: "7"},
		models.RawSlot{RoomName: "Bordeaux", TimeLabel: "22:00 - 00:30", TotalPrice: "40€", PricePerPerson: "6"},
	)

	violations, err := ValidatePage(venue, page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1", len(violations))
	}
	if violations[0].PricePerPerson != 6 {
		t.Errorf("flagged slot: got %d€, want the 6€ one", violations[0].PricePerPerson)
	}
}

func TestValidatePageTruncatesFractionalPrice(t *testing.T) {
	venue := models.Venue{ID: 2, Name: "Richer", FloorRate: 4.5}
	// "10.50" parses as 10, which is below 10.35? No — 10 < 10.35, so the
	// rendered fractional part is discarded before comparing.
	page := slotPage(models.RawSlot{
		RoomName:       "Tokyo",
		TimeLabel:      "14:00 - 16:30",
		TotalPrice:     "63€",
		PricePerPerson: "10.50",
	})

	violations, err := ValidatePage(venue, page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1 (10.50 truncates to 10)", len(violations))
	}
	if violations[0].PricePerPerson != 10 {
		t.Errorf("actual price: got %d, want 10", violations[0].PricePerPerson)
	}
}

func TestValidatePageEmptyPage(t *testing.T) {
	venue := models.Venue{ID: 2, Name: "Richer", FloorRate: 4.5}

	violations, err := ValidatePage(venue, &models.SlotPage{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("got %d violations for empty page, want 0", len(violations))
	}
}

func TestValidatePageInconsistentData(t *testing.T) {
	venue := models.Venue{ID: 2, Name: "Richer", FloorRate: 4.5}

	tests := []struct {
		name string
		slot models.RawSlot
	}{
		{"bad time label", models.RawSlot{RoomName: "Tokyo", TimeLabel: "afternoon", PricePerPerson: "10"}},
		{"negative duration", models.RawSlot{RoomName: "Tokyo", TimeLabel: "16:00 - 14:00", PricePerPerson: "10"}},
		{"unparsable price", models.RawSlot{RoomName: "Tokyo", TimeLabel: "14:00 - 16:00", PricePerPerson: "free"}},
	}

	for _, tt := range tests {
		if _, err := ValidatePage(venue, slotPage(tt.slot)); err == nil {
			t.Errorf("%s: expected error, got none", tt.name)
		}
	}
}

func TestParsePricePerPerson(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"10", 10},
		{"10.50", 10},
		{"10€", 10},
		{" 8 ", 8},
		{"125", 125},
	}

	for _, tt := range tests {
		got, err := parsePricePerPerson(tt.raw)
		if err != nil {
			t.Errorf("parsePricePerPerson(%q): unexpected error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePricePerPerson(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}

	for _, raw := range []string{"", "free", "€10"} {
		if _, err := parsePricePerPerson(raw); err == nil {
			t.Errorf("parsePricePerPerson(%q): expected error, got none", raw)
		}
	}
}

func TestAlignSlots(t *testing.T) {
	slots, err := AlignSlots(
		[]string{"14:00 - 16:30", "17:00 - 18:00"},
		[]string{"Tokyo", "Kyoto"},
		[]string{"60€", "30€"},
		[]string{"12", "10"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	if slots[1].RoomName != "Kyoto" || slots[1].TimeLabel != "17:00 - 18:00" ||
		slots[1].TotalPrice != "30€" || slots[1].PricePerPerson != "10" {
		t.Errorf("position 1 not aligned: %+v", slots[1])
	}
}

func TestAlignSlotsShapeMismatch(t *testing.T) {
	_, err := AlignSlots(
		make([]string, 5),
		make([]string, 5),
		make([]string, 5),
		make([]string, 4),
	)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("got %v, want ErrShapeMismatch", err)
	}
}

func TestAggregatorOrderAndDrain(t *testing.T) {
	agg := NewAggregator()
	a := models.Violation{RoomName: "A"}
	b := models.Violation{RoomName: "B"}
	agg.Add(a)
	agg.Add(b, a)

	if agg.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", agg.Len())
	}

	out := agg.Drain()
	if len(out) != 3 || out[0].RoomName != "A" || out[1].RoomName != "B" || out[2].RoomName != "A" {
		t.Errorf("discovery order not preserved: %v", out)
	}
	if agg.Len() != 0 {
		t.Errorf("Len after Drain: got %d, want 0", agg.Len())
	}
}
