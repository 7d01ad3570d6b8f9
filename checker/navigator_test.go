package checker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pricewatch/models"
	"pricewatch/utils"
)

// fakeInspector simulates the backoffice calendar: a fixed list of room
// pages, a pagination control visible until the view has advanced past the
// last page, and optional fault injection.
type fakeInspector struct {
	pages     []*models.SlotPage
	paginated bool

	pos          int
	venueID      int
	date         models.CalendarDate
	extractOrder []int
	advances     int
	waits        int

	stuckAdvance bool
	waitErr      error
	extractErr   error
}

func (f *fakeInspector) SelectVenue(ctx context.Context, venueID int) error {
	f.venueID = venueID
	return nil
}

func (f *fakeInspector) SelectDate(ctx context.Context, date models.CalendarDate) error {
	f.date = date
	return nil
}

func (f *fakeInspector) WaitForStableView(ctx context.Context) error {
	f.waits++
	return f.waitErr
}

func (f *fakeInspector) IsControlVisible(ctx context.Context, control Control) (bool, error) {
	if control != NextRoomPage {
		return false, nil
	}
	return f.paginated && f.pos < len(f.pages), nil
}

func (f *fakeInspector) AdvanceRoomPage(ctx context.Context) error {
	f.advances++
	if !f.stuckAdvance {
		f.pos++
	}
	return nil
}

func (f *fakeInspector) ExtractCurrentPage(ctx context.Context) (*models.SlotPage, error) {
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	if f.pos >= len(f.pages) {
		return nil, fmt.Errorf("no page at position %d", f.pos)
	}
	f.extractOrder = append(f.extractOrder, f.pos)
	return f.pages[f.pos], nil
}

func page(date models.CalendarDate, room string, perPerson ...string) *models.SlotPage {
	p := &models.SlotPage{Date: date}
	for _, price := range perPerson {
		p.Slots = append(p.Slots, models.RawSlot{
			RoomName:       room,
			TimeLabel:      "14:00 - 16:00",
			TotalPrice:     "60€",
			PricePerPerson: price,
		})
	}
	return p
}

var (
	navDate  = models.CalendarDate{Year: 2026, Month: 10, Day: 2}
	navVenue = models.Venue{ID: 3, Name: "Sentier", FloorRate: 4.5} // 2h floor: 9
)

func TestNavigatorSinglePage(t *testing.T) {
	f := &fakeInspector{
		pages:     []*models.SlotPage{page(navDate, "Tokyo", "8", "12")},
		paginated: false,
	}
	nav := NewNavigator(f, navVenue, utils.NewLogger())

	violations, err := nav.Run(context.Background(), navDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.extractOrder) != 1 || f.extractOrder[0] != 0 {
		t.Errorf("extract order: got %v, want [0]", f.extractOrder)
	}
	if f.advances != 0 {
		t.Errorf("advances: got %d, want 0", f.advances)
	}
	if f.venueID != navVenue.ID || f.date != navDate {
		t.Errorf("selection: got venue %d date %s", f.venueID, f.date)
	}
	// venue selection + date selection both stabilize before any extraction
	if f.waits != 2 {
		t.Errorf("stabilization waits: got %d, want 2", f.waits)
	}
	if len(violations) != 1 || violations[0].PricePerPerson != 8 {
		t.Errorf("violations: got %v, want one 8€ record", violations)
	}
}

func TestNavigatorVisitsEveryPageOnceInOrder(t *testing.T) {
	f := &fakeInspector{
		pages: []*models.SlotPage{
			page(navDate, "Tokyo", "7"), // one violation
			page(navDate, "Kyoto", "12"),
			page(navDate, "Osaka", "15"),
		},
		paginated: true,
	}
	nav := NewNavigator(f, navVenue, utils.NewLogger())

	violations, err := nav.Run(context.Background(), navDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{0, 1, 2}
	if len(f.extractOrder) != len(want) {
		t.Fatalf("extract order: got %v, want %v", f.extractOrder, want)
	}
	for i, p := range want {
		if f.extractOrder[i] != p {
			t.Fatalf("extract order: got %v, want %v", f.extractOrder, want)
		}
	}
	if len(violations) != 1 || violations[0].RoomName != "Tokyo" {
		t.Errorf("violations: got %v, want one record attributed to Tokyo", violations)
	}
}

func TestNavigatorIdempotent(t *testing.T) {
	build := func() *fakeInspector {
		return &fakeInspector{
			pages: []*models.SlotPage{
				page(navDate, "Tokyo", "7", "8"),
				page(navDate, "Kyoto", "6"),
			},
			paginated: true,
		}
	}

	first, err := NewNavigator(build(), navVenue, utils.NewLogger()).Run(context.Background(), navDate)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := NewNavigator(build(), navVenue, utils.NewLogger()).Run(context.Background(), navDate)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("got %d and %d violations, want 3 and 3", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("run mismatch at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestNavigatorEmptyPages(t *testing.T) {
	f := &fakeInspector{
		pages:     []*models.SlotPage{{}, {}},
		paginated: true,
	}
	nav := NewNavigator(f, navVenue, utils.NewLogger())

	violations, err := nav.Run(context.Background(), navDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("got %d violations from empty pages, want 0", len(violations))
	}
	if len(f.extractOrder) != 2 {
		t.Errorf("extract order: got %v, want both empty pages visited", f.extractOrder)
	}
}

func TestNavigatorStabilizationTimeout(t *testing.T) {
	f := &fakeInspector{
		pages:   []*models.SlotPage{page(navDate, "Tokyo", "7")},
		waitErr: errors.New("calendar view did not stabilize within 30s"),
	}
	nav := NewNavigator(f, navVenue, utils.NewLogger())

	_, err := nav.Run(context.Background(), navDate)
	if err == nil {
		t.Fatal("expected error, got none")
	}
	var navError *NavigationError
	if !errors.As(err, &navError) {
		t.Errorf("got %T, want *NavigationError", err)
	}
	if len(f.extractOrder) != 0 {
		t.Errorf("extracted %v pages against an unstable view", f.extractOrder)
	}
}

func TestNavigatorStuckAdvance(t *testing.T) {
	f := &fakeInspector{
		pages: []*models.SlotPage{
			page(navDate, "Tokyo", "12"),
			page(navDate, "Kyoto", "12"),
		},
		paginated:    true,
		stuckAdvance: true,
	}
	nav := NewNavigator(f, navVenue, utils.NewLogger())

	_, err := nav.Run(context.Background(), navDate)
	if err == nil {
		t.Fatal("expected error for a page that never advances, got none")
	}
	var navError *NavigationError
	if !errors.As(err, &navError) {
		t.Errorf("got %T, want *NavigationError", err)
	}
}

func TestNavigatorShapeFaultAborts(t *testing.T) {
	f := &fakeInspector{
		pages:      []*models.SlotPage{page(navDate, "Tokyo", "7")},
		paginated:  true,
		extractErr: fmt.Errorf("extract page: %w", ErrShapeMismatch),
	}
	nav := NewNavigator(f, navVenue, utils.NewLogger())

	_, err := nav.Run(context.Background(), navDate)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("got %v, want ErrShapeMismatch", err)
	}
	if f.advances != 0 {
		t.Errorf("advanced %d times after a shape fault", f.advances)
	}
}

func TestNavigatorInconsistentSlotAborts(t *testing.T) {
	bad := page(navDate, "Tokyo", "10")
	bad.Slots[0].TimeLabel = "16:00 - 14:00"

	f := &fakeInspector{pages: []*models.SlotPage{bad}}
	nav := NewNavigator(f, navVenue, utils.NewLogger())

	if _, err := nav.Run(context.Background(), navDate); err == nil {
		t.Fatal("expected error for non-positive duration, got none")
	}
}
