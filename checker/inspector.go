// Package checker implements the calendar traversal and price-validation
// engine: it walks the paginated room calendar for one (venue, date) pair
// through an abstract PageInspector, derives each slot's session duration,
// and flags slots priced below the venue's floor rate.
package checker

import (
	"context"

	"pricewatch/models"
)

// Control names a calendar pagination control whose visibility the
// navigator can query.
type Control string

const (
	NextRoomPage Control = "next-room-page"
	PrevRoomPage Control = "prev-room-page"
)

// PageInspector is the page-inspection capability the navigator drives. It
// is implemented by the browser-automation layer; the checker never touches
// markup itself. SelectVenue/SelectDate/AdvanceRoomPage dispatch actions and
// return once dispatched — callers must WaitForStableView before trusting
// the rendered calendar again.
type PageInspector interface {
	SelectVenue(ctx context.Context, venueID int) error
	SelectDate(ctx context.Context, date models.CalendarDate) error
	WaitForStableView(ctx context.Context) error
	IsControlVisible(ctx context.Context, control Control) (bool, error)
	AdvanceRoomPage(ctx context.Context) error
	ExtractCurrentPage(ctx context.Context) (*models.SlotPage, error)
}
