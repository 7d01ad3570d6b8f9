package checker

import (
	"context"
	"errors"
	"fmt"

	"pricewatch/models"
	"pricewatch/utils"
)

// Navigator drives the paginated, multi-room calendar view for one venue,
// one (venue, date) run at a time. It guarantees every room page is
// extracted exactly once, in forward order, and that extraction only happens
// against a stabilized render.
type Navigator struct {
	inspector PageInspector
	venue     models.Venue
	logger    *utils.Logger
}

// NewNavigator creates a Navigator for the given venue over the given
// inspection capability.
func NewNavigator(inspector PageInspector, venue models.Venue, logger *utils.Logger) *Navigator {
	return &Navigator{inspector: inspector, venue: venue, logger: logger}
}

// Run checks every room page of the venue's calendar for the given date and
// returns all violations found, in discovery order. It returns an error on
// any navigation or data-shape fault; violations alone never fail a run.
//
// The view either has no room pagination at all (a single page of rooms) or
// a next-room-page control: in the latter case the navigator extracts the
// current page, advances, waits for the render to settle, and repeats while
// the control remains visible.
func (n *Navigator) Run(ctx context.Context, date models.CalendarDate) ([]models.Violation, error) {
	agg := NewAggregator()
	visited := utils.NewKeySet()

	if err := n.inspector.SelectVenue(ctx, n.venue.ID); err != nil {
		return nil, navErr("select venue", err)
	}
	if err := n.inspector.WaitForStableView(ctx); err != nil {
		return nil, navErr("stabilize after venue selection", err)
	}
	if err := n.inspector.SelectDate(ctx, date); err != nil {
		return nil, navErr("select date", err)
	}
	if err := n.inspector.WaitForStableView(ctx); err != nil {
		return nil, navErr("stabilize after date selection", err)
	}

	paginated, err := n.inspector.IsControlVisible(ctx, NextRoomPage)
	if err != nil {
		return nil, navErr("check pagination control", err)
	}

	pages := 0
	if !paginated {
		if err := n.checkPage(ctx, date, visited, agg); err != nil {
			return nil, err
		}
		pages++
	} else {
		for paginated {
			if err := n.checkPage(ctx, date, visited, agg); err != nil {
				return nil, err
			}
			pages++

			if err := n.inspector.AdvanceRoomPage(ctx); err != nil {
				return nil, navErr("advance room page", err)
			}
			if err := n.inspector.WaitForStableView(ctx); err != nil {
				return nil, navErr("stabilize after page advance", err)
			}
			paginated, err = n.inspector.IsControlVisible(ctx, NextRoomPage)
			if err != nil {
				return nil, navErr("check pagination control", err)
			}
		}
	}

	n.logger.Debug("[checker] %s %s: %d room pages, %d violations",
		n.venue.Name, date, pages, agg.Len())
	return agg.Drain(), nil
}

// checkPage extracts and validates the currently rendered room page.
func (n *Navigator) checkPage(ctx context.Context, date models.CalendarDate, visited *utils.KeySet, agg *Aggregator) error {
	page, err := n.inspector.ExtractCurrentPage(ctx)
	if err != nil {
		if errors.Is(err, ErrShapeMismatch) {
			return err
		}
		return navErr("extract room page", err)
	}

	// A repeated room group means the advance did not move the view; the
	// run would double-count this page.
	if fp := page.RoomFingerprint(); fp != "" && !visited.Add(fp) {
		return navErr("advance room page", fmt.Errorf("room group %q rendered twice", fp))
	}

	if len(page.Slots) > 0 && page.Date != date {
		n.logger.Warn("[checker] %s: page reports date %s, run targets %s",
			n.venue.Name, page.Date, date)
	}

	violations, err := ValidatePage(n.venue, page)
	if err != nil {
		return err
	}
	agg.Add(violations...)
	return nil
}
