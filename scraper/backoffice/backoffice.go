// Package backoffice implements checker.PageInspector against the booking
// backoffice's rendered calendar using chromedp. Every selector and DOM
// detail of the widget lives here and nowhere else.
package backoffice

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"pricewatch/checker"
	"pricewatch/config"
	"pricewatch/models"
	"pricewatch/utils"
)

const (
	stableViewSelector = `.booking .calendar .screen`
	loginUserSelector  = `input[name=_username]`
	loginPassSelector  = `input[name=_password]`
	venueSelector      = `#calendar_place`
	dateSelector       = `#date`
	nextRoomSelector   = `.btn-next-room`
	prevRoomSelector   = `.btn-prev-room`
)

// NewAllocator builds the shared Chrome exec allocator. Each (venue, date)
// run gets its own tab context from it via NewSession.
func NewAllocator(cfg *config.Config) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)
	if bin := findChromeBinary(cfg.ChromeBin); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}
	return chromedp.NewExecAllocator(context.Background(), opts...)
}

// Session is one isolated browser session against the backoffice calendar.
// It implements checker.PageInspector. Sessions are not safe for concurrent
// use; concurrent runs each open their own Session.
type Session struct {
	cfg    *config.Config
	logger *utils.Logger

	ctx    context.Context
	cancel context.CancelFunc

	stableTimeout time.Duration
	actionTimeout time.Duration
}

// NewSession opens a fresh browser context on the shared allocator.
func NewSession(allocCtx context.Context, cfg *config.Config, logger *utils.Logger) *Session {
	ctx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))

	return &Session{
		cfg:           cfg,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		stableTimeout: time.Duration(cfg.StableViewTimeoutMs) * time.Millisecond,
		actionTimeout: 15 * time.Second,
	}
}

// Close tears down the browser context.
func (s *Session) Close() {
	s.cancel()
}

// run executes chromedp actions on the session's browser context, bounded by
// the given timeout and abandonable through the caller's context.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

// Login opens the backoffice login page and authenticates the operator.
func (s *Session) Login(ctx context.Context) error {
	err := s.run(ctx, 60*time.Second,
		chromedp.Navigate(s.cfg.BaseURL),
		chromedp.WaitVisible(loginUserSelector, chromedp.ByQuery),
		chromedp.SendKeys(loginUserSelector, s.cfg.AuthUser, chromedp.ByQuery),
		chromedp.SendKeys(loginPassSelector, s.cfg.AuthPass, chromedp.ByQuery),
		chromedp.SendKeys(loginPassSelector, kb.Enter, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("backoffice login: %w", err)
	}
	return s.WaitForStableView(ctx)
}

// SelectVenue picks a venue in the calendar's venue dropdown and fires the
// change event the widget re-renders on.
func (s *Session) SelectVenue(ctx context.Context, venueID int) error {
	script := fmt.Sprintf(`
		(function() {
			var el = document.querySelector(%q);
			if (!el) return false;
			el.value = %q;
			el.dispatchEvent(new Event('change', { bubbles: true }));
			return true;
		})()
	`, venueSelector, strconv.Itoa(venueID))

	var ok bool
	if err := s.run(ctx, s.actionTimeout, chromedp.Evaluate(script, &ok)); err != nil {
		return fmt.Errorf("select venue %d: %w", venueID, err)
	}
	if !ok {
		return fmt.Errorf("select venue %d: %s not found", venueID, venueSelector)
	}
	return nil
}

// SelectDate fills the calendar's date input. The input is rendered
// readonly for the datepicker widget, so the attribute is dropped first.
func (s *Session) SelectDate(ctx context.Context, date models.CalendarDate) error {
	script := fmt.Sprintf(`
		(function() {
			var el = document.querySelector(%q);
			if (!el) return false;
			el.removeAttribute('readonly');
			el.value = %q;
			el.dispatchEvent(new Event('change', { bubbles: true }));
			return true;
		})()
	`, dateSelector, date.FieldValue())

	var ok bool
	if err := s.run(ctx, s.actionTimeout, chromedp.Evaluate(script, &ok)); err != nil {
		return fmt.Errorf("select date %s: %w", date, err)
	}
	if !ok {
		return fmt.Errorf("select date %s: %s not found", date, dateSelector)
	}
	return nil
}

// WaitForStableView blocks until the calendar screen has finished
// re-rendering after the last action, bounded by the configured timeout.
func (s *Session) WaitForStableView(ctx context.Context) error {
	err := s.run(ctx, s.stableTimeout,
		chromedp.WaitVisible(stableViewSelector, chromedp.ByQuery),
		chromedp.Sleep(250*time.Millisecond),
	)
	if err != nil {
		return fmt.Errorf("calendar view did not stabilize within %v: %w", s.stableTimeout, err)
	}
	return nil
}

// IsControlVisible reports whether the named pagination control is rendered
// and visible on the current page.
func (s *Session) IsControlVisible(ctx context.Context, control checker.Control) (bool, error) {
	var sel string
	switch control {
	case checker.NextRoomPage:
		sel = nextRoomSelector
	case checker.PrevRoomPage:
		sel = prevRoomSelector
	default:
		return false, fmt.Errorf("unknown control %q", control)
	}

	script := fmt.Sprintf(`
		(function() {
			var el = document.querySelector(%q);
			return !!el && el.offsetParent !== null;
		})()
	`, sel)

	var visible bool
	if err := s.run(ctx, s.actionTimeout, chromedp.Evaluate(script, &visible)); err != nil {
		return false, fmt.Errorf("control %s visibility: %w", control, err)
	}
	return visible, nil
}

// AdvanceRoomPage dispatches the next-room-page action.
func (s *Session) AdvanceRoomPage(ctx context.Context) error {
	if err := s.run(ctx, s.actionTimeout, chromedp.Click(nextRoomSelector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("advance room page: %w", err)
	}
	return nil
}

// pageData mirrors what extractPageScript returns: the page's booking date
// and four positionally-aligned slot sequences.
type pageData struct {
	BookingDate string   `json:"bookingDate"`
	Times       []string `json:"times"`
	Rooms       []string `json:"rooms"`
	Totals      []string `json:"totals"`
	PerPerson   []string `json:"perPerson"`
}

// extractPageScript reads every available slot on the rendered page. Slot
// rows render the time label, total price and per-person price as text child
// nodes 0, 2 and 4; the room name comes from each screen's capacity header,
// repeated once per available slot in that screen so all four sequences stay
// positionally aligned.
const extractPageScript = `
	(function() {
		var out = { bookingDate: '', times: [], rooms: [], totals: [], perPerson: [] };

		var text = function(el, idx) {
			var n = el.childNodes[idx];
			return n && n.nodeValue ? n.nodeValue.trim() : '';
		};

		var slots = document.querySelectorAll('div.slot.available');
		if (slots.length === 0) return out;

		var first = document.querySelector('div.slot input');
		if (first && first.dataset.bookingDate) {
			out.bookingDate = first.dataset.bookingDate;
		}

		for (var i = 0; i < slots.length; i++) {
			out.times.push(text(slots[i], 0));
			out.totals.push(text(slots[i], 2));
			out.perPerson.push(text(slots[i], 4));
		}

		var screens = document.querySelectorAll('.screen').length;
		var capacities = document.querySelectorAll('div.capacity');
		var places = document.querySelectorAll('div.places');
		for (var j = 0; j < screens; j++) {
			var name = capacities[j] ? text(capacities[j], 0).replace('Salle', '').trim() : '';
			var count = places[j] ? places[j].querySelectorAll('div.available').length : 0;
			for (var k = 0; k < count; k++) {
				out.rooms.push(name);
			}
		}

		return out;
	})()
`

// ExtractCurrentPage reads the currently rendered room page. A page with no
// available slots yields an empty SlotPage, which is a normal outcome.
func (s *Session) ExtractCurrentPage(ctx context.Context) (*models.SlotPage, error) {
	var data pageData
	if err := s.run(ctx, s.actionTimeout, chromedp.Evaluate(extractPageScript, &data)); err != nil {
		return nil, fmt.Errorf("extract page: %w", err)
	}

	if len(data.Times) == 0 && len(data.Rooms) == 0 &&
		len(data.Totals) == 0 && len(data.PerPerson) == 0 {
		return &models.SlotPage{}, nil
	}

	if data.BookingDate == "" {
		return nil, fmt.Errorf("extract page: %d slots but no booking date attribute", len(data.Times))
	}
	date, err := models.ParseBookingDate(data.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("extract page: %w", err)
	}

	slots, err := checker.AlignSlots(data.Times, data.Rooms, data.Totals, data.PerPerson)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("[backoffice] page %s: %d available slots", date, len(slots))
	return &models.SlotPage{Date: date, Slots: slots}, nil
}

// findChromeBinary locates the Chrome/Chromium binary, preferring an
// explicitly configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
