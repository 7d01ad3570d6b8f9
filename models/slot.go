package models

// RawSlot is one offered booking opportunity exactly as rendered: produced
// fresh on every page extraction, never mutated, discarded after validation.
type RawSlot struct {
	RoomName       string
	TimeLabel      string // e.g. "14:00 - 16:30"
	TotalPrice     string
	PricePerPerson string
}

// SlotPage is the result of extracting one room page of the calendar: the
// page's effective date and its available slots in render order. A page with
// no available slots is a normal outcome (fully booked or closed), not an
// error.
type SlotPage struct {
	Date  CalendarDate
	Slots []RawSlot
}

// RoomFingerprint identifies the room group shown on the page, used to
// detect a pagination advance that did not actually move. Empty when the
// page has no available slots.
func (p *SlotPage) RoomFingerprint() string {
	seen := make(map[string]struct{})
	fp := ""
	for _, s := range p.Slots {
		if _, dup := seen[s.RoomName]; dup {
			continue
		}
		seen[s.RoomName] = struct{}{}
		if fp != "" {
			fp += "|"
		}
		fp += s.RoomName
	}
	return fp
}
