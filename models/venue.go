package models

// Venue is one physical location offering bookable rooms. FloorRate is the
// minimum acceptable price per person per hour, in euros.
type Venue struct {
	ID        int
	Name      string
	FloorRate float64
}

// Venues is the static venue registry. IDs match the backoffice
// #calendar_place option values.
var Venues = []Venue{
	{ID: 2, Name: "Richer", FloorRate: 4.5},
	{ID: 3, Name: "Sentier", FloorRate: 4.5},
	{ID: 4, Name: "Parmentier", FloorRate: 4.5},
	{ID: 5, Name: "Chartrons", FloorRate: 3},
	{ID: 6, Name: "Recoletos", FloorRate: 4},
	{ID: 7, Name: "Madeleine", FloorRate: 4.5},
	{ID: 8, Name: "Etoile", FloorRate: 4.5},
}

// VenueByID returns the venue with the given ID, or false if unknown.
func VenueByID(id int) (Venue, bool) {
	for _, v := range Venues {
		if v.ID == id {
			return v, true
		}
	}
	return Venue{}, false
}
