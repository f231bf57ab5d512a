package model

// Category classifies a match for the catalog filter.
type Category string

const (
	CategoryInternational Category = "international"
	CategoryLeague        Category = "league"
	CategoryDomestic      Category = "domestic"
)

// PriceRange is the cheapest and most expensive ticket advertised for a
// match, in whole currency units.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Match represents a fixture listed in the catalog.  Matches are
// immutable and come from the static catalog held by the repository
// layer.
//
// Fields:
//  ID             – catalog identifier (string, e.g. "1").
//  Title          – display title, usually "<home> vs <away>".
//  Category       – international, league or domestic.
//  Teams          – the two competing teams.
//  Date / Time    – local start date (YYYY-MM-DD) and time (HH:MM).
//  Venue          – stadium name.
//  City / Country – venue location.
//  Price          – advertised price range.
//  AvailableSeats – advertised seat count shown on the listing.
//  Format         – Test Match, ODI, T20 and so on.
type Match struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Category       Category   `json:"type"`
	Teams          [2]string  `json:"teams"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	Venue          string     `json:"stadium"`
	City           string     `json:"city"`
	Country        string     `json:"country"`
	Price          PriceRange `json:"price"`
	AvailableSeats int        `json:"availableSeats"`
	Format         string     `json:"format"`
}

// IsZero reports whether m carries no catalog identity.
func (m Match) IsZero() bool { return m.ID == "" }
