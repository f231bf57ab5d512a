package model

// Tier fixes the price of a seat.
type Tier string

const (
	TierPremium  Tier = "premium"
	TierStandard Tier = "standard"
	TierEconomy  Tier = "economy"
)

// Seat describes one position on the stadium map generated for a booking
// session.  Seats are uniquely identified by section, row and seat number.
// Tier and Price are fixed when the map is generated; Available is rolled
// once and never re-rolled.  Selected mirrors membership in the session's
// selection.
//
// Fields:
//  ID        – "<section><row>-<number>", e.g. "C12-7".
//  Row       – row label "<section><row>", e.g. "C12".
//  Number    – seat number within the row (1-based).
//  Section   – section letter.
//  Price     – tier price in whole currency units.
//  Available – false for seats that were sold before the session began.
//  Selected  – true while the seat is part of the selection.
//  Tier      – premium, standard or economy.
type Seat struct {
	ID        string `json:"id"`
	Row       string `json:"row"`
	Number    int    `json:"number"`
	Section   string `json:"section"`
	Price     int    `json:"price"`
	Available bool   `json:"isAvailable"`
	Selected  bool   `json:"isSelected"`
	Tier      Tier   `json:"type"`
}
