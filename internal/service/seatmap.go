package service

import (
	"strconv"

	"github.com/iliyamo/cricket-ticket-booking/internal/model"
)

// Stadium layout.  Every booking session gets the same grid; only seat
// availability differs between sessions.
var Sections = []string{"A", "B", "C", "D", "E"}

const (
	RowsPerSection = 15
	SeatsPerRow    = 20

	// unavailableBelow is the random draw under which a seat is marked
	// sold, giving roughly 70% availability.
	unavailableBelow = 0.3
)

var tierPrices = map[model.Tier]int{
	model.TierPremium:  500,
	model.TierStandard: 250,
	model.TierEconomy:  100,
}

// RandomSource supplies the availability draws.  *rand.Rand from
// math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

// TierForSection maps a zero-based section index to its tier: the first
// two sections are premium, the next two standard, the rest economy.
func TierForSection(index int) model.Tier {
	switch {
	case index < 2:
		return model.TierPremium
	case index < 4:
		return model.TierStandard
	default:
		return model.TierEconomy
	}
}

// PriceForTier returns the fixed price of a tier, or 0 for an unknown tier.
func PriceForTier(t model.Tier) int { return tierPrices[t] }

// SeatID builds the identifier of a seat from its coordinates.
func SeatID(section string, row, number int) string {
	return RowLabel(section, row) + "-" + strconv.Itoa(number)
}

// RowLabel builds the label of a row, e.g. "B7".
func RowLabel(section string, row int) string {
	return section + strconv.Itoa(row)
}

// GenerateSeats lays out every section, row and seat in order and rolls
// availability for each seat from src.  Seats are returned unselected.
func GenerateSeats(src RandomSource) []model.Seat {
	seats := make([]model.Seat, 0, len(Sections)*RowsPerSection*SeatsPerRow)
	for si, section := range Sections {
		tier := TierForSection(si)
		price := PriceForTier(tier)
		for row := 1; row <= RowsPerSection; row++ {
			for n := 1; n <= SeatsPerRow; n++ {
				seats = append(seats, model.Seat{
					ID:        SeatID(section, row, n),
					Row:       RowLabel(section, row),
					Number:    n,
					Section:   section,
					Price:     price,
					Available: src.Float64() > unavailableBelow,
					Tier:      tier,
				})
			}
		}
	}
	return seats
}

// SeatsInSection returns the seats of one section, preserving order.
func SeatsInSection(seats []model.Seat, section string) []model.Seat {
	out := make([]model.Seat, 0, RowsPerSection*SeatsPerRow)
	for _, s := range seats {
		if s.Section == section {
			out = append(out, s)
		}
	}
	return out
}

// SectionSummary describes one section for the stadium overview.
type SectionSummary struct {
	Section   string     `json:"section"`
	Tier      model.Tier `json:"type"`
	Price     int        `json:"price"`
	Total     int        `json:"total"`
	Available int        `json:"available"`
}

// Summarize counts total and available seats per section.
func Summarize(seats []model.Seat) []SectionSummary {
	out := make([]SectionSummary, len(Sections))
	idx := make(map[string]int, len(Sections))
	for i, s := range Sections {
		t := TierForSection(i)
		out[i] = SectionSummary{Section: s, Tier: t, Price: PriceForTier(t)}
		idx[s] = i
	}
	for _, s := range seats {
		i, ok := idx[s.Section]
		if !ok {
			continue
		}
		out[i].Total++
		if s.Available {
			out[i].Available++
		}
	}
	return out
}
