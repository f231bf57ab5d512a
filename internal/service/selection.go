package service

import "github.com/iliyamo/cricket-ticket-booking/internal/model"

// SeatMap is the seat grid of one booking session together with the
// user's selection.  The grid and the selection are kept consistent: a
// seat's Selected flag is true exactly when the seat is in the selection.
// SeatMap is not safe for concurrent use; Session serializes access.
type SeatMap struct {
	seats    []model.Seat
	index    map[string]int
	selected []string // seat IDs in toggle order
}

// NewSeatMap generates a fresh grid from src.
func NewSeatMap(src RandomSource) *SeatMap {
	return newSeatMapFrom(GenerateSeats(src))
}

func newSeatMapFrom(seats []model.Seat) *SeatMap {
	m := &SeatMap{seats: seats, index: make(map[string]int, len(seats))}
	for i, s := range seats {
		m.index[s.ID] = i
	}
	return m
}

// Toggle flips the selection state of an available seat and reports
// whether anything changed.  Unknown and unavailable seats are ignored.
func (m *SeatMap) Toggle(seatID string) bool {
	i, ok := m.index[seatID]
	if !ok || !m.seats[i].Available {
		return false
	}
	seat := &m.seats[i]
	seat.Selected = !seat.Selected
	if seat.Selected {
		m.selected = append(m.selected, seatID)
		return true
	}
	for j, id := range m.selected {
		if id == seatID {
			m.selected = append(m.selected[:j], m.selected[j+1:]...)
			break
		}
	}
	return true
}

// Seat returns a copy of the seat with the given ID.
func (m *SeatMap) Seat(seatID string) (model.Seat, bool) {
	i, ok := m.index[seatID]
	if !ok {
		return model.Seat{}, false
	}
	return m.seats[i], true
}

// Seats returns a copy of the whole grid.
func (m *SeatMap) Seats() []model.Seat {
	out := make([]model.Seat, len(m.seats))
	copy(out, m.seats)
	return out
}

// Selected returns copies of the selected seats in the order they were
// selected.
func (m *SeatMap) Selected() []model.Seat {
	out := make([]model.Seat, 0, len(m.selected))
	for _, id := range m.selected {
		out = append(out, m.seats[m.index[id]])
	}
	return out
}

// TotalPrice sums the prices of the selected seats.
func (m *SeatMap) TotalPrice() int {
	return TotalPrice(m.Selected())
}

// TotalPrice sums the price of every seat in seats.
func TotalPrice(seats []model.Seat) int {
	total := 0
	for _, s := range seats {
		total += s.Price
	}
	return total
}
