// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedQueue is the durable queue booking events are routed to.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published when a payment completes and a
// booking reference has been minted.  It carries enough of the ticket for
// downstream consumers to log or notify without calling back into the
// service.
type BookingConfirmedEvent struct {
	BookingRef    string   `json:"booking_ref"`
	MatchID       string   `json:"match_id"`
	MatchTitle    string   `json:"match_title"`
	Venue         string   `json:"venue"`
	City          string   `json:"city"`
	MatchDate     string   `json:"match_date"`
	MatchTime     string   `json:"match_time"`
	SeatLabels    []string `json:"seats"`
	TotalPrice    int      `json:"total_price"`
	PaymentMethod string   `json:"payment_method"`
	ConfirmedAt   string   `json:"confirmed_at"`
}
