package model

import "time"

// Checkout is the snapshot carried from seat selection to the payment
// stage.  It is built once by the checkout flow and never modified; the
// payment stage reads it as-is and does not re-derive the total.
type Checkout struct {
	ID            string    `json:"checkoutId"`
	SelectedSeats []Seat    `json:"selectedSeats"`
	Match         Match     `json:"matchDetails"`
	TotalPrice    int       `json:"totalPrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Booking is the terminal record of a successful payment.  It is rendered
// as the ticket and is not stored anywhere beyond the ticket handoff.
//
// Fields:
//  BookingRef    – "CT" followed by the base-36 payment timestamp.
//  SelectedSeats – seats paid for.
//  Match         – the match the seats belong to.
//  TotalPrice    – amount charged, equal to the checkout total.
//  PaymentMethod – card or upi.
//  BookingDate   – when the booking was minted (UTC).
type Booking struct {
	BookingRef    string         `json:"bookingRef"`
	SelectedSeats []Seat         `json:"selectedSeats"`
	Match         Match          `json:"matchDetails"`
	TotalPrice    int            `json:"totalPrice"`
	PaymentMethod PaymentChannel `json:"paymentMethod"`
	BookingDate   time.Time      `json:"bookingDate"`
}
