package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cricket-ticket-booking/internal/model"
)

// ProceedToPayment freezes the selection and match into a Checkout.  The
// returned snapshot owns its own copy of the seats so later toggles on
// the seat map do not leak into it.
func ProceedToPayment(selected []model.Seat, match model.Match) (model.Checkout, error) {
	if len(selected) == 0 {
		return model.Checkout{}, &ValidationError{Err: ErrEmptySelection}
	}
	if match.IsZero() {
		return model.Checkout{}, &ValidationError{Err: ErrMatchRequired}
	}
	seats := make([]model.Seat, len(selected))
	copy(seats, selected)
	return model.Checkout{
		ID:            uuid.NewString(),
		SelectedSeats: seats,
		Match:         match,
		TotalPrice:    TotalPrice(seats),
		CreatedAt:     time.Now().UTC(),
	}, nil
}
