package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cricket-ticket-booking/internal/model"
)

func sampleCheckout() model.Checkout {
	return model.Checkout{
		ID:            "co-1",
		SelectedSeats: []model.Seat{{ID: "E1-1", Row: "E1", Number: 1, Section: "E", Price: 100, Available: true, Selected: true, Tier: model.TierEconomy}},
		Match:         model.Match{ID: "1", Title: "India vs Australia"},
		TotalPrice:    100,
		CreatedAt:     time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestCheckoutTokenCarriesSnapshot(t *testing.T) {
	s := NewSigner("secret", time.Minute)
	raw, exp, err := s.NewCheckoutToken(sampleCheckout())
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := s.Parse(raw, KindCheckout)
	require.NoError(t, err)
	assert.Equal(t, sampleCheckout(), *claims.Checkout)
	assert.Equal(t, "co-1", claims.Subject)
}

func TestParseRejects(t *testing.T) {
	s := NewSigner("secret", time.Minute)
	raw, _, err := s.NewCheckoutToken(sampleCheckout())
	require.NoError(t, err)

	_, err = s.Parse("", KindCheckout)
	assert.ErrorIs(t, err, ErrInvalidHandoff)

	_, err = s.Parse("not-a-jwt", KindCheckout)
	assert.ErrorIs(t, err, ErrInvalidHandoff)

	_, err = s.Parse(raw, KindTicket)
	assert.ErrorIs(t, err, ErrInvalidHandoff, "wrong stage")

	other := NewSigner("other", time.Minute)
	_, err = other.Parse(raw, KindCheckout)
	assert.ErrorIs(t, err, ErrInvalidHandoff, "wrong secret")
}

func TestParseRejectsExpired(t *testing.T) {
	s := NewSigner("secret", time.Minute)
	s.now = func() time.Time { return time.Now().Add(-time.Hour) }
	raw, _, err := s.NewCheckoutToken(sampleCheckout())
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Parse(raw, KindCheckout)
	assert.ErrorIs(t, err, ErrInvalidHandoff)
}

func TestTicketToken(t *testing.T) {
	s := NewSigner("secret", time.Minute)
	b := model.Booking{
		BookingRef:    "CTLR7KXRK0",
		SelectedSeats: sampleCheckout().SelectedSeats,
		Match:         sampleCheckout().Match,
		TotalPrice:    100,
		PaymentMethod: model.ChannelUPI,
		BookingDate:   time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC),
	}
	raw, _, err := s.NewTicketToken(b)
	require.NoError(t, err)

	claims, err := s.Parse(raw, KindTicket)
	require.NoError(t, err)
	assert.Equal(t, b, *claims.Booking)
}
