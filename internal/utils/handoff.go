// Package utils provides the signed handoff tokens that carry a checkout
// snapshot to the payment stage and a booking to the ticket stage.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/cricket-ticket-booking/internal/model"
)

// HandoffKind names the stage a token was issued for.
type HandoffKind string

const (
	KindCheckout HandoffKind = "checkout"
	KindTicket   HandoffKind = "ticket"
)

// ErrInvalidHandoff is returned for any token that is missing, malformed,
// expired, badly signed or issued for another stage.
var ErrInvalidHandoff = errors.New("invalid handoff token")

// HandoffClaims is the JWT body.  Exactly one of Checkout and Booking is
// set, matching Kind.
type HandoffClaims struct {
	Kind     HandoffKind     `json:"kind"`
	Checkout *model.Checkout `json:"checkout,omitempty"`
	Booking  *model.Booking  `json:"booking,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues and verifies handoff tokens with an HS256 secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a Signer whose tokens expire after ttl.
func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Signer) sign(c HandoffClaims, subject string) (string, time.Time, error) {
	now := s.now().UTC()
	exp := now.Add(s.ttl)
	c.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// NewCheckoutToken wraps a checkout snapshot for the payment stage.
func (s *Signer) NewCheckoutToken(co model.Checkout) (string, time.Time, error) {
	return s.sign(HandoffClaims{Kind: KindCheckout, Checkout: &co}, co.ID)
}

// NewTicketToken wraps a booking for the ticket stage.
func (s *Signer) NewTicketToken(b model.Booking) (string, time.Time, error) {
	return s.sign(HandoffClaims{Kind: KindTicket, Booking: &b}, b.BookingRef)
}

// Parse verifies raw and checks it was issued for kind.
func (s *Signer) Parse(raw string, kind HandoffKind) (*HandoffClaims, error) {
	if raw == "" {
		return nil, ErrInvalidHandoff
	}
	claims := &HandoffClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidHandoff
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid || claims.Kind != kind {
		return nil, ErrInvalidHandoff
	}
	switch kind {
	case KindCheckout:
		if claims.Checkout == nil {
			return nil, ErrInvalidHandoff
		}
	case KindTicket:
		if claims.Booking == nil {
			return nil, ErrInvalidHandoff
		}
	}
	return claims, nil
}
