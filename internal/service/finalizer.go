package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cricket-ticket-booking/internal/model"
	"github.com/iliyamo/cricket-ticket-booking/internal/monitoring"
	"github.com/iliyamo/cricket-ticket-booking/internal/notify"
	q "github.com/iliyamo/cricket-ticket-booking/internal/queue"
)

// DefaultPaymentDelay is the simulated gateway latency.
const DefaultPaymentDelay = 3 * time.Second

// BookingRefPrefix starts every booking reference.
const BookingRefPrefix = "CT"

// DefaultRetention is how long a paid checkout is remembered.  It should
// be at least the lifetime of a checkout token.
const DefaultRetention = 15 * time.Minute

// SubmitRequest is everything the payment stage hands to the finalizer.
type SubmitRequest struct {
	Checkout model.Checkout
	Channel  model.PaymentChannel
	Form     model.PaymentForm
}

// Finalizer turns a validated payment into a Booking.
type Finalizer struct {
	Delay     time.Duration
	Now       func() time.Time
	Notifier  notify.Notifier
	Publisher EventPublisher // optional
	Logger    logrus.FieldLogger
	Retain    time.Duration

	mu       sync.Mutex
	inflight map[string]struct{}
	paid     map[string]paidCheckout
}

type paidCheckout struct {
	booking model.Booking
	at      time.Time
}

// NewFinalizer returns a Finalizer with the given delay.  A nil notifier
// discards notifications.
func NewFinalizer(delay time.Duration, n notify.Notifier, pub EventPublisher, logger logrus.FieldLogger) *Finalizer {
	if n == nil {
		n = notify.Discard
	}
	return &Finalizer{
		Delay:     delay,
		Now:       time.Now,
		Notifier:  n,
		Publisher: pub,
		Logger:    logger,
		Retain:    DefaultRetention,
		inflight:  make(map[string]struct{}),
		paid:      make(map[string]paidCheckout),
	}
}

// BookingRef derives a reference from t: "CT" plus the Unix millisecond
// timestamp in upper-case base 36.
func BookingRef(t time.Time) string {
	return BookingRefPrefix + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}

// ConfirmationMessage is the text shown once a booking is confirmed.
func ConfirmationMessage(ref string) string {
	return "Your booking " + ref + " has been confirmed."
}

// Processing reports whether a payment for checkoutID is in flight.
func (f *Finalizer) Processing(checkoutID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.inflight[checkoutID]
	return ok
}

// begin claims checkoutID for payment.  A checkout paid within Retain
// returns its booking with replay set; one still in flight fails.
func (f *Finalizer) begin(checkoutID string, now time.Time) (prev model.Booking, replay bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.paid {
		if now.Sub(p.at) > f.Retain {
			delete(f.paid, id)
		}
	}
	if p, ok := f.paid[checkoutID]; ok {
		b := p.booking
		b.SelectedSeats = append([]model.Seat(nil), b.SelectedSeats...)
		return b, true, nil
	}
	if _, ok := f.inflight[checkoutID]; ok {
		return model.Booking{}, false, ErrPaymentInProgress
	}
	f.inflight[checkoutID] = struct{}{}
	return model.Booking{}, false, nil
}

// end releases checkoutID, recording the booking when payment succeeded.
func (f *Finalizer) end(checkoutID string, b *model.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inflight, checkoutID)
	if b != nil {
		f.paid[checkoutID] = paidCheckout{booking: *b, at: b.BookingDate}
	}
}

// Submit validates the request, waits out the simulated gateway delay
// and mints the booking.  Validation failures return a *ValidationError
// before any delay.  Once the delay has started it runs to completion
// even if ctx is cancelled.  Submitting an already paid checkout returns
// the original booking without notifying or publishing again.
func (f *Finalizer) Submit(ctx context.Context, req SubmitRequest) (model.Booking, error) {
	co := req.Checkout
	if len(co.SelectedSeats) == 0 {
		return model.Booking{}, &ValidationError{Err: ErrEmptySelection}
	}
	if co.Match.IsZero() {
		return model.Booking{}, &ValidationError{Err: ErrMatchRequired}
	}
	if fields := ValidateForm(req.Channel, req.Form); len(fields) > 0 {
		monitoring.ObservePaymentRejected(string(req.Channel))
		return model.Booking{}, &ValidationError{Err: ErrInvalidPayment, Fields: fields}
	}
	prev, replay, err := f.begin(co.ID, f.Now().UTC())
	if err != nil {
		return model.Booking{}, err
	}
	if replay {
		return prev, nil
	}
	var minted *model.Booking
	defer func() { f.end(co.ID, minted) }()

	if f.Delay > 0 {
		time.Sleep(f.Delay)
	}

	now := f.Now().UTC()
	seats := make([]model.Seat, len(co.SelectedSeats))
	copy(seats, co.SelectedSeats)
	booking := model.Booking{
		BookingRef:    BookingRef(now),
		SelectedSeats: seats,
		Match:         co.Match,
		TotalPrice:    co.TotalPrice,
		PaymentMethod: req.Channel,
		BookingDate:   now,
	}
	minted = &booking

	monitoring.ObserveBooking(string(req.Channel), booking.TotalPrice, len(seats))
	f.Notifier.Notify(notify.Notification{
		Kind:    notify.KindSuccess,
		Title:   "Payment Successful!",
		Message: ConfirmationMessage(booking.BookingRef),
	})
	f.publish(context.WithoutCancel(ctx), booking)
	return booking, nil
}

func (f *Finalizer) publish(ctx context.Context, b model.Booking) {
	if f.Publisher == nil {
		return
	}
	labels := make([]string, 0, len(b.SelectedSeats))
	for _, s := range b.SelectedSeats {
		labels = append(labels, s.ID)
	}
	ev := q.BookingConfirmedEvent{
		BookingRef:    b.BookingRef,
		MatchID:       b.Match.ID,
		MatchTitle:    b.Match.Title,
		Venue:         b.Match.Venue,
		City:          b.Match.City,
		MatchDate:     b.Match.Date,
		MatchTime:     b.Match.Time,
		SeatLabels:    labels,
		TotalPrice:    b.TotalPrice,
		PaymentMethod: string(b.PaymentMethod),
		ConfirmedAt:   b.BookingDate.Format(time.RFC3339),
	}
	if err := f.Publisher.PublishBookingConfirmed(ctx, ev); err != nil && f.Logger != nil {
		f.Logger.WithError(err).WithField("booking_ref", b.BookingRef).Warn("booking event not published")
	}
}
