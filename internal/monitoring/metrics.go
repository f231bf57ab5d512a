// Package monitoring defines the Prometheus metrics exported by the
// booking service on /metrics.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Bookings confirmed, by payment channel",
		},
		[]string{"channel"},
	)

	bookingRevenue = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_revenue_units_total",
			Help: "Sum of confirmed booking totals, by payment channel",
		},
		[]string{"channel"},
	)

	seatsBooked = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_seats",
			Help:    "Seats per confirmed booking",
			Buckets: prometheus.LinearBuckets(1, 2, 8),
		},
	)

	seatToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seat_toggles_total",
			Help: "Seat toggle requests by outcome",
		},
		[]string{"result"},
	)

	paymentRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_validation_failures_total",
			Help: "Payment submissions rejected by form validation",
		},
		[]string{"channel"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "booking_sessions_active",
			Help: "Booking sessions currently held in memory",
		},
	)
)

// ObserveBooking records a confirmed booking.
func ObserveBooking(channel string, total, seats int) {
	bookingsTotal.WithLabelValues(channel).Inc()
	bookingRevenue.WithLabelValues(channel).Add(float64(total))
	seatsBooked.Observe(float64(seats))
}

// ObserveSeatToggle records a toggle attempt; result is "selected",
// "deselected" or "ignored".
func ObserveSeatToggle(result string) {
	seatToggles.WithLabelValues(result).Inc()
}

// ObservePaymentRejected records a payment form that failed validation.
func ObservePaymentRejected(channel string) {
	paymentRejections.WithLabelValues(channel).Inc()
}

// SetActiveSessions publishes the current session count.
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}
