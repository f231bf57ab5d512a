package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveBooking(t *testing.T) {
	before := testutil.ToFloat64(bookingsTotal.WithLabelValues("upi"))
	revBefore := testutil.ToFloat64(bookingRevenue.WithLabelValues("upi"))

	ObserveBooking("upi", 350, 2)

	assert.Equal(t, before+1, testutil.ToFloat64(bookingsTotal.WithLabelValues("upi")))
	assert.Equal(t, revBefore+350, testutil.ToFloat64(bookingRevenue.WithLabelValues("upi")))
}

func TestSetActiveSessions(t *testing.T) {
	SetActiveSessions(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(activeSessions))
}
