package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cricket-ticket-booking/internal/model"
	"github.com/iliyamo/cricket-ticket-booking/internal/utils"
)

const testHeader = "X-Checkout-Token"

func guarded(t *testing.T, s *utils.Signer, kind utils.HandoffKind, req *http.Request) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	called := false
	h := RequireHandoff(s, kind, testHeader, logger)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c, called
}

func TestRequireHandoffRedirectsWithoutToken(t *testing.T) {
	s := utils.NewSigner("secret", time.Minute)
	rec, _, called := guarded(t, s, utils.KindCheckout, httptest.NewRequest(http.MethodGet, "/v1/payment", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, CatalogPath, rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, rec.Body.String())
}

func TestRequireHandoffStoresCheckout(t *testing.T) {
	s := utils.NewSigner("secret", time.Minute)
	co := model.Checkout{
		ID:            "co-1",
		SelectedSeats: []model.Seat{{ID: "A1-1", Section: "A", Price: 500, Available: true, Selected: true}},
		Match:         model.Match{ID: "1", Title: "India vs Australia"},
		TotalPrice:    500,
		CreatedAt:     time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	}
	raw, _, err := s.NewCheckoutToken(co)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/payment", nil)
	req.Header.Set(testHeader, raw)
	rec, c, called := guarded(t, s, utils.KindCheckout, req)

	require.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, co, c.Get(CheckoutKey))
	assert.Equal(t, raw, c.Get(TokenKey))
}

func TestRequireHandoffAcceptsQueryToken(t *testing.T) {
	s := utils.NewSigner("secret", time.Minute)
	raw, _, err := s.NewTicketToken(model.Booking{BookingRef: "CT1", Match: model.Match{ID: "1"}})
	require.NoError(t, err)

	rec, c, called := guarded(t, s, utils.KindTicket, httptest.NewRequest(http.MethodGet, "/v1/ticket?token="+raw, nil))
	require.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	b, ok := c.Get(BookingKey).(model.Booking)
	require.True(t, ok)
	assert.Equal(t, "CT1", b.BookingRef)
}

func TestRequireHandoffRejectsWrongKind(t *testing.T) {
	s := utils.NewSigner("secret", time.Minute)
	raw, _, err := s.NewTicketToken(model.Booking{BookingRef: "CT1", Match: model.Match{ID: "1"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/payment", nil)
	req.Header.Set(testHeader, raw)
	rec, _, called := guarded(t, s, utils.KindCheckout, req)
	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRequireHandoffRejectsForeignSignature(t *testing.T) {
	other := utils.NewSigner("other", time.Minute)
	raw, _, err := other.NewCheckoutToken(model.Checkout{ID: "x", SelectedSeats: []model.Seat{{ID: "A1-1"}}, Match: model.Match{ID: "1"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/payment", nil)
	req.Header.Set(testHeader, raw)
	rec, _, called := guarded(t, utils.NewSigner("secret", time.Minute), utils.KindCheckout, req)
	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
