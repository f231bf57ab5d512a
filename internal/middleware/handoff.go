package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cricket-ticket-booking/internal/utils"
)

// Context keys set by RequireHandoff.
const (
	CheckoutKey = "checkout"
	BookingKey  = "booking"
	TokenKey    = "handoff_token"
)

// CatalogPath is where stages without their upstream context are sent.
const CatalogPath = "/"

// HandoffToken reads a handoff token from header, falling back to the
// "token" query parameter.
func HandoffToken(c echo.Context, header string) string {
	if v := c.Request().Header.Get(header); v != "" {
		return v
	}
	return c.QueryParam("token")
}

// RequireHandoff guards a stage that needs upstream context.  The token
// must verify and be of the given kind; its checkout or booking is stored
// in the echo context.  Anything else redirects to the catalog.
func RequireHandoff(s *utils.Signer, kind utils.HandoffKind, header string, logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := HandoffToken(c, header)
			claims, err := s.Parse(raw, kind)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"path":  c.Path(),
					"stage": kind,
				}).Debug("missing upstream context; redirecting to catalog")
				return c.Redirect(http.StatusSeeOther, CatalogPath)
			}
			switch kind {
			case utils.KindCheckout:
				c.Set(CheckoutKey, *claims.Checkout)
			case utils.KindTicket:
				c.Set(BookingKey, *claims.Booking)
			}
			c.Set(TokenKey, raw)
			return next(c)
		}
	}
}
