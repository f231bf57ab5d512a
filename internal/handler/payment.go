package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cricket-ticket-booking/internal/middleware"
	"github.com/iliyamo/cricket-ticket-booking/internal/model"
	"github.com/iliyamo/cricket-ticket-booking/internal/service"
	"github.com/iliyamo/cricket-ticket-booking/internal/utils"
)

// PaymentHandler serves the payment stage.  Every route except the
// formatting and validation helpers sits behind the checkout guard, which
// puts the model.Checkout in the context.
type PaymentHandler struct {
	Finalizer *service.Finalizer
	Signer    *utils.Signer
	Logger    logrus.FieldLogger
}

// paymentRequest is the submitted form plus the chosen channel.
type paymentRequest struct {
	PaymentMethod model.PaymentChannel `json:"paymentMethod"`
	model.PaymentForm
}

var paymentChannels = []model.PaymentChannel{model.ChannelCard, model.ChannelUPI}

func checkoutFrom(c echo.Context) model.Checkout {
	co, _ := c.Get(middleware.CheckoutKey).(model.Checkout)
	return co
}

// Summary shows what is being paid for.
// GET /v1/payment
func (h *PaymentHandler) Summary(c echo.Context) error {
	co := checkoutFrom(c)
	return c.JSON(http.StatusOK, echo.Map{
		"checkout":   co,
		"channels":   paymentChannels,
		"processing": h.Finalizer.Processing(co.ID),
	})
}

// Format applies the input masks to card number, expiry and CVV.
// POST /v1/payment/format
func (h *PaymentHandler) Format(c echo.Context) error {
	var req model.PaymentForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cardNumber": service.FormatCardNumber(req.CardNumber),
		"expiryDate": service.FormatExpiry(req.ExpiryDate),
		"cvv":        service.SanitizeCVV(req.CVV),
	})
}

// Validate reports which fields would block submission.
// POST /v1/payment/validate
func (h *PaymentHandler) Validate(c echo.Context) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	fields := service.ValidateForm(req.PaymentMethod, req.PaymentForm)
	if fields == nil {
		fields = []service.FieldError{}
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": len(fields) == 0, "fields": fields})
}

type submitResponse struct {
	Booking   model.Booking `json:"booking"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
}

// Submit pays for the checkout in the context.  The call blocks for the
// simulated gateway delay and returns the booking with a ticket token.
// POST /v1/payment
func (h *PaymentHandler) Submit(c echo.Context) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	co := checkoutFrom(c)
	booking, err := h.Finalizer.Submit(c.Request().Context(), service.SubmitRequest{
		Checkout: co,
		Channel:  req.PaymentMethod,
		Form:     req.PaymentForm,
	})
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":  verr.Err.Error(),
			"fields": verr.Fields,
		})
	case errors.Is(err, service.ErrPaymentInProgress):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case err != nil:
		h.Logger.WithError(err).WithField("checkout_id", co.ID).Error("payment failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}

	tok, exp, err := h.Signer.NewTicketToken(booking)
	if err != nil {
		h.Logger.WithError(err).WithField("booking_ref", booking.BookingRef).Error("sign ticket token")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue ticket"})
	}
	h.Logger.WithFields(logrus.Fields{
		"booking_ref": booking.BookingRef,
		"checkout_id": co.ID,
		"channel":     booking.PaymentMethod,
		"total":       booking.TotalPrice,
	}).Info("booking confirmed")
	return c.JSON(http.StatusCreated, submitResponse{
		Booking:   booking,
		Token:     tok,
		ExpiresAt: exp,
		Title:     "Payment Successful!",
		Message:   service.ConfirmationMessage(booking.BookingRef),
	})
}
