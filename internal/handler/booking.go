package handler

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cricket-ticket-booking/internal/model"
	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
	"github.com/iliyamo/cricket-ticket-booking/internal/service"
	"github.com/iliyamo/cricket-ticket-booking/internal/utils"
)

// BookingHandler drives seat selection inside a booking session and
// hands the final selection to the payment stage.
type BookingHandler struct {
	Matches  *repository.MatchRepo
	Sessions *service.SessionStore
	Signer   *utils.Signer
	Logger   logrus.FieldLogger
}

type selectionResponse struct {
	SelectedSeats []model.Seat `json:"selectedSeats"`
	Count         int          `json:"count"`
	TotalPrice    int          `json:"totalPrice"`
}

func newSelectionResponse(seats []model.Seat, total int) selectionResponse {
	if seats == nil {
		seats = []model.Seat{}
	}
	return selectionResponse{SelectedSeats: seats, Count: len(seats), TotalPrice: total}
}

// session resolves :sid or writes a 404.
func (h *BookingHandler) session(c echo.Context) (*service.Session, error) {
	s, err := h.Sessions.Get(c.Param("sid"))
	if errors.Is(err, service.ErrSessionNotFound) {
		return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "booking session not found"})
	}
	return s, err
}

// OpenSession starts seat selection for a match with a fresh seat map.
// POST /v1/matches/:id/sessions
func (h *BookingHandler) OpenSession(c echo.Context) error {
	m, err := h.Matches.GetByID(c.Param("id"))
	if errors.Is(err, repository.ErrMatchNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
	}
	if err != nil {
		return err
	}
	s := h.Sessions.Create(m)
	h.Logger.WithFields(logrus.Fields{"session_id": s.ID, "match_id": m.ID}).Info("booking session opened")
	return c.JSON(http.StatusCreated, echo.Map{
		"sessionId":    s.ID,
		"matchDetails": s.Match,
		"sections":     s.Sections(),
	})
}

// GetSeats returns the seat grid, optionally one ?section= only.
func (h *BookingHandler) GetSeats(c echo.Context) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	section := strings.ToUpper(strings.TrimSpace(c.QueryParam("section")))
	if section != "" && !slices.Contains(service.Sections, section) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown section"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"sessionId":    s.ID,
		"matchDetails": s.Match,
		"section":      section,
		"sections":     s.Sections(),
		"seats":        s.Seats(section),
	})
}

// ToggleSeat flips one seat in or out of the selection.  Unavailable
// seats are left alone and reported with changed=false.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	seat, changed := s.Toggle(c.Param("seatId"))
	if seat.ID == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	}
	sel, total := s.Selection()
	return c.JSON(http.StatusOK, echo.Map{
		"seat":      seat,
		"changed":   changed,
		"selection": newSelectionResponse(sel, total),
	})
}

// GetSelection returns the selected seats and the running total.
func (h *BookingHandler) GetSelection(c echo.Context) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	return c.JSON(http.StatusOK, newSelectionResponse(s.Selection()))
}

type checkoutResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Checkout  model.Checkout `json:"checkout"`
}

// Checkout snapshots the selection and returns the token that unlocks the
// payment stage.
func (h *BookingHandler) Checkout(c echo.Context) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	co, err := s.Checkout()
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
	}
	if err != nil {
		return err
	}
	tok, exp, err := h.Signer.NewCheckoutToken(co)
	if err != nil {
		h.Logger.WithError(err).Error("sign checkout token")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not start checkout"})
	}
	h.Logger.WithFields(logrus.Fields{
		"session_id":  s.ID,
		"checkout_id": co.ID,
		"seats":       len(co.SelectedSeats),
		"total":       co.TotalPrice,
	}).Info("checkout created")
	return c.JSON(http.StatusCreated, checkoutResponse{Token: tok, ExpiresAt: exp, Checkout: co})
}
