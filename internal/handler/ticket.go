package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/middleware"
	"github.com/iliyamo/cricket-ticket-booking/internal/model"
	"github.com/iliyamo/cricket-ticket-booking/internal/notify"
)

// TicketHandler renders a confirmed booking.  Its routes sit behind the
// ticket guard, which puts the model.Booking in the context.
type TicketHandler struct {
	Notifier notify.Notifier
}

// EntryCode is the code printed under the entry QR.
func EntryCode(ref string) string { return "ENTRY-" + ref }

type ticketSeat struct {
	ID      string     `json:"id"`
	Row     string     `json:"row"`
	Number  int        `json:"number"`
	Section string     `json:"section"`
	Tier    model.Tier `json:"type"`
	Price   int        `json:"price"`
}

// emit sends n to the handler's notifier and returns what was emitted so
// the client can render it.
func (h *TicketHandler) emit(n notify.Notification) []notify.Notification {
	var rec notify.Recorder
	notify.Multi(h.Notifier, &rec).Notify(n)
	return rec.Items()
}

func bookingFrom(c echo.Context) model.Booking {
	b, _ := c.Get(middleware.BookingKey).(model.Booking)
	return b
}

// View returns the ticket.
// GET /v1/ticket
func (h *TicketHandler) View(c echo.Context) error {
	b := bookingFrom(c)
	seats := make([]ticketSeat, 0, len(b.SelectedSeats))
	for _, s := range b.SelectedSeats {
		seats = append(seats, ticketSeat{
			ID: s.ID, Row: s.Row, Number: s.Number, Section: s.Section, Tier: s.Tier, Price: s.Price,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking":   b,
		"entryCode": EntryCode(b.BookingRef),
		"seats":     seats,
	})
}

// Download acknowledges a ticket download.
// POST /v1/ticket/download
func (h *TicketHandler) Download(c echo.Context) error {
	n := notify.Notification{
		Kind:    notify.KindInfo,
		Title:   "Download Started",
		Message: "Your ticket is being downloaded as PDF.",
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": h.emit(n)})
}

// Share returns the share payload for the ticket and a link that reopens
// it with the same token.
// POST /v1/ticket/share
func (h *TicketHandler) Share(c echo.Context) error {
	b := bookingFrom(c)
	tok, _ := c.Get(middleware.TokenKey).(string)
	link := "/v1/ticket?" + url.Values{"token": {tok}}.Encode()
	n := notify.Notification{
		Kind:    notify.KindInfo,
		Title:   "Link Copied",
		Message: "Ticket link copied to clipboard.",
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":         "Cricket Ticket - " + b.Match.Title,
		"text":          "I'm going to watch " + b.Match.Title + " at " + b.Match.Venue + "!",
		"url":           link,
		"notifications": h.emit(n),
	})
}
