// Package router registers the HTTP routes of the booking service.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cricket-ticket-booking/internal/config"
	"github.com/iliyamo/cricket-ticket-booking/internal/handler"
	"github.com/iliyamo/cricket-ticket-booking/internal/middleware"
	"github.com/iliyamo/cricket-ticket-booking/internal/notify"
	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
	"github.com/iliyamo/cricket-ticket-booking/internal/service"
	"github.com/iliyamo/cricket-ticket-booking/internal/utils"
)

// Handoff headers for the payment and ticket stages.
const (
	CheckoutHeader = "X-Checkout-Token"
	TicketHeader   = "X-Ticket-Token"
)

// Deps is everything the routes need.  Redis may be nil, in which case
// caching and rate limiting are skipped.
type Deps struct {
	Matches   *repository.MatchRepo
	Sessions  *service.SessionStore
	Finalizer *service.Finalizer
	Signer    *utils.Signer
	Notifier  notify.Notifier
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Logger    logrus.FieldLogger
}

// RegisterRoutes registers the ops endpoints.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterBooking registers the catalog and the booking flow.
func RegisterBooking(e *echo.Echo, d Deps) {
	var (
		cache   echo.MiddlewareFunc = middleware.Passthrough
		limiter echo.MiddlewareFunc = middleware.Passthrough
	)
	if d.Redis != nil {
		cache = middleware.NewRedisCache(d.Cache, d.Redis)
		limiter = middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Logger)
	}

	catalog := &handler.CatalogHandler{Matches: d.Matches}
	e.GET("/", catalog.ListMatches, cache)

	v1 := e.Group("/v1", limiter)
	v1.GET("/matches", catalog.ListMatches, cache)
	v1.GET("/matches/:id", catalog.GetMatch, cache)

	booking := &handler.BookingHandler{
		Matches:  d.Matches,
		Sessions: d.Sessions,
		Signer:   d.Signer,
		Logger:   d.Logger,
	}
	v1.POST("/matches/:id/sessions", booking.OpenSession)
	v1.GET("/sessions/:sid/seats", booking.GetSeats)
	v1.POST("/sessions/:sid/seats/:seatId/toggle", booking.ToggleSeat)
	v1.GET("/sessions/:sid/selection", booking.GetSelection)
	v1.POST("/sessions/:sid/checkout", booking.Checkout)

	payment := &handler.PaymentHandler{Finalizer: d.Finalizer, Signer: d.Signer, Logger: d.Logger}
	v1.POST("/payment/format", payment.Format)
	v1.POST("/payment/validate", payment.Validate)
	pay := v1.Group("/payment", middleware.RequireHandoff(d.Signer, utils.KindCheckout, CheckoutHeader, d.Logger))
	pay.GET("", payment.Summary)
	pay.POST("", payment.Submit)

	ticket := &handler.TicketHandler{Notifier: d.Notifier}
	t := v1.Group("/ticket", middleware.RequireHandoff(d.Signer, utils.KindTicket, TicketHeader, d.Logger))
	t.GET("", ticket.View)
	t.POST("/download", ticket.Download)
	t.POST("/share", ticket.Share)
}
