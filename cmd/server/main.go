package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cricket-ticket-booking/internal/config"
	"github.com/iliyamo/cricket-ticket-booking/internal/middleware"
	"github.com/iliyamo/cricket-ticket-booking/internal/notify"
	"github.com/iliyamo/cricket-ticket-booking/internal/queue"
	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
	"github.com/iliyamo/cricket-ticket-booking/internal/router"
	"github.com/iliyamo/cricket-ticket-booking/internal/service"
	"github.com/iliyamo/cricket-ticket-booking/internal/utils"
)

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; catalog cache and rate limiting disabled")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	sessions := service.NewSessionStore(cfg.SessionTTL, cfg.SeatSeed, log)
	go sessions.Run(ctx, cfg.SweepInterval)

	notifier := notify.Log{Logger: log.WithField("component", "notify")}

	var publisher service.EventPublisher
	if cfg.EventsEnabled {
		publisher = service.NewAMQPPublisher(cfg.AMQPURL, log.WithField("component", "publisher"))
		consumer := queue.NewConsumer(cfg.AMQPURL, log.WithField("component", "booking-consumer"))
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("booking consumer stopped")
			}
		}()
	}
	finalizer := service.NewFinalizer(cfg.PaymentDelay, notifier, publisher, log)
	finalizer.Retain = cfg.HandoffTTL

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(log))
	router.RegisterRoutes(e)
	router.RegisterBooking(e, router.Deps{
		Matches:   repository.NewMatchRepo(nil),
		Sessions:  sessions,
		Finalizer: finalizer,
		Signer:    utils.NewSigner(cfg.HandoffSecret, cfg.HandoffTTL),
		Notifier:  notifier,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Logger:    log,
	})

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
