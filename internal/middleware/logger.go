package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request.
func RequestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			status := c.Response().Status
			entry := logger.WithFields(logrus.Fields{
				"method":    c.Request().Method,
				"path":      c.Path(),
				"status":    status,
				"duration":  time.Since(start),
				"client_ip": c.RealIP(),
			})
			if status >= 400 {
				entry.Error("Request failed")
			} else {
				entry.Info("Request processed")
			}
			return nil
		}
	}
}
