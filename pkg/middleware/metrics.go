package middleware

import (
	"strconv"
	"time"

	"refurb-tracker/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics считает запросы и их длительность по шаблону маршрута.
func Metrics(m *metrics.HTTPMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.Observe(c.Request().Method, route, strconv.Itoa(status), time.Since(start))
			return err
		}
	}
}
