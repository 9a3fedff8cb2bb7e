package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trannm-ct/channel-chat/pkg/util"
)

const notFoundPath = "/not-found"

// Metrics records a request duration histogram labelled by method, route
// and status.
func Metrics() echo.MiddlewareFunc {
	return MetricsWithSkipper(DefaultSkipper)
}

func MetricsWithSkipper(skipper Skipper) echo.MiddlewareFunc {
	httpMetrics, err := util.GetHistogramVec("http_request_duration_seconds", "method", "path", "status")
	if err != nil {
		panic(err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = notFoundPath
			}
			status := strconv.Itoa(c.Response().Status)
			httpMetrics.
				WithLabelValues(c.Request().Method, path, status).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
