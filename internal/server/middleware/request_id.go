package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/trannm-ct/channel-chat/pkg/ctxval"
)

const XRequestID = "x-request-id"

type requestIDKey struct{}

// RequestID propagates the caller's request id, or mints one, and makes it
// reachable from both the echo context and the request context.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := GetRequestIDFromHeader(c.Request().Header)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			ctx := ctxval.Wrap(c.Request().Context())
			ctxval.Set(ctx, requestIDKey{}, reqID)
			c.SetRequest(c.Request().WithContext(ctx))

			c.Set(XRequestID, reqID)
			c.Response().Header().Set(XRequestID, reqID)
			return next(c)
		}
	}
}

func GetRequestID(c echo.Context) string {
	if id := GetRequestIDFromEchoContext(c); id != "" {
		return id
	}
	if id := GetRequestIDFromContext(c.Request().Context()); id != "" {
		return id
	}
	return GetRequestIDFromHeader(c.Request().Header)
}

func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctxval.Get[requestIDKey, string](ctx, requestIDKey{})
	return id
}

func GetRequestIDFromEchoContext(c echo.Context) string {
	if id, ok := c.Get(XRequestID).(string); ok {
		return id
	}
	return ""
}

func GetRequestIDFromHeader(h http.Header) string {
	return h.Get(XRequestID)
}
