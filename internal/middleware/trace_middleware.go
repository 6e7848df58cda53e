package middleware

import (
	"smartStock/business/inference"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceID propagates X-Request-ID, generating one when the client sent none,
// and stores it on the request context for logging.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" || len(id) > 128 {
				id = uuid.NewString()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, id)
			c.SetRequest(req.WithContext(inference.WithTraceID(req.Context(), id)))

			return next(c)
		}
	}
}
