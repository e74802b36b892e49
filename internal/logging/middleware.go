package logging

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger attaches a per-request logger to the request context and logs
// one line per completed request.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base.With(
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid := c.Request().Header.Get(echo.HeaderXRequestID); rid != "" {
				l = l.With("request_id", rid)
			}

			req := c.Request().WithContext(IntoContext(c.Request().Context(), l))
			c.SetRequest(req)

			start := time.Now()
			err := next(c)
			status := c.Response().Status
			durMs := time.Since(start).Milliseconds()

			switch {
			case err != nil || status >= 500:
				l.Error("request completed", "status", status, "duration_ms", durMs, "error", err)
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", durMs)
			default:
				l.Info("request completed", "status", status, "duration_ms", durMs, "bytes", c.Response().Size)
			}
			return err
		}
	}
}
