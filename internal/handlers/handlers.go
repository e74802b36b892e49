package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"storeapi/internal/events"
	"storeapi/internal/logging"
	authmw "storeapi/internal/middleware/auth"
	"storeapi/internal/transport"
)

func errorJSON(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, transport.ErrorResponse{Error: code, Message: msg})
}

func pathID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func requestUserID(c echo.Context) string {
	if v, ok := c.Get(authmw.UserIDKey).(string); ok {
		return v
	}
	return ""
}

// publish sends a domain event, best effort: failures are logged and never
// fail the request.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event publish failed",
			"topic", topic, "error", err)
	}
}
