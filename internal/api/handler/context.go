package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-system/internal/api/middleware"
	"github.com/taskhub/task-system/internal/core/domain"
)

// ctxActor extracts the authenticated user injected by the session
// middleware. Its presence proves the middleware ran; a missing actor on a
// protected route means a wiring error, answered as unauthenticated rather
// than a 500.
func ctxActor(c echo.Context) (*domain.User, error) {
	actor, _ := c.Get(middleware.ActorKey).(*domain.User)
	if actor == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return actor, nil
}
