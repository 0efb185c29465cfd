package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-system/internal/core/ports"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "session_token"

// ActorKey is the echo context key under which the resolved actor is stored.
const ActorKey = "actor"

// Session resolves the session cookie to a user and injects it into the
// request context. Requests without a valid session are rejected before any
// handler runs.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			user, err := auth.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set(ActorKey, user)
			return next(c)
		}
	}
}
