package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-system/internal/api/middleware"
	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

// AuthHandler handles login, logout, and the session check.
type AuthHandler struct {
	auth       ports.AuthService
	sessionTTL time.Duration
}

func NewAuthHandler(auth ports.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, sessionTTL: sessionTTL}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login authenticates a user and issues a session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(token, h.sessionTTL))
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout revokes the current session. Calling it without a session, or
// twice, succeeds either way.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	// Expire the cookie regardless of whether a session existed.
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Session reports whether the caller holds a valid session, and for whom.
//
// @Summary      Check session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  sessionResponse
// @Router       /v1/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, sessionResponse{Authenticated: false})
	}

	user, err := h.auth.Resolve(c.Request().Context(), cookie.Value)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, sessionResponse{Authenticated: false})
	}

	return c.JSON(http.StatusOK, sessionResponse{Authenticated: true, User: user})
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl / time.Second),
	}
}
