package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-system/internal/core/ports"
)

// RoleHandler exposes the read-only roles collection.
type RoleHandler struct {
	users ports.UserService
}

func NewRoleHandler(users ports.UserService) *RoleHandler {
	return &RoleHandler{users: users}
}

// List returns all roles ascending by rank.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Success      200  {array}   domain.Role
// @Failure      500  {object}  map[string]string
// @Router       /v1/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.users.ListRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}
