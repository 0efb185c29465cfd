package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-system/internal/core/ports"
)

// TaskHandler handles the task lifecycle on a user's task list. Tasks are
// addressed by position; removing one shifts every later index down.
type TaskHandler struct {
	tasks ports.TaskService
}

func NewTaskHandler(tasks ports.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Assign appends a new task to the target user's list.
//
// @Summary      Assign a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Target user id"
// @Param        body  body      assignTaskRequest  true  "Task details"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id}/tasks [post]
func (h *TaskHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.tasks.Assign(c.Request().Context(), ports.AssignTaskInput{
		ActorID:  actor.ID,
		TargetID: c.Param("id"),
		Name:     req.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Toggle flips the completion flag of the task at the given index.
//
// @Summary      Toggle task completion
// @Tags         tasks
// @Produce      json
// @Param        id     path      string  true  "Target user id"
// @Param        index  path      int     true  "Task position"
// @Success      200    {object}  domain.User
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /v1/users/{id}/tasks/{index} [patch]
func (h *TaskHandler) Toggle(c echo.Context) error {
	ref, err := taskRef(c)
	if err != nil {
		return err
	}

	user, err := h.tasks.Toggle(c.Request().Context(), ref)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Remove deletes the task at the given index.
//
// @Summary      Remove a task
// @Tags         tasks
// @Produce      json
// @Param        id     path      string  true  "Target user id"
// @Param        index  path      int     true  "Task position"
// @Success      200    {object}  domain.User
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /v1/users/{id}/tasks/{index} [delete]
func (h *TaskHandler) Remove(c echo.Context) error {
	ref, err := taskRef(c)
	if err != nil {
		return err
	}

	user, err := h.tasks.Remove(c.Request().Context(), ref)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// taskRef builds the actor/target/index triple from the request. A
// non-numeric index never reaches the service.
func taskRef(c echo.Context) (ports.TaskRefInput, error) {
	actor, err := ctxActor(c)
	if err != nil {
		return ports.TaskRefInput{}, err
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return ports.TaskRefInput{}, echo.NewHTTPError(http.StatusBadRequest, "index must be an integer")
	}

	return ports.TaskRefInput{
		ActorID:  actor.ID,
		TargetID: c.Param("id"),
		Index:    index,
	}, nil
}
