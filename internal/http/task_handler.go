package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	"task-tracker.com/task-tracker/internal/http/validators"
	"task-tracker.com/task-tracker/internal/services"
)

func (h *Handler) CreateTask(c echo.Context) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := validators.BindJSON(c, &req); err != nil {
		return err
	}

	params := services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), caller, params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	params, err := validators.ParseListTasksQuery(c)
	if err != nil {
		return err
	}

	page, err := h.taskService.ListTasks(c.Request().Context(), caller, params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (h *Handler) GetTask(c echo.Context) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask serves both PUT and PATCH; either one changes only the fields
// present in the body.
func (h *Handler) UpdateTask(c echo.Context) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := validators.BindJSON(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), caller, id, services.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), caller, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
