package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	"task-tracker.com/task-tracker/internal/http/validators"
	"task-tracker.com/task-tracker/internal/services"
)

type Handler struct {
	authService   *services.AuthService
	taskService   *services.TaskService
	healthService *services.HealthService
	docsPath      string
}

func NewHandler(
	authService *services.AuthService,
	taskService *services.TaskService,
	healthService *services.HealthService,
	apiPrefix string,
) *Handler {
	return &Handler{
		authService:   authService,
		taskService:   taskService,
		healthService: healthService,
		docsPath:      apiPrefix + "/docs",
	}
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := validators.BindJSON(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, token)
}

func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.BannerResponse{
		Message: "Task Tracker API",
		Docs:    h.docsPath,
	})
}

func (h *Handler) Healthz(c echo.Context) error {
	if err := h.healthService.Check(c.Request().Context()); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "OK",
		Database: "connected",
	})
}
