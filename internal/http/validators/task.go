package validators

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"task-tracker.com/task-tracker/internal/constants"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/services"
)

// BindJSON decodes the request body into dst. Any decoding problem is a
// validation error.
func BindJSON(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload", apperrors.ErrValidation)
	}
	return nil
}

func ParseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidTaskID
	}
	return uint(id), nil
}

// ParseListTasksQuery reads page, page_size and status from the query
// string. Page range checks are left to the task service.
func ParseListTasksQuery(c echo.Context) (services.ListTasksParams, error) {
	params := services.ListTasksParams{
		Page:     constants.DefaultPage,
		PageSize: constants.DefaultPageSize,
	}

	var err error
	if params.Page, err = intParam(c, "page", params.Page); err != nil {
		return params, err
	}
	if params.PageSize, err = intParam(c, "page_size", params.PageSize); err != nil {
		return params, err
	}

	if raw := c.QueryParam("status"); raw != "" {
		status := constants.TaskStatus(raw)
		if !status.Valid() {
			return params, fmt.Errorf("%w: status must be one of: %s, %s, %s", apperrors.ErrValidation,
				constants.StatusPending, constants.StatusInProgress, constants.StatusDone)
		}
		params.Status = &status
	}

	return params, nil
}

func intParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", apperrors.ErrValidation, name)
	}
	return v, nil
}
