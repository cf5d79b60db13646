package dto

import (
	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

type CreateTaskRequest struct {
	Title       string                `json:"title"`
	Description *string               `json:"description"`
	Status      *constants.TaskStatus `json:"status"`
}

// UpdateTaskRequest carries only the fields the client sent; nil means
// leave unchanged.
type UpdateTaskRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Status      *constants.TaskStatus `json:"status"`
}

type TaskPage struct {
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Items    []model.Task `json:"items"`
}
