package model

import (
	"time"

	"task-tracker.com/task-tracker/internal/constants"
)

type Task struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	Title       string               `gorm:"size:255;not null;index" json:"title"`
	Description *string              `gorm:"type:text" json:"description"`
	Status      constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	UserID      uint                 `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
