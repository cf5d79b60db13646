package services

import (
	"context"
	"time"

	repository "task-tracker.com/task-tracker/internal/repositories"
)

const healthCheckTimeout = 2 * time.Second

type HealthService struct {
	repo *repository.HealthRepository
}

func NewHealthService(repo *repository.HealthRepository) *HealthService {
	return &HealthService{repo: repo}
}

func (s *HealthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	return s.repo.Ping(ctx)
}
