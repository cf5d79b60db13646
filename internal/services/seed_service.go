package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/constants"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/security"
)

type sampleTask struct {
	title       string
	description string
	status      constants.TaskStatus
}

var sampleTasks = []sampleTask{
	{"Setup development environment", "Install all required dependencies and setup the project", constants.StatusDone},
	{"Implement authentication", "Create JWT-based authentication system", constants.StatusDone},
	{"Create task CRUD endpoints", "Implement create, read, update, delete operations for tasks", constants.StatusInProgress},
	{"Add pagination to task listing", "Implement pagination for the tasks endpoint", constants.StatusPending},
	{"Write documentation", "Create comprehensive README with setup instructions", constants.StatusPending},
}

type SeedService struct {
	db     *gorm.DB
	hasher security.PasswordHasher
	logger zerolog.Logger
	now    func() time.Time
}

func NewSeedService(db *gorm.DB, hasher security.PasswordHasher, logger zerolog.Logger) *SeedService {
	return &SeedService{
		db:     db,
		hasher: hasher,
		logger: logger.With().Str("service", "seed").Logger(),
		now:    time.Now,
	}
}

// SeedInitialUser creates the active initial user and, unless skipTasks is
// set, a handful of sample tasks. It does nothing when the user exists and
// reports whether anything was created.
func (s *SeedService) SeedInitialUser(ctx context.Context, email, password string, skipTasks bool) (bool, error) {
	if email == "" || password == "" {
		return false, errors.New("initial user email and password are required")
	}
	// Login rejects anything that is not an address, so such a user could
	// never sign in.
	if err := validate.Var(email, "email,max=255"); err != nil {
		return false, fmt.Errorf("%w: initial user email %q is not a valid address", apperrors.ErrValidation, email)
	}

	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)

		exists, err := users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			s.logger.Info().Str("email", email).Msg("initial user already exists")
			return nil
		}

		hashed, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash initial password: %w", err)
		}

		user := &model.User{Email: email, HashedPassword: hashed, IsActive: true}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		created = true

		if skipTasks {
			return nil
		}

		tasks := repository.NewTaskRepository(tx)
		base := s.now().UTC()
		for i, sample := range sampleTasks {
			description := sample.description
			at := base.Add(time.Duration(i) * time.Second)
			task := &model.Task{
				Title:       sample.title,
				Description: &description,
				Status:      sample.status,
				UserID:      user.ID,
				CreatedAt:   at,
				UpdatedAt:   at,
			}
			if err := tasks.Create(ctx, task); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("seeding failed")
		return false, err
	}

	if created {
		s.logger.Info().Str("email", email).Bool("sample_tasks", !skipTasks).Msg("initial user created")
	}
	return created, nil
}
