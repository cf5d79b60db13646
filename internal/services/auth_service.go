package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/security"
)

type AuthService struct {
	users    *repository.UserRepository
	hasher   security.PasswordHasher
	tokens   security.TokenService
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewAuthService(
	users *repository.UserRepository,
	hasher security.PasswordHasher,
	tokens security.TokenService,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = security.DefaultTokenTTL
	}
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Login exchanges credentials for a bearer token. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := validate.Var(email, "email,max=255"); err != nil {
		return nil, fmt.Errorf("%w: email must be a valid email address", apperrors.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("failed to look up user for login")
		return nil, err
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		s.logger.Debug().Uint("user_id", user.ID).Msg("password mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Info().Uint("user_id", user.ID).Msg("login refused for inactive user")
		return nil, apperrors.ErrInactiveAccount
	}

	token, _, err := s.tokens.Issue(user.Email, s.tokenTTL)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", user.ID).Msg("failed to issue token")
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user logged in")

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   dto.TokenTypeBearer,
		ExpiresIn:   int64(s.tokenTTL / time.Second),
	}, nil
}

// ResolveCurrentUser maps a bearer token to the user it was issued for.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (*model.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejected bearer token")
		return nil, apperrors.ErrAuthenticationFailed
	}

	user, err := s.users.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.ErrAuthenticationFailed
		}
		s.logger.Error().Err(err).Msg("failed to resolve token subject")
		return nil, err
	}

	return user, nil
}
