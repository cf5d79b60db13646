package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/cache"
	config "task-tracker.com/task-tracker/internal/configs"
	httpapi "task-tracker.com/task-tracker/internal/http"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/security"
	"task-tracker.com/task-tracker/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Migrates the schema and serves the task tracker HTTP API until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.migrate(); err != nil {
			return err
		}

		cfg := a.cfg

		hasher, err := security.NewPasswordHasher(cfg.PasswordHasher)
		if err != nil {
			return err
		}

		tokens, err := security.NewJWT([]byte(cfg.SecretKey), security.WithIssuer(cfg.JWTIssuer))
		if err != nil {
			return err
		}

		taskOpts := []services.TaskServiceOption{}
		redisClient, err := config.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return err
		}
		if redisClient != nil {
			defer redisClient.Close()
			taskOpts = append(taskOpts, services.WithTaskCache(cache.NewRedisTaskCache(redisClient, cfg.TaskCacheTTL())))
			a.logger.Info().Str("addr", cfg.RedisAddr).Msg("task cache enabled")
		}

		authService := services.NewAuthService(
			repository.NewUserRepository(a.db),
			hasher,
			tokens,
			cfg.AccessTokenTTL(),
			a.logger,
		)
		taskService := services.NewTaskService(repository.NewTaskRepository(a.db), a.logger, taskOpts...)
		healthService := services.NewHealthService(repository.NewHealthRepository(a.db))

		handler := httpapi.NewHandler(authService, taskService, healthService, cfg.APIPrefix)
		e := httpapi.NewServer(handler, httpapi.RouteConfig{
			APIPrefix:          cfg.APIPrefix,
			LoginRatePerMinute: cfg.LoginRateLimitPerMinute,
			TrustProxyHeaders:  cfg.TrustProxyHeaders,
			Logger:             a.logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			a.logger.Info().Str("addr", cfg.AppURL()).Msg("HTTP server listening")
			if err := e.Start(cfg.AppURL()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("graceful shutdown failed")
			return err
		}

		a.logger.Info().Msg("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
