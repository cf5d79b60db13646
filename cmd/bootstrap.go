package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	config "task-tracker.com/task-tracker/internal/configs"
)

type app struct {
	cfg    config.Config
	logger zerolog.Logger
	db     *gorm.DB
}

// bootstrap loads configuration, builds the logger and opens the database.
// Every subcommand starts here.
func bootstrap() (*app, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(cfg.Env, os.Stdout)
	if err != nil {
		return nil, err
	}
	if envErr != nil {
		logger.Debug().Msg(".env file not found, using environment variables")
	}

	db, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("env", cfg.Env).
		Str("driver", cfg.DatabaseDriver).
		Msg("configuration loaded")

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) close() {
	sqlDB, err := a.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to close database")
	}
}

func (a *app) migrate() error {
	if err := config.Migrate(a.db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	a.logger.Info().Msg("database schema is up to date")
	return nil
}
