package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"task-tracker.com/task-tracker/internal/constants"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Task{}))
	return db
}

// setupMockDB returns gorm on top of sqlmock through the postgres dialector.
func setupMockDB(t *testing.T, monitorPings bool) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(monitorPings))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{Email: email, HashedPassword: "hash", IsActive: true}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedTask(t *testing.T, repo *TaskRepository, userID uint, status constants.TaskStatus, at time.Time) *model.Task {
	t.Helper()

	task := &model.Task{Title: "Task", Status: status, UserID: userID, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "owner@example.com")

	found, err := repo.FindByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.IsActive)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	exists, err := repo.ExistsByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_EmailIsUnique(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "owner@example.com")

	err := NewUserRepository(db).Create(context.Background(), &model.User{
		Email: "owner@example.com", HashedPassword: "hash", IsActive: true,
	})
	assert.Error(t, err)
}

func TestTaskRepository_ListOrdersByCreatedAtThenID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	owner := seedUser(t, db, "owner@example.com")

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	older := seedTask(t, repo, owner.ID, constants.StatusPending, base)
	tieA := seedTask(t, repo, owner.ID, constants.StatusPending, base.Add(time.Minute))
	tieB := seedTask(t, repo, owner.ID, constants.StatusDone, base.Add(time.Minute))

	tasks, total, err := repo.ListForUser(context.Background(), TaskFilter{UserID: owner.ID, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, tasks, 3)
	assert.Equal(t, []uint{tieB.ID, tieA.ID, older.ID}, []uint{tasks[0].ID, tasks[1].ID, tasks[2].ID})

	done := constants.StatusDone
	tasks, total, err = repo.ListForUser(context.Background(), TaskFilter{UserID: owner.ID, Status: &done, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, tieB.ID, tasks[0].ID)

	tasks, total, err = repo.ListForUser(context.Background(), TaskFilter{UserID: owner.ID, Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, older.ID, tasks[0].ID)
}

func TestTaskRepository_UpdateAndDeleteAreOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	ctx := context.Background()

	task := seedTask(t, repo, owner.ID, constants.StatusPending, time.Now().UTC())

	called := false
	_, err := repo.UpdateForUser(ctx, task.ID, other.ID, func(*model.Task) { called = true })
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	assert.False(t, called)

	assert.ErrorIs(t, repo.DeleteForUser(ctx, task.ID, other.ID), apperrors.ErrTaskNotFound)

	description := "now with details"
	updated, err := repo.UpdateForUser(ctx, task.ID, owner.ID, func(m *model.Task) {
		m.Description = &description
		m.UpdatedAt = m.UpdatedAt.Add(time.Hour)
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)

	stored, err := repo.FindByIDForUser(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Description)
	assert.Equal(t, description, *stored.Description)
	assert.True(t, stored.UpdatedAt.Equal(task.UpdatedAt.Add(time.Hour)))

	require.NoError(t, repo.DeleteForUser(ctx, task.ID, owner.ID))
	_, err = repo.FindByIDForUser(ctx, task.ID, owner.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestTaskRepository_UpdateRollsBackOnWriteFailure(t *testing.T) {
	db, mock := setupMockDB(t, false)
	repo := NewTaskRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "status", "user_id", "created_at", "updated_at"}).
		AddRow(7, "Task", nil, "pending", 3, now, now)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tasks"`)).WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "tasks" SET`)).WillReturnError(errors.New("could not serialize access"))
	mock.ExpectRollback()

	_, err := repo.UpdateForUser(context.Background(), 7, 3, func(task *model.Task) {
		task.Status = constants.StatusDone
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthRepository_Ping(t *testing.T) {
	db, mock := setupMockDB(t, true)
	repo := NewHealthRepository(db)

	mock.ExpectPing()
	assert.NoError(t, repo.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err := repo.Ping(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrDatabaseUnreachable)
	assert.Equal(t, "database unreachable", apperrors.Message(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}
