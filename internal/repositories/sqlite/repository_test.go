package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"camp-signup-api/internal/database"
	"camp-signup-api/internal/models"
	"camp-signup-api/internal/repositories"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sql.DB, *logrus.Logger) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "sqlite_test_*")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	cm, err := database.InitializeDatabase(context.Background(), filepath.Join(tempDir, "test.db"), logger)
	require.NoError(t, err)

	t.Cleanup(func() {
		cm.Close()
		os.RemoveAll(tempDir)
	})

	return cm.GetDB(), logger
}

func setupManager(t *testing.T) repositories.RepositoryManager {
	db, logger := setupTestDB(t)
	return NewSQLiteRepositoryManager(db, logger)
}

func TestCamperRepository_CreateAndGet(t *testing.T) {
	repos := setupManager(t)
	ctx := context.Background()

	camper := models.NewCamper("Caitlin", 8)
	require.NoError(t, repos.Campers().Create(ctx, camper))
	assert.Positive(t, camper.ID)

	retrieved, err := repos.Campers().GetByID(ctx, camper.ID)
	require.NoError(t, err)
	assert.Equal(t, camper.ID, retrieved.ID)
	assert.Equal(t, "Caitlin", retrieved.Name)
	assert.Equal(t, 8, retrieved.Age)

	count, err := repos.Campers().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCamperRepository_CreateInvalidPersistsNothing(t *testing.T) {
	repos := setupManager(t)
	ctx := context.Background()

	err := repos.Campers().Create(ctx, models.NewCamper("Tot", -3))
	require.Error(t, err)
	assert.True(t, repositories.IsValidation(err))

	var verrs models.ValidationErrors
	assert.True(t, errors.As(err, &verrs), "field errors should stay reachable")

	count, err := repos.Campers().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCamperRepository_CheckConstraintBackstop(t *testing.T) {
	db, logger := setupTestDB(t)
	repo := NewBaseRepository[models.Camper](db, "campers", "camper", logger)

	_, err := repo.executeExec(context.Background(), "create",
		"INSERT INTO campers (name, age) VALUES (?, ?)", "Old", 40)
	require.Error(t, err)
	assert.True(t, repositories.IsConstraint(err))
}

func TestCamperRepository_GetMissing(t *testing.T) {
	repos := setupManager(t)

	_, err := repos.Campers().GetByID(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, repositories.IsNotFound(err))

	_, err = repos.Campers().GetByID(context.Background(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrInvalidID)
}

func TestCamperRepository_Update(t *testing.T) {
	repos := setupManager(t)
	ctx := context.Background()

	camper := models.NewCamper("Nick", 12)
	require.NoError(t, repos.Campers().Create(ctx, camper))

	camper.Rename("Nicholas")
	camper.Age = 13
	require.NoError(t, repos.Campers().Update(ctx, camper))

	retrieved, err := repos.Campers().GetByID(ctx, camper.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nicholas", retrieved.Name)
	assert.Equal(t, 13, retrieved.Age)

	missing := models.NewCamper("Ghost", 10)
	missing.ID = 999
	err = repos.Campers().Update(ctx, missing)
	assert.True(t, repositories.IsNotFound(err))
}

func TestCamperRepository_List(t *testing.T) {
	repos := setupManager(t)
	ctx := context.Background()

	empty, err := repos.Campers().List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, repos.Campers().Create(ctx, models.NewCamper("Alice", 10)))
	require.NoError(t, repos.Campers().Create(ctx, models.NewCamper("Bob", 11)))

	campers, err := repos.Campers().List(ctx)
	require.NoError(t, err)
	require.Len(t, campers, 2)
	assert.Equal(t, "Alice", campers[0].Name)
	assert.Equal(t, "Bob", campers[1].Name)
}

func TestSignupRepository_CreateLoadsOwners(t *testing.T) {
	repos := setupManager(t)
	ctx := context.Background()

	camper := models.NewCamper("Ashley", 11)
	require.NoError(t, repos.Campers().Create(ctx, camper))
	activity := models.NewActivity("Archery", 2)
	require.NoError(t, repos.Activities().Create(ctx, activity))

	signup := models.NewSignup(camper.ID, activity.ID, 9)
	require.NoError(t, repos.Signups().Create(ctx, signup))
	assert.Positive(t, signup.ID)

	loaded, err := repos.Signups().GetByID(ctx, signup.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.Time)
	require.NotNil(t, loaded.Camper)
	require.NotNil(t, loaded.Activity)
	assert.Equal(t, "Ashley", loaded.Camper.Name)
	assert.Equal(t, "Archery", loaded.Activity.Name)

	withSignups, err := repos.Campers().GetWithSignups(ctx, camper.ID)
	require.NoError(t, err)
	require.Len(t, withSignups.Signups, 1)
	assert.Equal(t, activity.ID, withSignups.Signups[0].Activity.ID)
}

func TestSignupRepository_ForeignKeyViolation(t *testing.T) {
	repos := setupManager(t)
	ctx := context.Background()

	err := repos.Signups().Create(ctx, models.NewSignup(123, 456, 10))
	require.Error(t, err)
	assert.True(t, repositories.IsConstraint(err))

	count, err := repos.Signups().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestActivityRepository_DeleteCascades(t *testing.T) {
	repos := setupManager(t)
	ctx := context.Background()

	camper := models.NewCamper("Tom", 14)
	require.NoError(t, repos.Campers().Create(ctx, camper))
	kept := models.NewActivity("Hiking", 3)
	require.NoError(t, repos.Activities().Create(ctx, kept))
	removed := models.NewActivity("Canoeing", 4)
	require.NoError(t, repos.Activities().Create(ctx, removed))

	require.NoError(t, repos.Signups().Create(ctx, models.NewSignup(camper.ID, kept.ID, 8)))
	require.NoError(t, repos.Signups().Create(ctx, models.NewSignup(camper.ID, removed.ID, 10)))

	require.NoError(t, repos.Activities().Delete(ctx, removed.ID))

	exists, err := repos.Activities().Exists(ctx, removed.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	signups, err := repos.Signups().List(ctx)
	require.NoError(t, err)
	require.Len(t, signups, 1)
	assert.Equal(t, kept.ID, signups[0].ActivityID)

	err = repos.Activities().Delete(ctx, removed.ID)
	assert.True(t, repositories.IsNotFound(err))
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	repos := setupManager(t)
	ctx := context.Background()

	activity := models.NewActivity("Kayaking", 5)
	require.NoError(t, repos.Activities().Create(ctx, activity))

	boom := errors.New("boom")
	err := repos.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := repos.Activities().Delete(txCtx, activity.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := repos.Activities().Exists(ctx, activity.ID)
	require.NoError(t, err)
	assert.True(t, exists, "delete should have been rolled back")
}

func TestTransactionManager_CommitAndNesting(t *testing.T) {
	repos := setupManager(t)
	ctx := context.Background()

	err := repos.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := repos.Activities().Create(txCtx, models.NewActivity("Fishing", 1)); err != nil {
			return err
		}
		// a nested call reuses the outer transaction
		return repos.WithTransaction(txCtx, func(inner context.Context) error {
			return repos.Activities().Create(inner, models.NewActivity("Crafts", 1))
		})
	})
	require.NoError(t, err)

	count, err := repos.Activities().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, repos.Health(ctx))
}
