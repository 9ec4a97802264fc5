package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camp-signup-api/internal/database"
	"camp-signup-api/internal/repositories"
	"camp-signup-api/internal/repositories/sqlite"
)

func setupServices(t *testing.T) (*ServiceContainer, repositories.RepositoryManager) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "services_test_*")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	cm, err := database.InitializeDatabase(context.Background(), filepath.Join(tempDir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		cm.Close()
		os.RemoveAll(tempDir)
	})

	repos := sqlite.NewSQLiteRepositoryManager(cm.GetDB(), logger)
	container, err := NewServiceContainer(repos, logger)
	require.NoError(t, err)
	require.NoError(t, container.Validate())

	return container, repos
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int        { return &i }
func idPtr(i int64) *int64     { return &i }

func TestNewServiceContainer_NilRepositories(t *testing.T) {
	_, err := NewServiceContainer(nil, nil)
	assert.Error(t, err)
}

func TestCamperService_Create(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *CreateCamperRequest
		wantErr bool
	}{
		{name: "valid", req: &CreateCamperRequest{Name: strPtr("Caitlin"), Age: intPtr(8)}},
		{name: "missing name", req: &CreateCamperRequest{Age: intPtr(10)}, wantErr: true},
		{name: "missing age", req: &CreateCamperRequest{Name: strPtr("Nick")}, wantErr: true},
		{name: "age out of range", req: &CreateCamperRequest{Name: strPtr("Tot"), Age: intPtr(0)}, wantErr: true},
		{name: "blank name", req: &CreateCamperRequest{Name: strPtr("  "), Age: intPtr(12)}, wantErr: true},
		{name: "nil request", req: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camper, err := svc.CamperService.CreateCamper(ctx, tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, repositories.IsValidation(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, camper.ID)
			assert.NotNil(t, camper.Signups)
			assert.Empty(t, camper.Signups)
		})
	}

	campers, err := svc.CamperService.ListCampers(ctx)
	require.NoError(t, err)
	assert.Len(t, campers, 1)
}

func TestCamperService_GetMissing(t *testing.T) {
	svc, _ := setupServices(t)

	_, err := svc.CamperService.GetCamper(context.Background(), 7)
	assert.True(t, repositories.IsNotFound(err))

	_, err = svc.CamperService.GetCamper(context.Background(), -1)
	assert.True(t, repositories.IsNotFound(err))
}

func TestCamperService_UpdatePersists(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	camper, err := svc.CamperService.CreateCamper(ctx, &CreateCamperRequest{Name: strPtr("Nick"), Age: intPtr(12)})
	require.NoError(t, err)

	updated, err := svc.CamperService.UpdateCamper(ctx, camper.ID, &UpdateCamperRequest{Age: intPtr(13)})
	require.NoError(t, err)
	assert.Equal(t, "Nick", updated.Name, "omitted fields keep their value")
	assert.Equal(t, 13, updated.Age)

	reloaded, err := svc.CamperService.GetCamper(ctx, camper.ID)
	require.NoError(t, err)
	assert.Equal(t, 13, reloaded.Age)
}

func TestCamperService_UpdateInvalidLeavesRowUnchanged(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	camper, err := svc.CamperService.CreateCamper(ctx, &CreateCamperRequest{Name: strPtr("Nick"), Age: intPtr(12)})
	require.NoError(t, err)

	_, err = svc.CamperService.UpdateCamper(ctx, camper.ID, &UpdateCamperRequest{Age: intPtr(30)})
	require.Error(t, err)
	assert.True(t, repositories.IsValidation(err))

	reloaded, err := svc.CamperService.GetCamper(ctx, camper.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, reloaded.Age)

	_, err = svc.CamperService.UpdateCamper(ctx, 999, &UpdateCamperRequest{Age: intPtr(10)})
	assert.True(t, repositories.IsNotFound(err))
}

func TestSignupService_Create(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	camper, err := svc.CamperService.CreateCamper(ctx, &CreateCamperRequest{Name: strPtr("Ashley"), Age: intPtr(11)})
	require.NoError(t, err)
	activity, err := svc.ActivityService.CreateActivity(ctx, &CreateActivityRequest{Name: "Archery", Difficulty: 2})
	require.NoError(t, err)

	signup, err := svc.SignupService.CreateSignup(ctx, &CreateSignupRequest{
		CamperID:   idPtr(camper.ID),
		ActivityID: idPtr(activity.ID),
		Time:       intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, signup.Time)
	require.NotNil(t, signup.Camper)
	require.NotNil(t, signup.Activity)
	assert.Equal(t, camper.ID, signup.Camper.ID)
	assert.Equal(t, "Archery", signup.Activity.Name)

	withSignups, err := svc.CamperService.GetCamper(ctx, camper.ID)
	require.NoError(t, err)
	assert.Len(t, withSignups.Signups, 1)
}

func TestSignupService_CreateInvalid(t *testing.T) {
	svc, repos := setupServices(t)
	ctx := context.Background()

	camper, err := svc.CamperService.CreateCamper(ctx, &CreateCamperRequest{Name: strPtr("Tom"), Age: intPtr(14)})
	require.NoError(t, err)
	activity, err := svc.ActivityService.CreateActivity(ctx, &CreateActivityRequest{Name: "Hiking", Difficulty: 3})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  *CreateSignupRequest
	}{
		{name: "hour too late", req: &CreateSignupRequest{CamperID: idPtr(camper.ID), ActivityID: idPtr(activity.ID), Time: intPtr(24)}},
		{name: "negative hour", req: &CreateSignupRequest{CamperID: idPtr(camper.ID), ActivityID: idPtr(activity.ID), Time: intPtr(-1)}},
		{name: "missing time", req: &CreateSignupRequest{CamperID: idPtr(camper.ID), ActivityID: idPtr(activity.ID)}},
		{name: "unknown camper", req: &CreateSignupRequest{CamperID: idPtr(404), ActivityID: idPtr(activity.ID), Time: intPtr(9)}},
		{name: "unknown activity", req: &CreateSignupRequest{CamperID: idPtr(camper.ID), ActivityID: idPtr(404), Time: intPtr(9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignupService.CreateSignup(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, repositories.IsValidation(err), "got %v", err)
		})
	}

	count, err := repos.Signups().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestActivityService_Delete(t *testing.T) {
	svc, repos := setupServices(t)
	ctx := context.Background()

	camper, err := svc.CamperService.CreateCamper(ctx, &CreateCamperRequest{Name: strPtr("Lizzie"), Age: intPtr(15)})
	require.NoError(t, err)
	activity, err := svc.ActivityService.CreateActivity(ctx, &CreateActivityRequest{Name: "Swimming", Difficulty: 1})
	require.NoError(t, err)
	_, err = svc.SignupService.CreateSignup(ctx, &CreateSignupRequest{
		CamperID:   idPtr(camper.ID),
		ActivityID: idPtr(activity.ID),
		Time:       intPtr(14),
	})
	require.NoError(t, err)

	require.NoError(t, svc.ActivityService.DeleteActivity(ctx, activity.ID))

	activities, err := svc.ActivityService.ListActivities(ctx)
	require.NoError(t, err)
	assert.Empty(t, activities)

	count, err := repos.Signups().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = svc.ActivityService.DeleteActivity(ctx, activity.ID)
	assert.True(t, repositories.IsNotFound(err))
}

func TestCamperSerializationAfterSignup(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	camper, err := svc.CamperService.CreateCamper(ctx, &CreateCamperRequest{Name: strPtr("Caitlin"), Age: intPtr(9)})
	require.NoError(t, err)
	activity, err := svc.ActivityService.CreateActivity(ctx, &CreateActivityRequest{Name: "Crafts", Difficulty: 1})
	require.NoError(t, err)
	_, err = svc.SignupService.CreateSignup(ctx, &CreateSignupRequest{
		CamperID:   idPtr(camper.ID),
		ActivityID: idPtr(activity.ID),
		Time:       intPtr(10),
	})
	require.NoError(t, err)

	loaded, err := svc.CamperService.GetCamper(ctx, camper.ID)
	require.NoError(t, err)

	out := loaded.ToMap()
	signups, ok := out["signups"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, signups, 1)
	assert.NotContains(t, signups[0], "camper")

	nested, ok := signups[0]["activity"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Crafts", nested["name"])
	assert.NotContains(t, nested, "signups")

}
