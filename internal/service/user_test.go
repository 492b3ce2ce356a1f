package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/service"
	"github.com/homebites/backend/internal/testhelpers"
	"github.com/homebites/backend/internal/types"
)

func TestUserService_UpdateProfile(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewUserService(db)
	ctx := context.Background()

	chef := testhelpers.CreateChef(t, db, "profilechef")
	require.NoError(t, db.Model(chef).Updates(map[string]interface{}{
		"phone": "111", "bio": "old bio",
	}).Error)

	t.Run("only provided fields change", func(t *testing.T) {
		bio := "home cooking since 2010"
		user, err := svc.UpdateProfile(ctx, chef.ID, &types.UpdateProfileRequest{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "home cooking since 2010", user.Bio)
		assert.Equal(t, "111", user.Phone, "absent fields stay untouched")
		assert.Equal(t, "profilechef", user.Name)
	})

	t.Run("working hours replace as a unit", func(t *testing.T) {
		user, err := svc.UpdateProfile(ctx, chef.ID, &types.UpdateProfileRequest{
			WorkingHours: &types.WorkingHours{StartHour: 10, EndHour: 18, EndMinute: 30},
		})
		require.NoError(t, err)
		assert.Equal(t, 10, user.WorkingHours.StartHour)
		assert.Equal(t, 18, user.WorkingHours.EndHour)
		assert.Equal(t, 30, user.WorkingHours.EndMinute)
	})

	t.Run("certifications round trip", func(t *testing.T) {
		certs := []string{"food safety level 2"}
		user, err := svc.UpdateProfile(ctx, chef.ID, &types.UpdateProfileRequest{Certifications: &certs})
		require.NoError(t, err)
		assert.Equal(t, models.JSONBStringArray{"food safety level 2"}, user.Certifications)
	})
}

func TestUserService_UpdateLocation(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewUserService(db)

	customer := testhelpers.CreateCustomer(t, db, "loccust")

	user, err := svc.UpdateLocation(context.Background(), customer.ID, &types.UpdateLocationRequest{
		Line:      "12 Baker St",
		City:      "Pune",
		Latitude:  18.52,
		Longitude: 73.85,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pune", user.Address.City)
	assert.Equal(t, 18.52, user.Address.Latitude)
}

func TestUserService_ListChefs(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewUserService(db)

	testhelpers.CreateChef(t, db, "zoe")
	testhelpers.CreateChef(t, db, "adam")
	testhelpers.CreateCustomer(t, db, "notachef")

	chefs, err := svc.ListChefs(context.Background())
	require.NoError(t, err)
	require.Len(t, chefs, 2)
	assert.Equal(t, "adam", chefs[0].Name, "sorted by name")
	for _, chef := range chefs {
		assert.Equal(t, models.RoleChef, chef.Role)
	}
}

func TestUserService_OnboardingStep(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewUserService(db)
	ctx := context.Background()

	chef := testhelpers.CreateChef(t, db, "onboardchef")

	require.NoError(t, svc.SetOnboardingStep(ctx, chef.ID, 3))

	user, err := svc.GetByID(ctx, chef.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, user.OnboardingStep)
}
