package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/testhelpers"
)

// Exercises the full schema against real PostgreSQL, including the jsonb
// columns that sqlite only approximates. Skipped without Docker.
func TestMigrateAndRoundTripPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db := testhelpers.NewPostgresTestDB(t)

	chef := testhelpers.CreateChef(t, db, "pgchef")
	meal := testhelpers.CreateMeal(t, db, chef.ID, "Pg Meal", 10, 5)

	var loaded models.Meal
	require.NoError(t, db.Preload("Chef").First(&loaded, "id = ?", meal.ID).Error)
	assert.Equal(t, models.JSONBStringArray{"https://example.com/meal.jpg"}, loaded.Images)
	require.NotNil(t, loaded.Chef)
	assert.Equal(t, "pgchef", loaded.Chef.Name)

	t.Run("email uniqueness is enforced", func(t *testing.T) {
		dup := models.User{
			ID:           uuid.New(),
			Name:         "dup",
			Email:        chef.Email,
			PasswordHash: "x",
			Role:         models.RoleChef,
		}
		assert.Error(t, db.Create(&dup).Error)
	})

	t.Run("review uniqueness is enforced", func(t *testing.T) {
		customer := testhelpers.CreateCustomer(t, db, "pgcust")
		orderID := uuid.New()

		first := models.Review{
			ID: uuid.New(), CustomerID: customer.ID, ChefID: chef.ID,
			MealID: meal.ID, OrderID: orderID, Rating: 5,
		}
		require.NoError(t, db.Create(&first).Error)

		second := models.Review{
			ID: uuid.New(), CustomerID: customer.ID, ChefID: chef.ID,
			MealID: meal.ID, OrderID: orderID, Rating: 1,
		}
		assert.Error(t, db.Create(&second).Error, "one review per (order, customer, meal)")
	})
}
