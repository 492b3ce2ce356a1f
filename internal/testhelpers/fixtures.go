package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/homebites/backend/internal/models"
)

// CreateChef inserts a chef account with an all-day working window so
// order placement tests don't trip the hours check.
func CreateChef(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	chef := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        name + "@chef.test",
		PasswordHash: "x",
		Role:         models.RoleChef,
		WorkingHours: models.WorkingHours{
			StartHour: 0, StartMinute: 0,
			EndHour: 23, EndMinute: 59,
		},
	}
	require.NoError(t, db.Create(chef).Error)
	return chef
}

func CreateCustomer(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	customer := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        name + "@customer.test",
		PasswordHash: "x",
		Role:         models.RoleCustomer,
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func CreateMeal(t *testing.T, db *gorm.DB, chefID uuid.UUID, name string, price float64, quantity int) *models.Meal {
	t.Helper()

	meal := &models.Meal{
		ID:              uuid.New(),
		ChefID:          chefID,
		Name:            name,
		Description:     "test meal",
		Price:           price,
		Category:        models.CategoryVegetarian,
		Cuisine:         "indian",
		Images:          models.JSONBStringArray{"https://example.com/meal.jpg"},
		PreparationTime: 30,
		Quantity:        quantity,
		Availability:    quantity > 0,
	}
	require.NoError(t, db.Create(meal).Error)
	return meal
}
