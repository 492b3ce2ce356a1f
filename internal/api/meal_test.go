package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/homebites/backend/internal/api"
	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/types"
)

type mockMealService struct {
	mock.Mock
}

func (m *mockMealService) Create(ctx context.Context, chefID uuid.UUID, req *types.CreateMealRequest) (*models.Meal, error) {
	args := m.Called(ctx, chefID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *mockMealService) List(ctx context.Context, filters *types.MealFilters) ([]*models.Meal, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Meal), args.Get(1).(int64), args.Error(2)
}

func (m *mockMealService) ListByChef(ctx context.Context, chefID uuid.UUID) ([]*models.Meal, error) {
	args := m.Called(ctx, chefID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Meal), args.Error(1)
}

func (m *mockMealService) GetByID(ctx context.Context, mealID uuid.UUID) (*models.Meal, error) {
	args := m.Called(ctx, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *mockMealService) Update(ctx context.Context, mealID, chefID uuid.UUID, req *types.UpdateMealRequest) (*models.Meal, error) {
	args := m.Called(ctx, mealID, chefID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *mockMealService) Delete(ctx context.Context, mealID, chefID uuid.UUID) error {
	args := m.Called(ctx, mealID, chefID)
	return args.Error(0)
}

func TestMealHandler_Create(t *testing.T) {
	chefID := uuid.New()

	validBody, _ := json.Marshal(types.CreateMealRequest{
		Name:            "Momos",
		Description:     "Steamed dumplings",
		Price:           8,
		Category:        models.CategoryVegetarian,
		Cuisine:         "tibetan",
		Images:          []string{"https://example.com/m.jpg"},
		PreparationTime: 25,
		Quantity:        10,
	})

	t.Run("customer role is rejected", func(t *testing.T) {
		svc := new(mockMealService)
		handler := api.NewMealHandler(svc, nil)

		w := authedRequest(handler.Create, uuid.New(), models.RoleCustomer, http.MethodPost, "/api/v1/meal", validBody, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		var resp map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Only home chefs can add meals", resp["error"])
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("chef creates a meal", func(t *testing.T) {
		svc := new(mockMealService)
		handler := api.NewMealHandler(svc, nil)

		meal := &models.Meal{ID: uuid.New(), ChefID: chefID, Name: "Momos"}
		svc.On("Create", mock.Anything, chefID, mock.Anything).Return(meal, nil)

		w := authedRequest(handler.Create, chefID, models.RoleChef, http.MethodPost, "/api/v1/meal", validBody, nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("images are required", func(t *testing.T) {
		svc := new(mockMealService)
		handler := api.NewMealHandler(svc, nil)

		body, _ := json.Marshal(map[string]interface{}{
			"name":             "No Pics",
			"description":      "missing images",
			"price":            5,
			"category":         models.CategoryVegan,
			"cuisine":          "fusion",
			"preparation_time": 15,
		})

		w := authedRequest(handler.Create, chefID, models.RoleChef, http.MethodPost, "/api/v1/meal", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create")
	})
}
