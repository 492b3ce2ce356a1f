package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/types"
)

var (
	ErrMealNotFound = errors.New("meal not found")
	ErrNotMealOwner = errors.New("meal does not belong to this chef")
)

// MealService manages the public meal catalog and chef-owned listings.
type MealService struct {
	db *gorm.DB
}

var _ IMealService = (*MealService)(nil)

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

func (s *MealService) Create(ctx context.Context, chefID uuid.UUID, req *types.CreateMealRequest) (*models.Meal, error) {
	meal := models.Meal{
		ID:              uuid.New(),
		ChefID:          chefID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		Cuisine:         req.Cuisine,
		Images:          req.Images,
		PreparationTime: req.PreparationTime,
		Quantity:        req.Quantity,
		Availability:    req.Quantity > 0,
	}

	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}
	return &meal, nil
}

// List returns available meals matching the filters plus the total count
// for pagination.
func (s *MealService) List(ctx context.Context, filters *types.MealFilters) ([]*models.Meal, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Meal{}).Where("availability = ?", true)

	if filters.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filters.Name)+"%")
	}
	if filters.Cuisine != "" {
		query = query.Where("LOWER(cuisine) LIKE ?", "%"+strings.ToLower(filters.Cuisine)+"%")
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.MaxPrepTime > 0 {
		query = query.Where("preparation_time <= ?", filters.MaxPrepTime)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var meals []*models.Meal
	if err := query.
		Preload("Chef").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&meals).Error; err != nil {
		return nil, 0, err
	}

	return meals, total, nil
}

func (s *MealService) ListByChef(ctx context.Context, chefID uuid.UUID) ([]*models.Meal, error) {
	var meals []*models.Meal
	if err := s.db.WithContext(ctx).
		Where("chef_id = ?", chefID).
		Order("created_at DESC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (s *MealService) GetByID(ctx context.Context, mealID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).Preload("Chef").First(&meal, "id = ?", mealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// Update applies only the non-nil fields. Restocking to a positive quantity
// flips availability back on unless the request sets it explicitly.
func (s *MealService) Update(ctx context.Context, mealID, chefID uuid.UUID, req *types.UpdateMealRequest) (*models.Meal, error) {
	meal, err := s.ownedMeal(ctx, mealID, chefID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		meal.Name = *req.Name
	}
	if req.Description != nil {
		meal.Description = *req.Description
	}
	if req.Price != nil {
		meal.Price = *req.Price
	}
	if req.Category != nil {
		meal.Category = *req.Category
	}
	if req.Cuisine != nil {
		meal.Cuisine = *req.Cuisine
	}
	if req.Images != nil {
		meal.Images = *req.Images
	}
	if req.PreparationTime != nil {
		meal.PreparationTime = *req.PreparationTime
	}
	if req.Quantity != nil {
		meal.Quantity = *req.Quantity
		meal.Availability = meal.Quantity > 0
	}
	if req.Availability != nil {
		meal.Availability = *req.Availability
	}

	if err := s.db.WithContext(ctx).Save(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *MealService) Delete(ctx context.Context, mealID, chefID uuid.UUID) error {
	meal, err := s.ownedMeal(ctx, mealID, chefID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(meal).Error
}

func (s *MealService) ownedMeal(ctx context.Context, mealID, chefID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", mealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	if meal.ChefID != chefID {
		return nil, ErrNotMealOwner
	}
	return &meal, nil
}
