package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/types"
)

var (
	ErrOrderNotCompleted   = errors.New("only completed orders can be reviewed")
	ErrAlreadyReviewed     = errors.New("order has already been reviewed")
	ErrMealNotInOrder      = errors.New("meal is not part of this order")
	ErrDuplicateReviewMeal = errors.New("meal is reviewed more than once in this batch")
)

// ReviewService writes reviews and keeps per-meal average ratings current.
type ReviewService struct {
	db *gorm.DB
}

var _ IReviewService = (*ReviewService)(nil)

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Add writes the whole batch or nothing. Every reviewed meal must be a line
// of the completed order, and the order can only be reviewed once. Meal
// averages and the order's reviewed flag are updated in the same
// transaction.
func (s *ReviewService) Add(ctx context.Context, customerID uuid.UUID, req *types.AddReviewRequest) ([]*models.Review, error) {
	var reviews []*models.Review

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.CustomerID != customerID {
			return ErrNotOrderCustomer
		}
		if order.Status != models.OrderStatusCompleted {
			return ErrOrderNotCompleted
		}
		if order.Reviewed {
			return ErrAlreadyReviewed
		}

		orderedMeals := make(map[uuid.UUID]bool, len(order.Items))
		for _, item := range order.Items {
			orderedMeals[item.MealID] = true
		}

		reviewed := make(map[uuid.UUID]bool, len(req.MealReviews))
		for _, mr := range req.MealReviews {
			if !orderedMeals[mr.MealID] {
				return ErrMealNotInOrder
			}
			if reviewed[mr.MealID] {
				return ErrDuplicateReviewMeal
			}
			reviewed[mr.MealID] = true

			review := &models.Review{
				ID:         uuid.New(),
				CustomerID: customerID,
				ChefID:     order.ChefID,
				MealID:     mr.MealID,
				OrderID:    order.ID,
				Rating:     mr.Rating,
				Comment:    mr.Comment,
			}
			if err := tx.Create(review).Error; err != nil {
				return err
			}
			reviews = append(reviews, review)

			if err := s.refreshMealAverage(tx, mr.MealID); err != nil {
				return err
			}
		}

		return tx.Model(&order).Update("reviewed", true).Error
	})
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) refreshMealAverage(tx *gorm.DB, mealID uuid.UUID) error {
	var agg struct{ Avg float64 }
	if err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg").
		Where("meal_id = ?", mealID).
		Scan(&agg).Error; err != nil {
		return err
	}
	return tx.Model(&models.Meal{}).
		Where("id = ?", mealID).
		Update("average_rating", roundRating(agg.Avg)).Error
}

func (s *ReviewService) ListByMeal(ctx context.Context, mealID uuid.UUID) ([]*models.Review, error) {
	var reviews []*models.Review
	if err := s.db.WithContext(ctx).
		Preload("Customer").
		Where("meal_id = ?", mealID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) MealAverage(ctx context.Context, mealID uuid.UUID) (float64, int64, error) {
	return s.average(ctx, "meal_id = ?", mealID)
}

func (s *ReviewService) ChefAverage(ctx context.Context, chefID uuid.UUID) (float64, int64, error) {
	return s.average(ctx, "chef_id = ?", chefID)
}

func (s *ReviewService) average(ctx context.Context, cond string, id uuid.UUID) (float64, int64, error) {
	var agg struct {
		Avg   float64
		Count int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where(cond, id).
		Scan(&agg).Error; err != nil {
		return 0, 0, err
	}
	return roundRating(agg.Avg), agg.Count, nil
}

// TopMeals returns the highest-rated available meals.
func (s *ReviewService) TopMeals(ctx context.Context, limit int) ([]*models.Meal, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	var meals []*models.Meal
	if err := s.db.WithContext(ctx).
		Preload("Chef").
		Where("availability = ?", true).
		Order("average_rating DESC").
		Limit(limit).
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// roundRating rounds to two decimal places for display and storage.
func roundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}
