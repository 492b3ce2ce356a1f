package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/types"
)

var ErrCartItemNotFound = errors.New("item not in cart")

// CartService keeps one staging cart per customer. Lines snapshot name and
// price at write time; availableQty is refreshed from live stock on reads.
type CartService struct {
	db *gorm.DB
}

var _ ICartService = (*CartService)(nil)

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

func (s *CartService) Get(ctx context.Context, customerID uuid.UUID) ([]types.CartItemView, error) {
	cart, err := s.loadCart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return []types.CartItemView{}, nil
	}
	return s.viewItems(ctx, cart.Items)
}

// Save replaces the entire cart content. Lines referencing missing meals are
// dropped silently.
func (s *CartService) Save(ctx context.Context, customerID uuid.UUID, items []types.CartItemRequest) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.ensureCart(tx, customerID)
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		for _, item := range items {
			var meal models.Meal
			if err := tx.First(&meal, "id = ?", item.MealID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			line := models.CartItem{
				ID:           uuid.New(),
				CartID:       cart.ID,
				MealID:       meal.ID,
				Name:         meal.Name,
				Price:        meal.Price,
				Quantity:     item.Quantity,
				AvailableQty: meal.Quantity,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddItem merges the quantity into an existing line or creates one, clamped
// to the meal's live stock. A sold-out meal cannot be added at all.
func (s *CartService) AddItem(ctx context.Context, customerID, mealID uuid.UUID, quantity int) ([]types.CartItemView, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", mealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	if meal.Quantity <= 0 {
		return nil, ErrMealUnavailable
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.ensureCart(tx, customerID)
		if err != nil {
			return err
		}

		var line models.CartItem
		err = tx.Where("cart_id = ? AND meal_id = ?", cart.ID, mealID).First(&line).Error
		switch {
		case err == nil:
			line.Quantity = clamp(line.Quantity+quantity, 1, meal.Quantity)
			line.AvailableQty = meal.Quantity
			return tx.Save(&line).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = models.CartItem{
				ID:           uuid.New(),
				CartID:       cart.ID,
				MealID:       meal.ID,
				Name:         meal.Name,
				Price:        meal.Price,
				Quantity:     clamp(quantity, 1, meal.Quantity),
				AvailableQty: meal.Quantity,
			}
			return tx.Create(&line).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, customerID)
}

func (s *CartService) IncreaseItem(ctx context.Context, customerID, mealID uuid.UUID) ([]types.CartItemView, error) {
	return s.adjustItem(ctx, customerID, mealID, +1)
}

// DecreaseItem lowers the line quantity by one; decreasing a quantity-1 line
// removes it from the cart.
func (s *CartService) DecreaseItem(ctx context.Context, customerID, mealID uuid.UUID) ([]types.CartItemView, error) {
	return s.adjustItem(ctx, customerID, mealID, -1)
}

func (s *CartService) adjustItem(ctx context.Context, customerID, mealID uuid.UUID, delta int) ([]types.CartItemView, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.loadCartTx(tx, customerID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartItemNotFound
		}

		var line models.CartItem
		if err := tx.Where("cart_id = ? AND meal_id = ?", cart.ID, mealID).First(&line).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}

		if delta < 0 && line.Quantity <= 1 {
			return tx.Delete(&line).Error
		}

		var meal models.Meal
		if err := tx.First(&meal, "id = ?", mealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMealNotFound
			}
			return err
		}

		// Clamping to zero stock leaves nothing to keep in the line.
		if meal.Quantity <= 0 {
			return tx.Delete(&line).Error
		}

		line.Quantity = clamp(line.Quantity+delta, 1, meal.Quantity)
		line.AvailableQty = meal.Quantity
		return tx.Save(&line).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, customerID)
}

func (s *CartService) RemoveItem(ctx context.Context, customerID, mealID uuid.UUID) error {
	cart, err := s.loadCart(ctx, customerID)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartItemNotFound
	}

	result := s.db.WithContext(ctx).
		Where("cart_id = ? AND meal_id = ?", cart.ID, mealID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// Delete removes the cart row itself along with its items.
func (s *CartService) Delete(ctx context.Context, customerID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.loadCartTx(tx, customerID)
		if err != nil || cart == nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(cart).Error
	})
}

// Clear empties the cart but keeps the cart row.
func (s *CartService) Clear(ctx context.Context, customerID uuid.UUID) error {
	cart, err := s.loadCart(ctx, customerID)
	if err != nil || cart == nil {
		return err
	}
	return s.db.WithContext(ctx).Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
}

func (s *CartService) ensureCart(tx *gorm.DB, customerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("customer_id = ?", customerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{ID: uuid.New(), CustomerID: customerID}
		if err := tx.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartService) loadCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	return s.loadCartTx(s.db.WithContext(ctx), customerID)
}

func (s *CartService) loadCartTx(tx *gorm.DB, customerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Preload("Items").Where("customer_id = ?", customerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// viewItems refreshes availableQty from live stock. A deleted meal shows
// zero availability rather than dropping the line.
func (s *CartService) viewItems(ctx context.Context, items []models.CartItem) ([]types.CartItemView, error) {
	views := make([]types.CartItemView, 0, len(items))
	for _, item := range items {
		available := 0
		var meal models.Meal
		if err := s.db.WithContext(ctx).First(&meal, "id = ?", item.MealID).Error; err == nil {
			available = meal.Quantity
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		views = append(views, types.CartItemView{
			MealID:       item.MealID,
			Name:         item.Name,
			Price:        item.Price,
			Quantity:     item.Quantity,
			AvailableQty: available,
		})
	}
	return views, nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
