package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/types"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrNotCustomer         = errors.New("only customers can place orders")
	ErrMixedChefs          = errors.New("all meals in an order must belong to the same chef")
	ErrMealUnavailable     = errors.New("meal is not available")
	ErrChefUnavailable     = errors.New("chef is not available for orders")
	ErrOutsideWorkingHours = errors.New("preferred time is outside the chef's working hours")
	ErrNotOrderChef        = errors.New("order does not belong to this chef")
	ErrNotOrderCustomer    = errors.New("order does not belong to this customer")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrOrderNotCancellable = errors.New("only pending orders can be cancelled")
)

// ChefStats is the dashboard aggregate for a single chef. Live orders are
// the ones being worked on (accepted or preparing).
type ChefStats struct {
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	LiveOrders      int64   `json:"live_orders"`
	CompletedOrders int64   `json:"completed_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageRating   float64 `json:"average_rating"`
	ReviewCount     int64   `json:"review_count"`
	MealCount       int64   `json:"meal_count"`
	MostPopularMeal string  `json:"most_popular_meal"`
	AvgPrepTime     float64 `json:"avg_prep_time"`
}

// TrendPoint is one day of completed-order volume and revenue.
type TrendPoint struct {
	Date    string  `json:"date"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// OrderService owns the order lifecycle. Placement runs inside a single
// transaction so stock decrements and the order row commit or roll back
// together.
type OrderService struct {
	db            *gorm.DB
	notifications INotificationService
}

var _ IOrderService = (*OrderService)(nil)

func NewOrderService(db *gorm.DB, notifications INotificationService) *OrderService {
	return &OrderService{db: db, notifications: notifications}
}

// Place validates every line against live stock, the owning chef and the
// chef's working hours, decrements stock and writes the order atomically.
func (s *OrderService) Place(ctx context.Context, customerID uuid.UUID, req *types.PlaceOrderRequest) (*models.Order, error) {
	if len(req.Meals) == 0 {
		return nil, ErrEmptyOrder
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.User
		if err := tx.First(&customer, "id = ?", customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotCustomer
			}
			return err
		}
		if customer.Role != models.RoleCustomer {
			return ErrNotCustomer
		}

		var chef models.User
		var total float64
		items := make([]models.OrderItem, 0, len(req.Meals))

		for i, line := range req.Meals {
			var meal models.Meal
			if err := tx.First(&meal, "id = ?", line.MealID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrMealNotFound
				}
				return err
			}

			if i == 0 {
				if err := tx.First(&chef, "id = ?", meal.ChefID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrChefUnavailable
					}
					return fmt.Errorf("failed to load chef: %w", err)
				}
				if chef.Role != models.RoleChef {
					return ErrChefUnavailable
				}
			} else if meal.ChefID != chef.ID {
				return ErrMixedChefs
			}

			if !meal.Availability || meal.Quantity < line.Quantity {
				return ErrMealUnavailable
			}

			meal.Quantity -= line.Quantity
			if meal.Quantity <= 0 {
				meal.Quantity = 0
				meal.Availability = false
			}
			if err := tx.Save(&meal).Error; err != nil {
				return err
			}

			total += meal.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				ID:       uuid.New(),
				MealID:   meal.ID,
				Quantity: line.Quantity,
			})
		}

		if !chef.WorkingHours.Contains(req.PreferredTime.Hour, req.PreferredTime.Minute) {
			return ErrOutsideWorkingHours
		}

		order = &models.Order{
			ID:              uuid.New(),
			CustomerID:      customerID,
			ChefID:          chef.ID,
			Items:           items,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			PreferredHour:   req.PreferredTime.Hour,
			PreferredMinute: req.PreferredTime.Minute,
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	// Notify after commit; delivery failure must not undo the order.
	if s.notifications != nil {
		msg := fmt.Sprintf("New order received for %.2f", order.TotalAmount)
		if _, err := s.notifications.Create(ctx, order.ChefID, msg); err != nil {
			log.Printf("failed to notify chef %s: %v", order.ChefID, err)
		}
	}

	return s.GetByID(ctx, order.ID)
}

func (s *OrderService) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error) {
	var orders []*models.Order
	if err := s.db.WithContext(ctx).
		Preload("Items.Meal").
		Preload("Chef").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) ListForChef(ctx context.Context, chefID uuid.UUID, status string) ([]*models.Order, error) {
	query := s.db.WithContext(ctx).
		Preload("Items.Meal").
		Preload("Customer").
		Where("chef_id = ?", chefID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []*models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).
		Preload("Items.Meal").
		Preload("Customer").
		Preload("Chef").
		First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus lets the owning chef move an order to any chef-settable
// status. The customer gets a notification about the change.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, chefID uuid.UUID, status string) (*models.Order, error) {
	if !models.ChefUpdatableStatuses[status] {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ChefID != chefID {
		return nil, ErrNotOrderChef
	}

	if err := s.db.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return nil, err
	}
	order.Status = status

	if s.notifications != nil {
		msg := fmt.Sprintf("Your order is now %s", status)
		if _, err := s.notifications.Create(ctx, order.CustomerID, msg); err != nil {
			log.Printf("failed to notify customer %s: %v", order.CustomerID, err)
		}
	}

	return order, nil
}

// Cancel is customer-initiated and only valid while the order is pending.
// Stock reserved by the order is returned.
func (s *OrderService) Cancel(ctx context.Context, orderID, customerID uuid.UUID) (*models.Order, error) {
	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.Preload("Items").First(&o, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.CustomerID != customerID {
			return ErrNotOrderCustomer
		}
		if o.Status != models.OrderStatusPending {
			return ErrOrderNotCancellable
		}

		for _, item := range o.Items {
			var meal models.Meal
			if err := tx.First(&meal, "id = ?", item.MealID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			meal.Quantity += item.Quantity
			meal.Availability = true
			if err := tx.Save(&meal).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&o).Update("status", models.OrderStatusCancelled).Error; err != nil {
			return err
		}
		o.Status = models.OrderStatusCancelled
		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		if _, err := s.notifications.Create(ctx, order.ChefID, "An order was cancelled by the customer"); err != nil {
			log.Printf("failed to notify chef %s: %v", order.ChefID, err)
		}
	}

	return order, nil
}

func (s *OrderService) ChefStats(ctx context.Context, chefID uuid.UUID) (*ChefStats, error) {
	stats := &ChefStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Order{}).Where("chef_id = ?", chefID).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("chef_id = ? AND status = ?", chefID, models.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("chef_id = ? AND status IN ?", chefID,
			[]string{models.OrderStatusAccepted, models.OrderStatusPreparing}).
		Count(&stats.LiveOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("chef_id = ? AND status = ?", chefID, models.OrderStatusCompleted).
		Count(&stats.CompletedOrders).Error; err != nil {
		return nil, err
	}

	var revenue struct{ Total float64 }
	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("chef_id = ? AND status = ?", chefID, models.OrderStatusCompleted).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue.Total

	var rating struct {
		Avg   float64
		Count int64
	}
	if err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("chef_id = ?", chefID).
		Scan(&rating).Error; err != nil {
		return nil, err
	}
	stats.AverageRating = roundRating(rating.Avg)
	stats.ReviewCount = rating.Count

	var mealAgg struct {
		Count int64
		Avg   float64
	}
	if err := db.Model(&models.Meal{}).
		Select("COUNT(*) AS count, COALESCE(AVG(preparation_time), 0) AS avg").
		Where("chef_id = ?", chefID).
		Scan(&mealAgg).Error; err != nil {
		return nil, err
	}
	stats.MealCount = mealAgg.Count
	stats.AvgPrepTime = mealAgg.Avg

	var popular struct {
		MealID uuid.UUID
		Total  int64
	}
	err := db.Model(&models.OrderItem{}).
		Select("order_items.meal_id AS meal_id, SUM(order_items.quantity) AS total").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.chef_id = ?", chefID).
		Group("order_items.meal_id").
		Order("total DESC").
		Limit(1).
		Scan(&popular).Error
	if err != nil {
		return nil, err
	}
	if popular.Total > 0 {
		var meal models.Meal
		if err := db.Unscoped().First(&meal, "id = ?", popular.MealID).Error; err == nil {
			stats.MostPopularMeal = meal.Name
		}
	}

	return stats, nil
}

// OrderTrends groups the chef's completed orders of the last five days per
// calendar day, oldest first.
func (s *OrderService) OrderTrends(ctx context.Context, chefID uuid.UUID) ([]TrendPoint, error) {
	since := time.Now().AddDate(0, 0, -5)

	var points []TrendPoint
	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("DATE(created_at) AS date, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("chef_id = ? AND status = ? AND created_at >= ?", chefID, models.OrderStatusCompleted, since).
		Group("DATE(created_at)").
		Order("date").
		Scan(&points).Error; err != nil {
		return nil, err
	}
	if points == nil {
		points = []TrendPoint{}
	}
	return points, nil
}
