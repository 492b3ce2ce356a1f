package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/realtime"
	"github.com/homebites/backend/internal/service"
	"github.com/homebites/backend/internal/testhelpers"
	"github.com/homebites/backend/internal/types"
)

func TestOrderService_Place(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	notifications := service.NewNotificationService(db, realtime.NewHub())
	svc := service.NewOrderService(db, notifications)
	ctx := context.Background()

	chef := testhelpers.CreateChef(t, db, "placechef")
	customer := testhelpers.CreateCustomer(t, db, "placecust")
	meal1 := testhelpers.CreateMeal(t, db, chef.ID, "Idli", 4, 10)
	meal2 := testhelpers.CreateMeal(t, db, chef.ID, "Dosa", 6, 3)

	order, err := svc.Place(ctx, customer.ID, &types.PlaceOrderRequest{
		Meals: []types.OrderLine{
			{MealID: meal1.ID, Quantity: 2},
			{MealID: meal2.ID, Quantity: 3},
		},
		PreferredTime: types.TimeOfDay{Hour: 12, Minute: 30},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 4*2+6*3.0, order.TotalAmount)
	assert.Equal(t, chef.ID, order.ChefID)
	assert.Len(t, order.Items, 2)

	// Stock was decremented; meal2 sold out and flipped unavailable
	var m1, m2 models.Meal
	require.NoError(t, db.First(&m1, "id = ?", meal1.ID).Error)
	require.NoError(t, db.First(&m2, "id = ?", meal2.ID).Error)
	assert.Equal(t, 8, m1.Quantity)
	assert.Equal(t, 0, m2.Quantity)
	assert.False(t, m2.Availability)

	// Chef got a notification
	notes, err := notifications.ListForUser(ctx, chef.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestOrderService_PlaceFailureRollsBackStock(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewOrderService(db, nil)
	ctx := context.Background()

	chef := testhelpers.CreateChef(t, db, "rollbackchef")
	customer := testhelpers.CreateCustomer(t, db, "rollbackcust")
	good := testhelpers.CreateMeal(t, db, chef.ID, "Good Meal", 5, 10)
	scarce := testhelpers.CreateMeal(t, db, chef.ID, "Scarce Meal", 5, 1)

	// Second line exceeds stock, so the whole order must fail with no
	// partial decrement on the first line.
	_, err := svc.Place(ctx, customer.ID, &types.PlaceOrderRequest{
		Meals: []types.OrderLine{
			{MealID: good.ID, Quantity: 2},
			{MealID: scarce.ID, Quantity: 5},
		},
		PreferredTime: types.TimeOfDay{Hour: 12},
	})
	assert.ErrorIs(t, err, service.ErrMealUnavailable)

	var m models.Meal
	require.NoError(t, db.First(&m, "id = ?", good.ID).Error)
	assert.Equal(t, 10, m.Quantity, "failed order must not leak stock decrements")

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOrderService_PlaceValidation(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewOrderService(db, nil)
	ctx := context.Background()

	chef1 := testhelpers.CreateChef(t, db, "valchef1")
	chef2 := testhelpers.CreateChef(t, db, "valchef2")
	customer := testhelpers.CreateCustomer(t, db, "valcust")
	m1 := testhelpers.CreateMeal(t, db, chef1.ID, "A", 5, 5)
	m2 := testhelpers.CreateMeal(t, db, chef2.ID, "B", 5, 5)

	t.Run("empty order", func(t *testing.T) {
		_, err := svc.Place(ctx, customer.ID, &types.PlaceOrderRequest{})
		assert.ErrorIs(t, err, service.ErrEmptyOrder)
	})

	t.Run("meals from two chefs", func(t *testing.T) {
		_, err := svc.Place(ctx, customer.ID, &types.PlaceOrderRequest{
			Meals: []types.OrderLine{
				{MealID: m1.ID, Quantity: 1},
				{MealID: m2.ID, Quantity: 1},
			},
			PreferredTime: types.TimeOfDay{Hour: 12},
		})
		assert.ErrorIs(t, err, service.ErrMixedChefs)
	})

	t.Run("outside working hours", func(t *testing.T) {
		require.NoError(t, db.Model(chef1).Updates(map[string]interface{}{
			"working_start_hour": 9, "working_end_hour": 17,
		}).Error)

		_, err := svc.Place(ctx, customer.ID, &types.PlaceOrderRequest{
			Meals:         []types.OrderLine{{MealID: m1.ID, Quantity: 1}},
			PreferredTime: types.TimeOfDay{Hour: 20},
		})
		assert.ErrorIs(t, err, service.ErrOutsideWorkingHours)

		// Hours failure after the stock check must also roll back
		var m models.Meal
		require.NoError(t, db.First(&m, "id = ?", m1.ID).Error)
		assert.Equal(t, 5, m.Quantity)
	})

	t.Run("chef accounts cannot place orders", func(t *testing.T) {
		_, err := svc.Place(ctx, chef2.ID, &types.PlaceOrderRequest{
			Meals:         []types.OrderLine{{MealID: m2.ID, Quantity: 1}},
			PreferredTime: types.TimeOfDay{Hour: 12},
		})
		assert.ErrorIs(t, err, service.ErrNotCustomer)

		var count int64
		require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
		assert.Zero(t, count, "rejected placement must not create an order")
	})

	t.Run("meal owned by a non-chef account", func(t *testing.T) {
		orphan := testhelpers.CreateMeal(t, db, customer.ID, "Orphan", 5, 5)

		_, err := svc.Place(ctx, customer.ID, &types.PlaceOrderRequest{
			Meals:         []types.OrderLine{{MealID: orphan.ID, Quantity: 1}},
			PreferredTime: types.TimeOfDay{Hour: 12},
		})
		assert.ErrorIs(t, err, service.ErrChefUnavailable)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	notifications := service.NewNotificationService(db, realtime.NewHub())
	svc := service.NewOrderService(db, notifications)
	ctx := context.Background()

	chef := testhelpers.CreateChef(t, db, "statuschef")
	stranger := testhelpers.CreateChef(t, db, "strangerchef")
	customer := testhelpers.CreateCustomer(t, db, "statuscust")
	meal := testhelpers.CreateMeal(t, db, chef.ID, "Thali", 10, 5)

	order, err := svc.Place(ctx, customer.ID, &types.PlaceOrderRequest{
		Meals:         []types.OrderLine{{MealID: meal.ID, Quantity: 1}},
		PreferredTime: types.TimeOfDay{Hour: 12},
	})
	require.NoError(t, err)

	t.Run("chef moves order forward", func(t *testing.T) {
		updated, err := svc.UpdateStatus(ctx, order.ID, chef.ID, models.OrderStatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusAccepted, updated.Status)

		// Customer is notified of the change
		notes, err := notifications.ListForUser(ctx, customer.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, notes)
	})

	t.Run("unknown status name", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, order.ID, chef.ID, "shipped")
		assert.ErrorIs(t, err, service.ErrInvalidOrderStatus)
	})

	t.Run("cancelled is not chef-settable", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, order.ID, chef.ID, models.OrderStatusCancelled)
		assert.ErrorIs(t, err, service.ErrInvalidOrderStatus)
	})

	t.Run("another chef cannot touch the order", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, order.ID, stranger.ID, models.OrderStatusCompleted)
		assert.ErrorIs(t, err, service.ErrNotOrderChef)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewOrderService(db, nil)
	ctx := context.Background()

	chef := testhelpers.CreateChef(t, db, "cancelchef")
	customer := testhelpers.CreateCustomer(t, db, "cancelcust")
	other := testhelpers.CreateCustomer(t, db, "othercust")
	meal := testhelpers.CreateMeal(t, db, chef.ID, "Kebab", 9, 5)

	order, err := svc.Place(ctx, customer.ID, &types.PlaceOrderRequest{
		Meals:         []types.OrderLine{{MealID: meal.ID, Quantity: 3}},
		PreferredTime: types.TimeOfDay{Hour: 12},
	})
	require.NoError(t, err)

	t.Run("only the owner cancels", func(t *testing.T) {
		_, err := svc.Cancel(ctx, order.ID, other.ID)
		assert.ErrorIs(t, err, service.ErrNotOrderCustomer)
	})

	t.Run("cancel restores stock", func(t *testing.T) {
		cancelled, err := svc.Cancel(ctx, order.ID, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

		var m models.Meal
		require.NoError(t, db.First(&m, "id = ?", meal.ID).Error)
		assert.Equal(t, 5, m.Quantity)
		assert.True(t, m.Availability)
	})

	t.Run("cancel twice fails", func(t *testing.T) {
		_, err := svc.Cancel(ctx, order.ID, customer.ID)
		assert.ErrorIs(t, err, service.ErrOrderNotCancellable)
	})
}

func TestOrderService_ChefStats(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewOrderService(db, nil)
	ctx := context.Background()

	chef := testhelpers.CreateChef(t, db, "statschef")
	customer := testhelpers.CreateCustomer(t, db, "statscust")
	meal := testhelpers.CreateMeal(t, db, chef.ID, "Biryani", 10, 20)

	for i := 0; i < 3; i++ {
		order, err := svc.Place(ctx, customer.ID, &types.PlaceOrderRequest{
			Meals:         []types.OrderLine{{MealID: meal.ID, Quantity: 1}},
			PreferredTime: types.TimeOfDay{Hour: 12},
		})
		require.NoError(t, err)
		if i == 0 {
			_, err = svc.UpdateStatus(ctx, order.ID, chef.ID, models.OrderStatusCompleted)
			require.NoError(t, err)
		}
	}

	stats, err := svc.ChefStats(ctx, chef.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(2), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.CompletedOrders)
	assert.Equal(t, 10.0, stats.TotalRevenue, "only completed orders count as revenue")
	assert.Equal(t, int64(1), stats.MealCount)
	assert.Equal(t, "Biryani", stats.MostPopularMeal)
	assert.Equal(t, 30.0, stats.AvgPrepTime)

	// Trend covers completed orders only
	trends, err := svc.OrderTrends(ctx, chef.ID)
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, int64(1), trends[0].Orders)
	assert.Equal(t, 10.0, trends[0].Revenue)
}
