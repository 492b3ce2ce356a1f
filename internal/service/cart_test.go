package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homebites/backend/internal/service"
	"github.com/homebites/backend/internal/testhelpers"
	"github.com/homebites/backend/internal/types"
)

func TestCartService_AddItem(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCartService(db)
	chef := testhelpers.CreateChef(t, db, "chef1")
	customer := testhelpers.CreateCustomer(t, db, "cust1")
	meal := testhelpers.CreateMeal(t, db, chef.ID, "Ramen", 12, 5)
	ctx := context.Background()

	items, err := svc.AddItem(ctx, customer.ID, meal.ID, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 5, items[0].AvailableQty)

	t.Run("adding again merges quantities", func(t *testing.T) {
		items, err := svc.AddItem(ctx, customer.ID, meal.ID, 1)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("quantity is clamped to stock", func(t *testing.T) {
		items, err := svc.AddItem(ctx, customer.ID, meal.ID, 100)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("unknown meal", func(t *testing.T) {
		_, err := svc.AddItem(ctx, customer.ID, chef.ID, 1)
		assert.ErrorIs(t, err, service.ErrMealNotFound)
	})
}

func TestCartService_IncreaseDecrease(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCartService(db)
	chef := testhelpers.CreateChef(t, db, "chef2")
	customer := testhelpers.CreateCustomer(t, db, "cust2")
	meal := testhelpers.CreateMeal(t, db, chef.ID, "Pho", 10, 2)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, customer.ID, meal.ID, 1)
	require.NoError(t, err)

	t.Run("increase stops at stock", func(t *testing.T) {
		items, err := svc.IncreaseItem(ctx, customer.ID, meal.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, items[0].Quantity)

		items, err = svc.IncreaseItem(ctx, customer.ID, meal.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, items[0].Quantity, "cannot exceed available stock")
	})

	t.Run("decrease at quantity one removes the line", func(t *testing.T) {
		_, err := svc.DecreaseItem(ctx, customer.ID, meal.ID)
		require.NoError(t, err)
		items, err := svc.DecreaseItem(ctx, customer.ID, meal.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("adjusting an absent line fails", func(t *testing.T) {
		_, err := svc.IncreaseItem(ctx, customer.ID, meal.ID)
		assert.ErrorIs(t, err, service.ErrCartItemNotFound)
	})
}

func TestCartService_ZeroStock(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCartService(db)
	chef := testhelpers.CreateChef(t, db, "chef6")
	customer := testhelpers.CreateCustomer(t, db, "cust6")
	soldOut := testhelpers.CreateMeal(t, db, chef.ID, "Gone", 5, 0)
	meal := testhelpers.CreateMeal(t, db, chef.ID, "Bao", 4, 3)
	ctx := context.Background()

	t.Run("sold-out meal cannot be added", func(t *testing.T) {
		_, err := svc.AddItem(ctx, customer.ID, soldOut.ID, 1)
		assert.ErrorIs(t, err, service.ErrMealUnavailable)

		items, err := svc.Get(ctx, customer.ID)
		require.NoError(t, err)
		assert.Empty(t, items, "no line for a meal with zero stock")
	})

	t.Run("increase drops the line once stock hits zero", func(t *testing.T) {
		_, err := svc.AddItem(ctx, customer.ID, meal.ID, 2)
		require.NoError(t, err)

		require.NoError(t, db.Model(meal).Update("quantity", 0).Error)

		items, err := svc.IncreaseItem(ctx, customer.ID, meal.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestCartService_GetRefreshesAvailability(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCartService(db)
	chef := testhelpers.CreateChef(t, db, "chef3")
	customer := testhelpers.CreateCustomer(t, db, "cust3")
	meal := testhelpers.CreateMeal(t, db, chef.ID, "Curry", 8, 10)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, customer.ID, meal.ID, 2)
	require.NoError(t, err)

	// Stock drops after the line was written
	require.NoError(t, db.Model(meal).Update("quantity", 1).Error)

	items, err := svc.Get(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].AvailableQty, "availableQty reflects live stock")
	assert.Equal(t, 2, items[0].Quantity, "staged quantity is untouched on read")
}

func TestCartService_Save(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCartService(db)
	chef := testhelpers.CreateChef(t, db, "chef4")
	customer := testhelpers.CreateCustomer(t, db, "cust4")
	meal1 := testhelpers.CreateMeal(t, db, chef.ID, "Soup", 5, 5)
	meal2 := testhelpers.CreateMeal(t, db, chef.ID, "Salad", 6, 5)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, customer.ID, meal1.ID, 1)
	require.NoError(t, err)

	// Full replace: meal1 gone, meal2 staged
	err = svc.Save(ctx, customer.ID, []types.CartItemRequest{{MealID: meal2.ID, Quantity: 3}})
	require.NoError(t, err)

	items, err := svc.Get(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, meal2.ID, items[0].MealID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartService_ClearAndDelete(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCartService(db)
	chef := testhelpers.CreateChef(t, db, "chef5")
	customer := testhelpers.CreateCustomer(t, db, "cust5")
	meal := testhelpers.CreateMeal(t, db, chef.ID, "Pasta", 7, 5)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, customer.ID, meal.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, customer.ID))
	items, err := svc.Get(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, svc.Delete(ctx, customer.ID))

	// Deleting an absent cart is a no-op
	require.NoError(t, svc.Delete(ctx, customer.ID))
}
