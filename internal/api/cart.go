package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/homebites/backend/internal/service"
	"github.com/homebites/backend/internal/types"
)

// CartHandler serves the per-customer staging cart.
type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) Get(c *gin.Context) {
	items, err := h.cartService.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *CartHandler) Save(c *gin.Context) {
	var req types.SaveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cartService.Save(c.Request.Context(), currentUserID(c), req.Items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	items, err := h.cartService.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req types.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.cartService.AddItem(c.Request.Context(), currentUserID(c), req.MealID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMealNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		case errors.Is(err, service.ErrMealUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add to cart"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *CartHandler) IncreaseItem(c *gin.Context) {
	h.adjust(c, h.cartService.IncreaseItem)
}

func (h *CartHandler) DecreaseItem(c *gin.Context) {
	h.adjust(c, h.cartService.DecreaseItem)
}

func (h *CartHandler) adjust(c *gin.Context, op func(ctx context.Context, customerID, mealID uuid.UUID) ([]types.CartItemView, error)) {
	mealID, err := uuid.Parse(c.Param("mealId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	items, err := op(c.Request.Context(), currentUserID(c), mealID)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	mealID, err := uuid.Parse(c.Param("mealId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), currentUserID(c), mealID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

func (h *CartHandler) Delete(c *gin.Context) {
	if err := h.cartService.Delete(c.Request.Context(), currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart deleted"})
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
