package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/homebites/backend/internal/service"
	"github.com/homebites/backend/internal/types"
)

// ReviewHandler serves review submission and the rating aggregates.
type ReviewHandler struct {
	reviewService service.IReviewService
}

func NewReviewHandler(reviewService service.IReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Add(c *gin.Context) {
	var req types.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviews, err := h.reviewService.Add(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, service.ErrNotOrderCustomer):
			c.JSON(http.StatusForbidden, gin.H{"error": "order does not belong to you"})
		case errors.Is(err, service.ErrOrderNotCompleted),
			errors.Is(err, service.ErrAlreadyReviewed),
			errors.Is(err, service.ErrMealNotInOrder),
			errors.Is(err, service.ErrDuplicateReviewMeal):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add review"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reviews": reviews})
}

func (h *ReviewHandler) ListByMeal(c *gin.Context) {
	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	reviews, err := h.reviewService.ListByMeal(c.Request.Context(), mealID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}

	avg, count, err := h.reviewService.MealAverage(c.Request.Context(), mealID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":        reviews,
		"average_rating": avg,
		"review_count":   count,
	})
}

func (h *ReviewHandler) ChefRating(c *gin.Context) {
	chefID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chef id"})
		return
	}

	avg, count, err := h.reviewService.ChefAverage(c.Request.Context(), chefID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute rating"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"average_rating": avg, "review_count": count})
}

// TopMeals is a public discovery endpoint of the best rated meals.
func (h *ReviewHandler) TopMeals(c *gin.Context) {
	meals, err := h.reviewService.TopMeals(c.Request.Context(), queryInt(c, "limit", 10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list top meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}
