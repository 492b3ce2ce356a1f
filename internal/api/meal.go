package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/service"
	"github.com/homebites/backend/internal/types"
)

// MealHandler serves the public catalog plus chef-only listing management.
type MealHandler struct {
	mealService  service.IMealService
	imageService service.IImageService
}

func NewMealHandler(mealService service.IMealService, imageService service.IImageService) *MealHandler {
	return &MealHandler{
		mealService:  mealService,
		imageService: imageService,
	}
}

func (h *MealHandler) Create(c *gin.Context) {
	if c.GetString("role") != models.RoleChef {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only home chefs can add meals"})
		return
	}

	var req types.CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.mealService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create meal"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

// List is public. Filters and pagination come from the query string.
func (h *MealHandler) List(c *gin.Context) {
	filters := &types.MealFilters{
		Name:     c.Query("name"),
		Cuisine:  c.Query("cuisine"),
		Category: c.Query("category"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	}
	filters.MaxPrepTime = queryInt(c, "max_prep_time", 0)

	meals, total, err := h.mealService.List(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meals": meals,
		"total": total,
		"page":  filters.Page,
		"limit": filters.Limit,
	})
}

func (h *MealHandler) Get(c *gin.Context) {
	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.mealService.GetByID(c.Request.Context(), mealID)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// ListMine returns the authenticated chef's own meals, including
// unavailable ones.
func (h *MealHandler) ListMine(c *gin.Context) {
	meals, err := h.mealService.ListByChef(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) Update(c *gin.Context) {
	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	var req types.UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.mealService.Update(c.Request.Context(), mealID, currentUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMealNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		case errors.Is(err, service.ErrNotMealOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "meal does not belong to you"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update meal"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

func (h *MealHandler) Delete(c *gin.Context) {
	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := h.mealService.Delete(c.Request.Context(), mealID, currentUserID(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrMealNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		case errors.Is(err, service.ErrNotMealOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "meal does not belong to you"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meal"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

// UploadImage stores a meal photo and returns its URL; the frontend then
// includes it in a create or update payload.
func (h *MealHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	url, err := h.imageService.Upload(c.Request.Context(), file, "meals")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
