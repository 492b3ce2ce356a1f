package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/homebites/backend/internal/service"
	"github.com/homebites/backend/internal/types"
)

// UserHandler serves profile reads and the partial-update endpoints.
type UserHandler struct {
	userService   service.IUserService
	reviewService service.IReviewService
	imageService  service.IImageService
}

func NewUserHandler(userService service.IUserService, reviewService service.IReviewService, imageService service.IImageService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		reviewService: reviewService,
		imageService:  imageService,
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateLocation(c *gin.Context) {
	var req types.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateLocation(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update location"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) SetOnboardingStep(c *gin.Context) {
	var req types.OnboardingStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.SetOnboardingStep(c.Request.Context(), currentUserID(c), req.Step); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update onboarding step"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"onboarding_step": req.Step})
}

// UploadProfilePicture accepts a multipart image, stores it and saves the
// resulting URL on the account.
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	url, err := h.imageService.Upload(c.Request.Context(), file, "profiles")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	if err := h.userService.SetProfilePicture(c.Request.Context(), currentUserID(c), url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile picture"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile_picture_url": url})
}

func (h *UserHandler) ListChefs(c *gin.Context) {
	chefs, err := h.userService.ListChefs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list chefs"})
		return
	}

	profiles := make([]map[string]interface{}, 0, len(chefs))
	for _, chef := range chefs {
		profile := chef.PublicProfile()
		if avg, count, err := h.reviewService.ChefAverage(c.Request.Context(), chef.ID); err == nil {
			profile["average_rating"] = avg
			profile["review_count"] = count
		}
		profiles = append(profiles, profile)
	}
	c.JSON(http.StatusOK, gin.H{"chefs": profiles})
}

// GetChefProfile exposes the public subset of a chef account.
func (h *UserHandler) GetChefProfile(c *gin.Context) {
	chefID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chef id"})
		return
	}

	chef, err := h.userService.GetByID(c.Request.Context(), chefID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chef not found"})
		return
	}

	profile := chef.PublicProfile()
	if avg, count, err := h.reviewService.ChefAverage(c.Request.Context(), chefID); err == nil {
		profile["average_rating"] = avg
		profile["review_count"] = count
	}
	c.JSON(http.StatusOK, gin.H{"chef": profile})
}
