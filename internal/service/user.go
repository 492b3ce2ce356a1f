package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/types"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles account profile operations
type UserService struct {
	db *gorm.DB
}

var _ IUserService = (*UserService)(nil)

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies only the enumerated optional fields from the request.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Certifications != nil {
		user.Certifications = *req.Certifications
	}
	if req.WorkingHours != nil {
		user.WorkingHours = models.WorkingHours{
			StartHour:   req.WorkingHours.StartHour,
			StartMinute: req.WorkingHours.StartMinute,
			EndHour:     req.WorkingHours.EndHour,
			EndMinute:   req.WorkingHours.EndMinute,
		}
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateLocation(ctx context.Context, userID uuid.UUID, req *types.UpdateLocationRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Address = models.Address{
		Line:       req.Line,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetOnboardingStep(ctx context.Context, userID uuid.UUID, step int) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("onboarding_step", step)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) SetProfilePicture(ctx context.Context, userID uuid.UUID, url string) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("profile_picture_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) ListChefs(ctx context.Context) ([]*models.User, error) {
	var chefs []*models.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleChef).
		Order("name").
		Find(&chefs).Error; err != nil {
		return nil, err
	}
	return chefs, nil
}
