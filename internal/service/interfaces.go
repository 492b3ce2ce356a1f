package service

import (
	"context"
	"encoding/json"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IUserService defines the interface for account/profile operations
type IUserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
	UpdateLocation(ctx context.Context, userID uuid.UUID, req *types.UpdateLocationRequest) (*models.User, error)
	SetOnboardingStep(ctx context.Context, userID uuid.UUID, step int) error
	SetProfilePicture(ctx context.Context, userID uuid.UUID, url string) error
	ListChefs(ctx context.Context) ([]*models.User, error)
}

// IMealService defines the interface for the meal catalog
type IMealService interface {
	Create(ctx context.Context, chefID uuid.UUID, req *types.CreateMealRequest) (*models.Meal, error)
	List(ctx context.Context, filters *types.MealFilters) ([]*models.Meal, int64, error)
	ListByChef(ctx context.Context, chefID uuid.UUID) ([]*models.Meal, error)
	GetByID(ctx context.Context, mealID uuid.UUID) (*models.Meal, error)
	Update(ctx context.Context, mealID, chefID uuid.UUID, req *types.UpdateMealRequest) (*models.Meal, error)
	Delete(ctx context.Context, mealID, chefID uuid.UUID) error
}

// ICartService defines the interface for cart staging operations
type ICartService interface {
	Get(ctx context.Context, customerID uuid.UUID) ([]types.CartItemView, error)
	Save(ctx context.Context, customerID uuid.UUID, items []types.CartItemRequest) error
	AddItem(ctx context.Context, customerID, mealID uuid.UUID, quantity int) ([]types.CartItemView, error)
	IncreaseItem(ctx context.Context, customerID, mealID uuid.UUID) ([]types.CartItemView, error)
	DecreaseItem(ctx context.Context, customerID, mealID uuid.UUID) ([]types.CartItemView, error)
	RemoveItem(ctx context.Context, customerID, mealID uuid.UUID) error
	Delete(ctx context.Context, customerID uuid.UUID) error
	Clear(ctx context.Context, customerID uuid.UUID) error
}

// IOrderService defines the interface for the order lifecycle
type IOrderService interface {
	Place(ctx context.Context, customerID uuid.UUID, req *types.PlaceOrderRequest) (*models.Order, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error)
	ListForChef(ctx context.Context, chefID uuid.UUID, status string) ([]*models.Order, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID, chefID uuid.UUID, status string) (*models.Order, error)
	Cancel(ctx context.Context, orderID, customerID uuid.UUID) (*models.Order, error)
	ChefStats(ctx context.Context, chefID uuid.UUID) (*ChefStats, error)
	OrderTrends(ctx context.Context, chefID uuid.UUID) ([]TrendPoint, error)
}

// IReviewService defines the interface for review and rating aggregation
type IReviewService interface {
	Add(ctx context.Context, customerID uuid.UUID, req *types.AddReviewRequest) ([]*models.Review, error)
	ListByMeal(ctx context.Context, mealID uuid.UUID) ([]*models.Review, error)
	MealAverage(ctx context.Context, mealID uuid.UUID) (float64, int64, error)
	ChefAverage(ctx context.Context, chefID uuid.UUID) (float64, int64, error)
	TopMeals(ctx context.Context, limit int) ([]*models.Meal, error)
}

// INotificationService defines the interface for notification dispatch
type INotificationService interface {
	Create(ctx context.Context, userID uuid.UUID, message string) (*models.Notification, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// IPaymentService defines the interface for the payment session bridge
type IPaymentService interface {
	CreateCheckoutSession(ctx context.Context, req *types.CreateCheckoutSessionRequest) (string, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (string, bool, error)
}

// IImageService defines the interface for blob uploads
type IImageService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, keyPrefix string) (string, error)
}

// IChatbotService proxies queries to the external agent
type IChatbotService interface {
	Query(ctx context.Context, message string) (json.RawMessage, error)
}
