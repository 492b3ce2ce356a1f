package types

import "github.com/google/uuid"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=chef customer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest enumerates every recognized optional field; anything
// else in the payload is dropped, not merged.
type UpdateProfileRequest struct {
	Name           *string       `json:"name"`
	Phone          *string       `json:"phone"`
	Bio            *string       `json:"bio"`
	Certifications *[]string     `json:"certifications"`
	WorkingHours   *WorkingHours `json:"working_hours"`
}

type WorkingHours struct {
	StartHour   int `json:"start_hour" binding:"min=0,max=23"`
	StartMinute int `json:"start_minute" binding:"min=0,max=59"`
	EndHour     int `json:"end_hour" binding:"min=0,max=23"`
	EndMinute   int `json:"end_minute" binding:"min=0,max=59"`
}

type UpdateLocationRequest struct {
	Line       string  `json:"line" binding:"required"`
	City       string  `json:"city" binding:"required"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type OnboardingStepRequest struct {
	Step int `json:"step" binding:"min=0"`
}

type CreateMealRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	Price           float64  `json:"price" binding:"min=0"`
	Category        string   `json:"category" binding:"required,oneof=vegetarian non-veg vegan"`
	Cuisine         string   `json:"cuisine" binding:"required"`
	Images          []string `json:"images" binding:"required,min=1"`
	PreparationTime int      `json:"preparation_time" binding:"required,min=1"`
	Quantity        int      `json:"quantity" binding:"min=0"`
}

// UpdateMealRequest is a partial update; only non-nil fields are applied.
type UpdateMealRequest struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	Price           *float64  `json:"price"`
	Category        *string   `json:"category"`
	Cuisine         *string   `json:"cuisine"`
	Images          *[]string `json:"images"`
	PreparationTime *int      `json:"preparation_time"`
	Quantity        *int      `json:"quantity"`
	Availability    *bool     `json:"availability"`
}

// MealFilters narrows and paginates the public meal listing.
type MealFilters struct {
	Name        string
	Cuisine     string
	Category    string
	MaxPrepTime int
	Page        int
	Limit       int
}

type CartItemRequest struct {
	MealID   uuid.UUID `json:"meal_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type SaveCartRequest struct {
	Items []CartItemRequest `json:"items"`
}

// CartItemView is a cart line with availableQty refreshed from live stock.
type CartItemView struct {
	MealID       uuid.UUID `json:"meal_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Quantity     int       `json:"quantity"`
	AvailableQty int       `json:"available_qty"`
}

type OrderLine struct {
	MealID   uuid.UUID `json:"meal_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type TimeOfDay struct {
	Hour   int `json:"hour" binding:"min=0,max=23"`
	Minute int `json:"minute" binding:"min=0,max=59"`
}

type PlaceOrderRequest struct {
	Meals         []OrderLine `json:"meals" binding:"required"`
	PreferredTime TimeOfDay   `json:"preferred_time"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MealReview struct {
	MealID  uuid.UUID `json:"meal_id" binding:"required"`
	Rating  int       `json:"rating" binding:"required,min=1,max=5"`
	Comment string    `json:"comment"`
}

type AddReviewRequest struct {
	OrderID     uuid.UUID    `json:"order_id" binding:"required"`
	MealReviews []MealReview `json:"meal_reviews" binding:"required,min=1"`
}

type CheckoutItem struct {
	MealID   uuid.UUID `json:"meal_id" binding:"required"`
	Name     string    `json:"name" binding:"required"`
	Price    float64   `json:"price" binding:"min=0"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type CreateCheckoutSessionRequest struct {
	OrderID string         `json:"order_id" binding:"required"`
	Email   string         `json:"email" binding:"required,email"`
	Items   []CheckoutItem `json:"cart_items" binding:"required,min=1"`
}

type ChatbotRequest struct {
	Message string `json:"message" binding:"required"`
}
