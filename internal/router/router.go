package router

import (
	"github.com/gin-gonic/gin"

	"github.com/homebites/backend/internal/api"
	"github.com/homebites/backend/internal/middleware"
)

// Handlers bundles everything SetupRouter wires into the route tree.
type Handlers struct {
	Auth         *api.AuthHandler
	User         *api.UserHandler
	Meal         *api.MealHandler
	Cart         *api.CartHandler
	Order        *api.OrderHandler
	Review       *api.ReviewHandler
	Notification *api.NotificationHandler
	Payment      *api.PaymentHandler
	Chatbot      *api.ChatbotHandler
	Chef         *api.ChefHandler

	TokenValidator    middleware.TokenValidator
	OrderRateLimiter  *middleware.RateLimiter
	ReviewRateLimiter *middleware.RateLimiter
	AllowedOrigins    []string
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(h.AllowedOrigins))

	router.GET("/health", api.HealthCheck)

	v1 := router.Group("/api/v1")

	// Public routes
	user := v1.Group("/user")
	{
		user.POST("/signup", h.Auth.Register)
		user.POST("/login", h.Auth.Login)
		user.POST("/logout", h.Auth.Logout)
	}

	v1.GET("/meal", h.Meal.List)
	v1.GET("/meal/top", h.Review.TopMeals)
	v1.GET("/meal/:id", h.Meal.Get)
	v1.GET("/meal/:id/reviews", h.Review.ListByMeal)
	v1.GET("/chefs", h.User.ListChefs)
	v1.GET("/chefs/:id", h.User.GetChefProfile)
	v1.GET("/chefs/:id/rating", h.Review.ChefRating)

	v1.POST("/chatbot/query", h.Chatbot.Query)

	// Authenticated routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(h.TokenValidator))
	{
		protected.GET("/user/check", h.Auth.Check)
		protected.GET("/user/profile", h.User.GetProfile)
		protected.PATCH("/user/profile", h.User.UpdateProfile)
		protected.PUT("/user/location", h.User.UpdateLocation)
		protected.PATCH("/user/onboarding", h.User.SetOnboardingStep)
		protected.POST("/user/profile-picture", h.User.UploadProfilePicture)

		// Chef-only catalog management
		chefMeals := protected.Group("/meal")
		chefMeals.Use(middleware.RequireRole("chef"))
		{
			chefMeals.POST("", h.Meal.Create)
			chefMeals.GET("/mine", h.Meal.ListMine)
			chefMeals.PATCH("/:id", h.Meal.Update)
			chefMeals.DELETE("/:id", h.Meal.Delete)
			chefMeals.POST("/image", h.Meal.UploadImage)
		}

		cart := protected.Group("/cart")
		{
			cart.GET("", h.Cart.Get)
			cart.POST("", h.Cart.Save)
			cart.POST("/items", h.Cart.AddItem)
			cart.PATCH("/items/:mealId/increase", h.Cart.IncreaseItem)
			cart.PATCH("/items/:mealId/decrease", h.Cart.DecreaseItem)
			cart.DELETE("/items/:mealId", h.Cart.RemoveItem)
			cart.DELETE("", h.Cart.Delete)
			cart.POST("/clear", h.Cart.Clear)
		}

		orders := protected.Group("/order")
		{
			place := orders.Group("")
			place.Use(middleware.RequireRole("customer"))
			if h.OrderRateLimiter != nil {
				place.Use(h.OrderRateLimiter.RateLimitMiddleware())
			}
			place.POST("", h.Order.Place)

			orders.GET("", h.Order.ListMine)
			orders.GET("/incoming", middleware.RequireRole("chef"), h.Order.ListIncoming)
			orders.GET("/:id", h.Order.Get)
			orders.PATCH("/:id/status", middleware.RequireRole("chef"), h.Order.UpdateStatus)
			orders.POST("/:id/cancel", h.Order.Cancel)
		}

		reviews := protected.Group("/review")
		{
			add := reviews.Group("")
			if h.ReviewRateLimiter != nil {
				add.Use(h.ReviewRateLimiter.RateLimitMiddleware())
			}
			add.POST("", h.Review.Add)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.PATCH("/:id/read", h.Notification.MarkRead)
			notifications.POST("/read-all", h.Notification.MarkAllRead)
		}
		protected.GET("/ws", h.Notification.Serve)

		payments := protected.Group("/payment")
		{
			payments.POST("/create-checkout-session", h.Payment.CreateCheckoutSession)
			payments.GET("/checkout-session/:id", h.Payment.GetCheckoutSession)
		}

		chef := protected.Group("/chef")
		chef.Use(middleware.RequireRole("chef"))
		{
			chef.GET("/stats", h.Chef.Stats)
			chef.GET("/order-trends", h.Chef.OrderTrends)
		}
	}

	return router
}
