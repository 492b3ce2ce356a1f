package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/homebites/backend/config"
	"github.com/homebites/backend/internal/api"
	"github.com/homebites/backend/internal/database"
	"github.com/homebites/backend/internal/middleware"
	"github.com/homebites/backend/internal/realtime"
	"github.com/homebites/backend/internal/router"
	"github.com/homebites/backend/internal/service"
)

const sweepInterval = time.Hour

// Server owns the HTTP listener and the background workers that live for
// the process lifetime.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	hub    *realtime.Hub

	notifications *service.NotificationService
	stopSweeper   context.CancelFunc
}

// New connects the databases, builds every service and handler and wires
// the route tree. It fails fast on any unreachable dependency except S3,
// which is optional in development.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	hub := realtime.NewHub()

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("S3 unavailable, image uploads disabled: %v", err)
		s3Config = nil
	}
	imageService := service.NewImageService(s3Config)

	authService := service.NewAuthService(db, cfg.JWTSecret)
	userService := service.NewUserService(db)
	mealService := service.NewMealService(db)
	cartService := service.NewCartService(db)
	notificationService := service.NewNotificationService(db, hub)
	orderService := service.NewOrderService(db, notificationService)
	reviewService := service.NewReviewService(db)
	paymentService := service.NewPaymentService(db, cfg.MidtransServerKey, cfg.MidtransProduction)
	chatbotService := service.NewChatbotService(cfg.ChatbotURL)

	engine := router.SetupRouter(router.Handlers{
		Auth:         api.NewAuthHandler(authService, userService),
		User:         api.NewUserHandler(userService, reviewService, imageService),
		Meal:         api.NewMealHandler(mealService, imageService),
		Cart:         api.NewCartHandler(cartService),
		Order:        api.NewOrderHandler(orderService),
		Review:       api.NewReviewHandler(reviewService),
		Notification: api.NewNotificationHandler(notificationService, hub),
		Payment:      api.NewPaymentHandler(paymentService),
		Chatbot:      api.NewChatbotHandler(chatbotService),
		Chef:         api.NewChefHandler(orderService),

		TokenValidator:    authService,
		OrderRateLimiter:  middleware.NewOrderPlacementRateLimiter(redisClient),
		ReviewRateLimiter: middleware.NewReviewRateLimiter(redisClient),
		AllowedOrigins:    cfg.AllowedOrigins,
	})

	return &Server{
		cfg:           cfg,
		engine:        engine,
		db:            db,
		redis:         redisClient,
		hub:           hub,
		notifications: notificationService,
	}, nil
}

// Start begins serving and launches the notification retention sweeper.
// It blocks until the listener stops.
func (s *Server) Start() error {
	sweepCtx, cancel := context.WithCancel(context.Background())
	s.stopSweeper = cancel
	s.notifications.StartRetentionSweeper(sweepCtx, sweepInterval)

	addr := fmt.Sprintf("%s:%s", s.cfg.ServerHost, s.cfg.ServerPort)
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	log.Printf("Listening on %s", addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops background workers.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopSweeper != nil {
		s.stopSweeper()
	}

	if s.http != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("error closing database: %v", err)
			}
		}
	}
	return nil
}
