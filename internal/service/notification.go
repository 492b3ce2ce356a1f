package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/realtime"
)

var ErrNotificationNotFound = errors.New("notification not found")

// ReadRetention is how long a read notification survives before the sweeper
// deletes it.
const ReadRetention = 24 * time.Hour

// NotificationService persists notifications and pushes them over any open
// websocket connections. Persistence is the source of truth; the push is
// best effort.
type NotificationService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

var _ INotificationService = (*NotificationService)(nil)

func NewNotificationService(db *gorm.DB, hub *realtime.Hub) *NotificationService {
	return &NotificationService{db: db, hub: hub}
}

func (s *NotificationService) Create(ctx context.Context, userID uuid.UUID, message string) (*models.Notification, error) {
	notification := models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Push(userID, &notification)
	}

	return &notification, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	var notifications []*models.Notification
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{"read": true, "read_at": &now}
	if err := s.db.WithContext(ctx).Model(&notification).Updates(updates).Error; err != nil {
		return nil, err
	}

	notification.Read = true
	notification.ReadAt = &now
	return &notification, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": &now}).Error
}

// SweepOnce deletes notifications that were read more than ReadRetention
// ago. Returns the number of rows removed.
func (s *NotificationService) SweepOnce(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-ReadRetention)
	result := s.db.WithContext(ctx).
		Where("read = ? AND read_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// StartRetentionSweeper runs SweepOnce on the given interval until the
// context is cancelled.
func (s *NotificationService) StartRetentionSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := s.SweepOnce(ctx)
				if err != nil {
					log.Printf("notification sweep failed: %v", err)
					continue
				}
				if deleted > 0 {
					log.Printf("notification sweep removed %d read notifications", deleted)
				}
			}
		}
	}()
}
