package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-momo-api/internal/access"
	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 200
)

// NotificationPage is one page of a user's notifications
type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	HasMore       bool                  `json:"hasMore"`
}

// Broadcast describes an admin notification and exactly one way of picking recipients
type Broadcast struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	RelatedOrderID *uint  `json:"relatedOrderId"`
	UserID         *uint  `json:"userId"`
	UserIDs        []uint `json:"userIds"`
	SendToAll      bool   `json:"sendToAll"`
}

type NotificationService interface {
	List(ctx context.Context, userID uint, limit, skip int) (*NotificationPage, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, id uint) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, userID, id uint) error
	// Send creates one notification per resolved recipient and returns how many were created
	Send(ctx context.Context, actor access.Actor, b Broadcast) (int, error)
}

type notificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) NotificationService {
	return &notificationService{db: db}
}

func (s *notificationService) List(ctx context.Context, userID uint, limit, skip int) (*NotificationPage, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	if limit > MaxNotificationLimit {
		limit = MaxNotificationLimit
	}
	if skip < 0 {
		skip = 0
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	var notifications []models.Notification
	if err := s.db.WithContext(ctx).
		Preload("RelatedOrder").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(skip).
		Find(&notifications).Error; err != nil {
		return nil, err
	}

	return &NotificationPage{
		Notifications: notifications,
		Total:         total,
		HasMore:       total > int64(skip+len(notifications)),
	}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id uint) (*models.Notification, error) {
	notification, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(notification).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (s *notificationService) Delete(ctx context.Context, userID, id uint) error {
	notification, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(notification).Error
}

func (s *notificationService) Send(ctx context.Context, actor access.Actor, b Broadcast) (int, error) {
	if access.Check(&actor, access.Admin) != access.Allowed {
		return 0, fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	if strings.TrimSpace(b.Type) == "" || strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Message) == "" {
		return 0, fmt.Errorf("%w: type, title and message are required", ErrInvalidRequest)
	}
	if !models.ValidNotificationType(b.Type) {
		return 0, fmt.Errorf("%w: unknown notification type %q", ErrInvalidRequest, b.Type)
	}

	if b.RelatedOrderID != nil {
		var found int64
		if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", *b.RelatedOrderID).Count(&found).Error; err != nil {
			return 0, err
		}
		if found == 0 {
			return 0, fmt.Errorf("%w: related order %d does not exist", ErrInvalidRequest, *b.RelatedOrderID)
		}
	}

	recipients, err := s.resolveRecipients(ctx, b)
	if err != nil {
		return 0, err
	}
	if len(recipients) == 0 {
		return 0, nil
	}

	notifications := make([]models.Notification, 0, len(recipients))
	for _, uid := range recipients {
		notifications = append(notifications, models.Notification{
			UserID:         uid,
			Type:           b.Type,
			Title:          b.Title,
			Message:        b.Message,
			RelatedOrderID: b.RelatedOrderID,
		})
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&notifications, 100).Error; err != nil {
		return 0, err
	}
	return len(notifications), nil
}

func (s *notificationService) resolveRecipients(ctx context.Context, b Broadcast) ([]uint, error) {
	modes := 0
	if b.SendToAll {
		modes++
	}
	if len(b.UserIDs) > 0 {
		modes++
	}
	if b.UserID != nil {
		modes++
	}
	if modes != 1 {
		return nil, fmt.Errorf("%w: specify exactly one of userId, userIds or sendToAll", ErrInvalidRequest)
	}

	if b.SendToAll {
		var ids []uint
		if err := s.db.WithContext(ctx).Model(&models.User{}).Order("id").Pluck("id", &ids).Error; err != nil {
			return nil, err
		}
		return ids, nil
	}

	ids := b.UserIDs
	if b.UserID != nil {
		ids = []uint{*b.UserID}
	}
	ids = uniqueIDs(ids)

	var known int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id IN ?", ids).Count(&known).Error; err != nil {
		return nil, err
	}
	if known != int64(len(ids)) {
		return nil, fmt.Errorf("%w: unknown recipient", ErrInvalidRequest)
	}
	return ids, nil
}

func (s *notificationService) findOwned(ctx context.Context, userID, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		return nil, notFoundOr(err, "notification")
	}
	return &notification, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
