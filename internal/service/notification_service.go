package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
	Hub              *EventHub
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, hub *EventHub) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo, Hub: hub}
}

type CreateNotificationInput struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Title   string `json:"title" binding:"required,max=200"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (s *NotificationService) Create(input CreateNotificationInput) (*model.Notification, error) {
	notification := &model.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
		Type:    input.Type,
	}
	if notification.Type == "" {
		notification.Type = "info"
	}
	if err := s.NotificationRepo.Create(notification); err != nil {
		return nil, util.Internal(err)
	}
	s.Hub.BroadcastToUser(input.UserID, EventNewNotification, notification)
	return notification, nil
}

func (s *NotificationService) List(limit int) ([]model.Notification, error) {
	notifications, err := s.NotificationRepo.ListAll(limit)
	if err != nil {
		return nil, util.Internal(err)
	}
	return notifications, nil
}

func (s *NotificationService) ListByUser(userID uint, limit int) ([]model.Notification, error) {
	notifications, err := s.NotificationRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, util.Internal(err)
	}
	return notifications, nil
}

// MarkRead flips the read flag. Only the owner can mark their own
// notifications; a mismatch reads as not found.
func (s *NotificationService) MarkRead(id, userID uint) error {
	if err := s.NotificationRepo.MarkRead(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("notification not found")
		}
		return util.Internal(err)
	}
	return nil
}
