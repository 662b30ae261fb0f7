package services

import (
	"mistica/internal/models"
	"mistica/internal/store"
)

type NotificationService struct {
	notifications store.NotificationRepository
}

func NewNotificationService(notifications store.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(userID int64, unreadOnly bool) []models.Notification {
	return s.notifications.Notifications(userID, unreadOnly)
}

func (s *NotificationService) Notify(userID int64, kind, title, message string) models.Notification {
	return s.notifications.CreateNotification(models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	})
}

func (s *NotificationService) MarkRead(id int64) error {
	return s.notifications.MarkNotificationRead(id)
}

func (s *NotificationService) MarkAllRead(userID int64) int {
	return s.notifications.MarkAllNotificationsRead(userID)
}
