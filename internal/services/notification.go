package services

import (
	"time"

	"github.com/signingconnect/signingconnect-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateNotification appends a notification row for a user. Email/SMS
// delivery stays stubbed; the flags remain false.
func CreateNotification(db *gorm.DB, userID uint64, notifType, title, message string, jobID, applicationID *uint64) error {
	n := models.Notification{
		UserID:        userID,
		Type:          notifType,
		Title:         title,
		Message:       message,
		JobID:         jobID,
		ApplicationID: applicationID,
	}
	return db.Create(&n).Error
}

// SendApplicationConfirmation is the fire-and-forget confirmation side
// effect of an intake submission. There is no user account yet, so it
// only logs; a failure here never affects the stored application.
func SendApplicationConfirmation(email, applicationID string) {
	zap.L().Info("[EMAIL] application confirmation",
		zap.String("email", email),
		zap.String("applicationId", applicationID))
}

// ListNotifications returns the newest-first notifications for a user.
func ListNotifications(db *gorm.DB, userID uint64, limit int) ([]models.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	var notifications []models.Notification
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkNotificationRead marks one of the user's notifications read.
func MarkNotificationRead(db *gorm.DB, userID, notificationID uint64) error {
	now := time.Now()
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{"read": true, "read_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
