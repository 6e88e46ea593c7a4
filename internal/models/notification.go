package models

import "time"

// Notification is an append-only record of a user-facing system event.
// Email/SMS delivery flags stay false until a delivery provider is wired.
type Notification struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"not null;index:idx_notifications_user_id" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`

	Type    string `gorm:"size:50;not null" json:"type"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Message string `gorm:"not null" json:"message"`

	Read      bool `gorm:"default:false;index:idx_notifications_read" json:"read"`
	EmailSent bool `gorm:"default:false" json:"emailSent"`
	SMSSent   bool `gorm:"column:sms_sent;default:false" json:"smsSent"`

	JobID         *uint64      `json:"jobId,omitempty"`
	Job           *Job         `gorm:"foreignKey:JobID" json:"-"`
	ApplicationID *uint64      `json:"applicationId,omitempty"`
	Application   *Application `gorm:"foreignKey:ApplicationID" json:"-"`

	CreatedAt time.Time  `gorm:"index:idx_notifications_created_at" json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

// TableName overrides the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
