package models

import "time"

// AuditLog is an append-only record of a state-changing system action.
type AuditLog struct {
	ID     uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID *uint64 `json:"userId,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"-"`

	Action     string `gorm:"size:100;not null" json:"action"`
	EntityType string `gorm:"size:50;not null" json:"entityType"`
	EntityID   uint64 `gorm:"not null" json:"entityId"`
	OldValues  JSON   `json:"oldValues,omitempty"`
	NewValues  JSON   `json:"newValues,omitempty"`
	IPAddress  string `gorm:"column:ip_address;size:45" json:"ipAddress,omitempty"`
	UserAgent  string `json:"userAgent,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_log"
}
