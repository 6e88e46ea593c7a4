package models

import (
	"time"

	"github.com/signingconnect/signingconnect-api/internal/types"
)

// User is an authenticated principal: an approved agent, a title company,
// or an admin. Agents keep a back-reference to the application that
// provisioned them; the unique index on it guards against
// double-provisioning on repeated approvals.
type User struct {
	ID           uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string           `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string           `gorm:"size:255;not null" json:"-"`
	UserType     types.UserType   `gorm:"type:varchar(20);not null;index:idx_users_type" json:"userType"`
	Status       types.UserStatus `gorm:"type:varchar(20);not null;default:'active';index:idx_users_status" json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	LastLogin    *time.Time       `json:"lastLogin,omitempty"`

	Profile       JSON    `json:"profile"`
	ApplicationID *uint64 `gorm:"uniqueIndex" json:"applicationId,omitempty"`

	ResetToken       string     `gorm:"size:64;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	// Performance metrics, maintained as jobs complete
	TotalJobsCompleted int64   `gorm:"default:0" json:"totalJobsCompleted"`
	AverageRating      float64 `gorm:"type:decimal(3,2);default:0.0" json:"averageRating"`
	OnTimePercentage   int64   `gorm:"default:100" json:"onTimePercentage"`
	TotalEarnings      int64   `gorm:"default:0" json:"totalEarnings"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
