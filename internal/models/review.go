package models

import "time"

// Review is a rating left by one user about another, tied to a
// completed job.
type Review struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID      uint64 `gorm:"not null" json:"jobId"`
	Job        *Job   `gorm:"foreignKey:JobID" json:"-"`
	ReviewerID uint64 `gorm:"not null" json:"reviewerId"`
	Reviewer   *User  `gorm:"foreignKey:ReviewerID" json:"-"`
	RevieweeID uint64 `gorm:"not null" json:"revieweeId"`
	Reviewee   *User  `gorm:"foreignKey:RevieweeID" json:"-"`

	Rating         int64  `gorm:"check:rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText     string `json:"reviewText,omitempty"`
	WouldWorkAgain *bool  `json:"wouldWorkAgain,omitempty"`

	ProfessionalismRating int64 `gorm:"check:professionalism_rating >= 1 AND professionalism_rating <= 5" json:"professionalismRating"`
	PunctualityRating     int64 `gorm:"check:punctuality_rating >= 1 AND punctuality_rating <= 5" json:"punctualityRating"`
	QualityRating         int64 `gorm:"check:quality_rating >= 1 AND quality_rating <= 5" json:"qualityRating"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name for Review
func (Review) TableName() string {
	return "reviews"
}
