package models

import (
	"time"

	"github.com/signingconnect/signingconnect-api/internal/types"
)

// Job is a signing-service request owned by a company, optionally
// assigned to an agent. TotalAmount must equal FeeAmount + TravelFee;
// the service layer enforces this on every write.
type Job struct {
	ID              uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID       uint64  `gorm:"not null;index:idx_jobs_company_id" json:"companyId"`
	Company         *User   `gorm:"foreignKey:CompanyID" json:"-"`
	AssignedAgentID *uint64 `gorm:"index:idx_jobs_assigned_agent_id" json:"assignedAgentId,omitempty"`
	AssignedAgent   *User   `gorm:"foreignKey:AssignedAgentID" json:"-"`

	Title             string    `gorm:"size:255;not null" json:"title"`
	DocumentType      string    `gorm:"size:255" json:"documentType,omitempty"`
	Location          string    `gorm:"not null" json:"location"`
	AppointmentDate   time.Time `gorm:"type:date;not null;index:idx_jobs_appointment_date" json:"appointmentDate"`
	AppointmentTime   string    `gorm:"size:8;not null" json:"appointmentTime"`
	EstimatedDuration int64     `json:"estimatedDuration,omitempty"`

	FeeAmount   int64 `gorm:"not null" json:"feeAmount"`
	TravelFee   int64 `gorm:"default:0" json:"travelFee"`
	TotalAmount int64 `gorm:"not null" json:"totalAmount"`

	Status      types.JobStatus `gorm:"type:varchar(20);not null;default:'open';index:idx_jobs_status" json:"status"`
	Priority    string          `gorm:"type:varchar(10);default:'normal'" json:"priority"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	AssignedAt  *time.Time      `json:"assignedAt,omitempty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`

	SpecialInstructions    string `json:"specialInstructions,omitempty"`
	RequiresScanBack       bool   `gorm:"default:true" json:"requiresScanBack"`
	RequiresIDVerification bool   `gorm:"column:requires_id_verification;default:true" json:"requiresIdVerification"`
	MaxDistanceMiles       int64  `gorm:"default:25" json:"maxDistanceMiles"`

	PaymentStatus types.PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"paymentStatus"`
	PlatformFee   int64               `json:"platformFee,omitempty"`
	AgentPayout   int64               `json:"agentPayout,omitempty"`
	PaidAt        *time.Time          `json:"paidAt,omitempty"`
}

// TableName overrides the table name for Job
func (Job) TableName() string {
	return "jobs"
}

// JobApplication is an agent's bid on a job, unique per (job, agent).
type JobApplication struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID   uint64 `gorm:"not null;index:idx_job_applications_pair,unique" json:"jobId"`
	Job     *Job   `gorm:"foreignKey:JobID" json:"-"`
	AgentID uint64 `gorm:"not null;index:idx_job_applications_pair,unique" json:"agentId"`
	Agent   *User  `gorm:"foreignKey:AgentID" json:"-"`

	ProposedFee           int64  `json:"proposedFee,omitempty"`
	AvailabilityConfirmed bool   `gorm:"default:true" json:"availabilityConfirmed"`
	EstimatedTravelTime   int64  `json:"estimatedTravelTime,omitempty"`
	AdditionalNotes       string `json:"additionalNotes,omitempty"`

	Status      types.BidStatus `gorm:"type:varchar(20);not null;default:'applied'" json:"status"`
	AppliedAt   time.Time       `gorm:"autoCreateTime" json:"appliedAt"`
	RespondedAt *time.Time      `json:"respondedAt,omitempty"`
}

// TableName overrides the table name for JobApplication
func (JobApplication) TableName() string {
	return "job_applications"
}
