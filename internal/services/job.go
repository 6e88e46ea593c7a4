package services

import (
	"fmt"
	"time"

	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"gorm.io/gorm"
)

// CreateJobInput is the company-facing job posting payload.
type CreateJobInput struct {
	Title                  string           `json:"title"`
	DocumentType           string           `json:"documentType"`
	Location               string           `json:"location"`
	AppointmentDate        string           `json:"appointmentDate"`
	AppointmentTime        string           `json:"appointmentTime"`
	EstimatedDuration      types.FlexInt    `json:"estimatedDuration"`
	FeeAmount              types.FlexAmount `json:"feeAmount"`
	TravelFee              types.FlexAmount `json:"travelFee"`
	TotalAmount            types.FlexAmount `json:"totalAmount"`
	Priority               string           `json:"priority"`
	SpecialInstructions    string           `json:"specialInstructions"`
	RequiresScanBack       *bool            `json:"requiresScanBack"`
	RequiresIDVerification *bool            `json:"requiresIdVerification"`
	MaxDistanceMiles       types.FlexInt    `json:"maxDistanceMiles"`
}

// BidInput is an agent's bid on an open job.
type BidInput struct {
	ProposedFee         types.FlexAmount `json:"proposedFee"`
	EstimatedTravelTime types.FlexInt    `json:"estimatedTravelTime"`
	AdditionalNotes     string           `json:"additionalNotes"`
}

// CreateJob validates and persists a job posting for a company.
// TotalAmount must equal FeeAmount + TravelFee; when omitted it is
// computed from the parts.
func CreateJob(db *gorm.DB, companyID uint64, in CreateJobInput) (*models.Job, error) {
	if in.Title == "" || in.Location == "" || in.AppointmentDate == "" || in.AppointmentTime == "" {
		return nil, fmt.Errorf("%w: title, location, appointment date and time are required", ErrValidation)
	}
	if in.FeeAmount.Cents() <= 0 {
		return nil, fmt.Errorf("%w: fee amount must be positive", ErrValidation)
	}
	if in.TravelFee.Cents() < 0 {
		return nil, fmt.Errorf("%w: travel fee cannot be negative", ErrValidation)
	}

	appointmentDate, err := time.Parse("2006-01-02", in.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment date must be YYYY-MM-DD", ErrValidation)
	}

	priority := in.Priority
	if priority == "" {
		priority = "normal"
	}
	switch priority {
	case "normal", "urgent", "emergency":
	default:
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, priority)
	}

	total := in.FeeAmount.Cents() + in.TravelFee.Cents()
	if in.TotalAmount != 0 && in.TotalAmount.Cents() != total {
		return nil, fmt.Errorf("%w: total amount must equal fee amount plus travel fee", ErrValidation)
	}

	job := models.Job{
		CompanyID:              companyID,
		Title:                  in.Title,
		DocumentType:           in.DocumentType,
		Location:               in.Location,
		AppointmentDate:        appointmentDate,
		AppointmentTime:        in.AppointmentTime,
		EstimatedDuration:      in.EstimatedDuration.Int64(),
		FeeAmount:              in.FeeAmount.Cents(),
		TravelFee:              in.TravelFee.Cents(),
		TotalAmount:            total,
		Status:                 types.JobOpen,
		Priority:               priority,
		SpecialInstructions:    in.SpecialInstructions,
		RequiresScanBack:       boolOr(in.RequiresScanBack, true),
		RequiresIDVerification: boolOr(in.RequiresIDVerification, true),
		MaxDistanceMiles:       in.MaxDistanceMiles.OrDefault(25),
		PaymentStatus:          types.PaymentPending,
	}

	if err := db.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ListCompanyJobs returns a company's own postings, newest first,
// optionally filtered by status.
func ListCompanyJobs(db *gorm.DB, companyID uint64, status string, page, limit int) ([]models.Job, *Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if status != "" && !types.JobStatus(status).Valid() {
		return nil, nil, fmt.Errorf("%w: unknown status filter %q", ErrValidation, status)
	}

	query := db.Model(&models.Job{}).Where("company_id = ?", companyID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&jobs).Error
	if err != nil {
		return nil, nil, err
	}

	return jobs, &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// ListOpenJobs returns open postings for the agent job board, soonest
// appointment first.
func ListOpenJobs(db *gorm.DB, limit int) ([]models.Job, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	var jobs []models.Job
	err := db.Where("status = ?", types.JobOpen).
		Order("appointment_date ASC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

// GetJob fetches one job by id.
func GetJob(db *gorm.DB, id uint64) (*models.Job, error) {
	var job models.Job
	err := db.First(&job, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// UpdateJobStatus advances a job's lifecycle and optionally assigns an
// agent. Only the owning company may update; assignment and completion
// stamp their timestamps and notify the agent.
func UpdateJobStatus(db *gorm.DB, jobID, companyID uint64, status types.JobStatus, assignedAgentID *uint64) (*models.Job, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var job models.Job
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, jobID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if job.CompanyID != companyID {
			return ErrForbidden
		}

		oldStatus := job.Status
		now := time.Now()
		updates := map[string]interface{}{"status": status}

		if assignedAgentID != nil {
			var agent models.User
			if err := tx.Where("id = ? AND user_type = ?", *assignedAgentID, types.UserAgent).First(&agent).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("%w: agent not found", ErrValidation)
				}
				return err
			}
			updates["assigned_agent_id"] = *assignedAgentID
			updates["assigned_at"] = now
			job.AssignedAgentID = assignedAgentID
			job.AssignedAt = &now
		}
		if status == types.JobCompleted {
			updates["completed_at"] = now
			job.CompletedAt = &now
		}

		if err := tx.Model(&job).Updates(updates).Error; err != nil {
			return err
		}
		job.Status = status

		if err := RecordAudit(tx, &companyID, "job.status_update", "job", job.ID,
			map[string]interface{}{"status": oldStatus},
			map[string]interface{}{"status": status}); err != nil {
			return err
		}

		if assignedAgentID != nil {
			jobRef := job.ID
			if err := CreateNotification(tx, *assignedAgentID, "job_assigned", "New signing assignment",
				fmt.Sprintf("You have been assigned to %q on %s.", job.Title, job.AppointmentDate.Format("2006-01-02")),
				&jobRef, nil); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ApplyToJob records an agent's bid on an open job. The (job, agent)
// pair is unique; a second bid comes back as ErrConflict.
func ApplyToJob(db *gorm.DB, jobID, agentID uint64, in BidInput) (*models.JobApplication, error) {
	var bid models.JobApplication
	err := db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, jobID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if job.Status != types.JobOpen {
			return fmt.Errorf("%w: job is no longer open", ErrConflict)
		}

		bid = models.JobApplication{
			JobID:                 jobID,
			AgentID:               agentID,
			ProposedFee:           in.ProposedFee.Cents(),
			AvailabilityConfirmed: true,
			EstimatedTravelTime:   in.EstimatedTravelTime.Int64(),
			AdditionalNotes:       in.AdditionalNotes,
			Status:                types.BidApplied,
		}
		if err := tx.Create(&bid).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: you have already applied to this job", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// ListJobBids returns the bids on a job for its owning company.
func ListJobBids(db *gorm.DB, jobID, companyID uint64) ([]models.JobApplication, error) {
	var job models.Job
	if err := db.First(&job, jobID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if job.CompanyID != companyID {
		return nil, ErrForbidden
	}

	var bids []models.JobApplication
	err := db.Where("job_id = ?", jobID).
		Order("applied_at ASC").
		Find(&bids).Error
	return bids, err
}
