package services

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ApplicationSummary is the admin listing row.
type ApplicationSummary struct {
	ID              uint64                  `json:"id"`
	ApplicationID   string                  `json:"applicationId"`
	FirstName       string                  `json:"firstName"`
	LastName        string                  `json:"lastName"`
	Email           string                  `json:"email"`
	Phone           string                  `json:"phone"`
	Status          types.ApplicationStatus `json:"status"`
	YearsExperience string                  `json:"yearsExperience"`
	MonthlyVolume   string                  `json:"monthlyVolume"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// Pagination describes a page of results.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// feeFields are the nine per-service fee columns, stored in cents and
// exposed to admins in major units.
var feeFields = []string{
	"refinanceWithInsurance",
	"refinanceWithoutInsurance",
	"homeEquityHELOC",
	"purchaseClosings",
	"reverseMortgage",
	"loanModification",
	"commercialClosing",
	"ronSignings",
	"travelFeePerMile",
}

// ListApplications returns a newest-first page of application summaries,
// optionally filtered by status.
func ListApplications(db *gorm.DB, status string, page, limit int) ([]ApplicationSummary, *Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	if status != "" && !types.ApplicationStatus(status).Valid() {
		return nil, nil, fmt.Errorf("%w: unknown status filter %q", ErrValidation, status)
	}

	query := db.Model(&models.Application{}).
		Clauses(hints.CommentBefore("select", "admin:list_applications"))
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var apps []models.Application
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&apps).Error
	if err != nil {
		return nil, nil, err
	}

	summaries := make([]ApplicationSummary, 0, len(apps))
	for _, a := range apps {
		summaries = append(summaries, ApplicationSummary{
			ID:              a.ID,
			ApplicationID:   a.ApplicationID,
			FirstName:       a.FirstName,
			LastName:        a.LastName,
			Email:           a.Email,
			Phone:           a.Phone,
			Status:          a.Status,
			YearsExperience: a.YearsExperience,
			MonthlyVolume:   a.MonthlyVolume,
			CreatedAt:       a.CreatedAt,
			UpdatedAt:       a.UpdatedAt,
		})
	}

	return summaries, &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// GetApplicationDetail returns the full record keyed by internal id,
// with stored fee cents converted back to major display units.
func GetApplicationDetail(db *gorm.DB, id uint64) (map[string]interface{}, error) {
	var app models.Application
	err := db.First(&app, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	data, err := json.Marshal(&app)
	if err != nil {
		return nil, err
	}
	var detail map[string]interface{}
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, err
	}

	for _, field := range feeFields {
		if cents, ok := detail[field].(float64); ok {
			detail[field] = cents / 100
		}
	}

	return detail, nil
}

// UpdateApplicationStatus transitions an application's review state,
// stamping reviewer identity and timestamp and recording an audit row.
// When the new status is approved, an agent account is provisioned in
// the same transaction; the guard on users.application_id makes a
// repeated approval a no-op rather than a duplicate account.
func UpdateApplicationStatus(db *gorm.DB, id uint64, status types.ApplicationStatus, rejectionReason, notes string, reviewer *models.User) (*models.Application, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var app models.Application
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&app, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		oldStatus := app.Status
		now := time.Now()

		updates := map[string]interface{}{
			"status":           status,
			"rejection_reason": rejectionReason,
			"notes":            notes,
			"reviewed_by":      reviewer.ID,
			"reviewed_at":      now,
		}
		if err := tx.Model(&app).Updates(updates).Error; err != nil {
			return err
		}
		app.Status = status
		app.RejectionReason = rejectionReason
		app.Notes = notes
		app.ReviewedBy = &reviewer.ID
		app.ReviewedAt = &now

		if err := RecordAudit(tx, &reviewer.ID, "application.status_update", "application", app.ID,
			map[string]interface{}{"status": oldStatus},
			map[string]interface{}{"status": status, "rejectionReason": rejectionReason}); err != nil {
			return err
		}

		if status == types.ApplicationApproved {
			if err := provisionAgentAccount(tx, &app); err != nil {
				return err
			}
		}

		// Applicants only have an account once approved; when one exists
		// it gets an in-app notification alongside the email stub below.
		var applicant models.User
		if err := tx.Where("application_id = ?", app.ID).First(&applicant).Error; err == nil {
			appRef := app.ID
			if err := CreateNotification(tx, applicant.ID, "application_status",
				"Application status updated",
				fmt.Sprintf("Your application %s is now %s.", app.ApplicationID, status),
				nil, &appRef); err != nil {
				return err
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Delivery stub until an email provider is wired; must not fail the
	// committed transition.
	zap.L().Info("[EMAIL] application status update",
		zap.String("email", app.Email),
		zap.String("applicationId", app.ApplicationID),
		zap.String("status", string(status)))

	return &app, nil
}

// provisionAgentAccount creates an agent user for an approved
// application with a random temporary password and a profile projected
// from the application record. Idempotent: an existing user referencing
// the application short-circuits.
func provisionAgentAccount(tx *gorm.DB, app *models.Application) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("application_id = ?", app.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		zap.L().Info("agent account already provisioned, skipping",
			zap.String("applicationId", app.ApplicationID))
		return nil
	}

	tempPassword := utils.GenerateTemporaryPassword()
	hash, err := utils.HashPassword(tempPassword)
	if err != nil {
		return err
	}

	profile, err := json.Marshal(map[string]interface{}{
		"firstName":     app.FirstName,
		"lastName":      app.LastName,
		"phone":         app.Phone,
		"businessName":  app.BusinessName,
		"notaryLicense": app.NotaryLicense,
		"serviceRadius": app.ServiceRadius,
		"fees": map[string]float64{
			"refinanceWithInsurance":    float64(app.RefinanceWithInsurance) / 100,
			"refinanceWithoutInsurance": float64(app.RefinanceWithoutInsurance) / 100,
			"homeEquityHELOC":           float64(app.HomeEquityHELOC) / 100,
			"purchaseClosings":          float64(app.PurchaseClosings) / 100,
			"reverseMortgage":           float64(app.ReverseMortgage) / 100,
			"loanModification":          float64(app.LoanModification) / 100,
			"commercialClosing":         float64(app.CommercialClosing) / 100,
			"ronSignings":               float64(app.RONSignings) / 100,
			"travelFeePerMile":          float64(app.TravelFeePerMile) / 100,
		},
	})
	if err != nil {
		return err
	}

	appID := app.ID
	user := models.User{
		Email:         app.Email,
		PasswordHash:  hash,
		UserType:      types.UserAgent,
		Status:        types.UserActive,
		ApplicationID: &appID,
	}
	if err := user.Profile.Scan(profile); err != nil {
		return err
	}

	if err := tx.Create(&user).Error; err != nil {
		return err
	}

	if err := CreateNotification(tx, user.ID, "account_created", "Welcome to SigningConnect",
		"Your agent account has been created. Log in with your temporary password and change it.",
		nil, &appID); err != nil {
		return err
	}

	// Welcome email stub carries the temporary password until a real
	// delivery provider exists.
	zap.L().Info("[ACCOUNT] agent account provisioned",
		zap.String("email", app.Email),
		zap.String("tempPassword", tempPassword))

	return nil
}
