package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// applicationIDPrefix + 8 digits is the caller-facing handle for an
// application. The digits are crypto-random rather than a timestamp
// slice so concurrent submissions cannot collide within a clock tick.
const applicationIDPrefix = "SC"

// Indirection so tests can force an application_id collision.
var generateApplicationDigits = utils.GenerateApplicationDigits

// PersonalInfoInput is the identity section of an intake submission.
type PersonalInfoInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	CellPhone       string `json:"cellPhone"`
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zipCode"`
	BusinessName    string `json:"businessName"`
	Website         string `json:"website"`
	YearsExperience string `json:"yearsExperience"`
	MonthlyVolume   string `json:"monthlyVolume"`
}

// CredentialsInput is the professional credentials section.
type CredentialsInput struct {
	NotaryLicense         string                 `json:"notaryLicense"`
	LicenseExpiration     string                 `json:"licenseExpiration"`
	NotaryStates          types.FlexList[string] `json:"notaryStates"`
	EOInsurance           string                 `json:"eoInsurance"`
	InsuranceAmount       types.FlexInt          `json:"insuranceAmount"`
	DigitalNotaryServices bool                   `json:"digitalNotaryServices"`
	BilingualServices     bool                   `json:"bilingualServices"`
}

// AvailabilityInput carries per-day availability flags. Pointers
// distinguish "absent" from "false" so weekdays can default to true.
type AvailabilityInput struct {
	Weekdays *bool `json:"weekdays"`
	Evenings *bool `json:"evenings"`
	Weekends *bool `json:"weekends"`
	Holidays *bool `json:"holidays"`
}

// CoverageInput is the service coverage section.
type CoverageInput struct {
	PrimaryCounties      string            `json:"primaryCounties"`
	AdditionalCounties   string            `json:"additionalCounties"`
	ServiceRadius        types.FlexInt     `json:"serviceRadius"`
	TravelWillingness    types.FlexInt     `json:"travelWillingness"`
	AvailabilitySchedule AvailabilityInput `json:"availabilitySchedule"`
	EmergencyServices    bool              `json:"emergencyServices"`
}

// FeesInput is the fee schedule section. Values arrive as decimal
// currency strings or numbers and are stored as integer minor units.
type FeesInput struct {
	RefinanceWithInsurance    types.FlexAmount `json:"refinanceWithInsurance"`
	RefinanceWithoutInsurance types.FlexAmount `json:"refinanceWithoutInsurance"`
	HomeEquityHELOC           types.FlexAmount `json:"homeEquityHELOC"`
	PurchaseClosings          types.FlexAmount `json:"purchaseClosings"`
	ReverseMortgage           types.FlexAmount `json:"reverseMortgage"`
	LoanModification          types.FlexAmount `json:"loanModification"`
	CommercialClosing         types.FlexAmount `json:"commercialClosing"`
	RONSignings               types.FlexAmount `json:"ronSignings"`
	TravelFeePerMile          types.FlexAmount `json:"travelFeePerMile"`
}

// AgreementsInput is the legal agreements section.
type AgreementsInput struct {
	IndependentContractor bool `json:"independentContractor"`
	PrivacyPolicy         bool `json:"privacyPolicy"`
	CodeOfConduct         bool `json:"codeOfConduct"`
	ServiceLevel          bool `json:"serviceLevel"`
	ElectronicSignature   bool `json:"electronicSignature"`
}

// SubmitApplicationInput is the full four-section intake payload.
type SubmitApplicationInput struct {
	PersonalInfo PersonalInfoInput `json:"personalInfo"`
	Credentials  CredentialsInput  `json:"credentials"`
	Coverage     CoverageInput     `json:"coverage"`
	Fees         FeesInput         `json:"fees"`
	Agreements   AgreementsInput   `json:"agreements"`
}

// ApplicationStatusView is the public subset of an application exposed
// by the unauthenticated status lookup.
type ApplicationStatusView struct {
	ID              string     `json:"id"`
	Status          string     `json:"status"`
	SubmittedAt     time.Time  `json:"submittedAt"`
	LastUpdated     time.Time  `json:"lastUpdated"`
	ReviewedAt      *time.Time `json:"reviewedAt"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// SubmitApplication persists a full intake submission as a single wide
// row inside a transaction and returns the generated application ID.
// Confirmation email is a fire-and-forget side effect of the caller.
func SubmitApplication(db *gorm.DB, in SubmitApplicationInput) (string, error) {
	p, c, cov := in.PersonalInfo, in.Credentials, in.Coverage

	switch {
	case p.FirstName == "" || p.LastName == "" || p.Email == "" || p.Phone == "":
		return "", fmt.Errorf("%w: personal information is incomplete", ErrValidation)
	case p.YearsExperience == "" || p.MonthlyVolume == "":
		return "", fmt.Errorf("%w: experience and volume are required", ErrValidation)
	case c.NotaryLicense == "" || c.LicenseExpiration == "" || c.EOInsurance == "":
		return "", fmt.Errorf("%w: notary credentials are incomplete", ErrValidation)
	case c.InsuranceAmount == 0:
		return "", fmt.Errorf("%w: insurance amount is required", ErrValidation)
	}

	licenseExpiration, err := time.Parse("2006-01-02", c.LicenseExpiration)
	if err != nil {
		return "", fmt.Errorf("%w: license expiration must be YYYY-MM-DD", ErrValidation)
	}

	state := p.State
	if state == "" {
		state = "FL"
	}
	notaryStates := c.NotaryStates.Slice()
	if len(notaryStates) == 0 {
		notaryStates = []string{"FL"}
	}
	statesJSON, err := json.Marshal(notaryStates)
	if err != nil {
		return "", err
	}

	now := time.Now()
	app := models.Application{
		Status: types.ApplicationPending,

		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           p.Email,
		Phone:           p.Phone,
		CellPhone:       p.CellPhone,
		Address:         p.Address,
		City:            p.City,
		State:           state,
		ZipCode:         p.ZipCode,
		BusinessName:    p.BusinessName,
		Website:         p.Website,
		YearsExperience: p.YearsExperience,
		MonthlyVolume:   p.MonthlyVolume,

		NotaryLicense:         c.NotaryLicense,
		LicenseExpiration:     licenseExpiration,
		EOInsurance:           c.EOInsurance,
		InsuranceAmount:       c.InsuranceAmount.Int64(),
		DigitalNotaryServices: c.DigitalNotaryServices,
		BilingualServices:     c.BilingualServices,

		PrimaryCounties:    cov.PrimaryCounties,
		AdditionalCounties: cov.AdditionalCounties,
		ServiceRadius:      cov.ServiceRadius.OrDefault(25),
		MaxTravelDistance:  cov.TravelWillingness.OrDefault(50),
		WeekdaysAvailable:  boolOr(cov.AvailabilitySchedule.Weekdays, true),
		EveningsAvailable:  boolOr(cov.AvailabilitySchedule.Evenings, false),
		WeekendsAvailable:  boolOr(cov.AvailabilitySchedule.Weekends, false),
		HolidaysAvailable:  boolOr(cov.AvailabilitySchedule.Holidays, false),
		EmergencyServices:  cov.EmergencyServices,

		RefinanceWithInsurance:    in.Fees.RefinanceWithInsurance.OrDefault(12500),
		RefinanceWithoutInsurance: in.Fees.RefinanceWithoutInsurance.OrDefault(10000),
		HomeEquityHELOC:           in.Fees.HomeEquityHELOC.OrDefault(15000),
		PurchaseClosings:          in.Fees.PurchaseClosings.OrDefault(17500),
		ReverseMortgage:           in.Fees.ReverseMortgage.OrDefault(20000),
		LoanModification:          in.Fees.LoanModification.OrDefault(12500),
		CommercialClosing:         in.Fees.CommercialClosing.OrDefault(25000),
		RONSignings:               in.Fees.RONSignings.OrDefault(15000),
		TravelFeePerMile:          in.Fees.TravelFeePerMile.OrDefault(65),

		IndependentContractorAgreed: in.Agreements.IndependentContractor,
		PrivacyPolicyAgreed:         in.Agreements.PrivacyPolicy,
		CodeOfConductAgreed:         in.Agreements.CodeOfConduct,
		ServiceLevelAgreed:          in.Agreements.ServiceLevel,
		ElectronicSignatureAgreed:   in.Agreements.ElectronicSignature,
		AgreementsSignedAt:          &now,
	}
	if err := app.NotaryStates.Scan(statesJSON); err != nil {
		return "", err
	}

	// Postgres aborts the whole transaction on a constraint violation,
	// so each attempt runs in its own transaction. The random suffix
	// makes an application_id collision a freak event; one retry
	// covers it.
	var submitErr error
	for attempt := 0; attempt < 2; attempt++ {
		app.ApplicationID = applicationIDPrefix + generateApplicationDigits(8)
		submitErr = db.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Application{}).Where("email = ?", p.Email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateEmail
			}
			return tx.Create(&app).Error
		})
		if submitErr == nil {
			break
		}
		if !isUniqueViolation(submitErr) {
			return "", submitErr
		}
		// A concurrent submission that slipped past the count check
		// lands on the email index; a fresh suffix cannot fix that.
		if strings.Contains(submitErr.Error(), "email") {
			return "", ErrDuplicateEmail
		}
	}
	if submitErr != nil {
		return "", submitErr
	}

	zap.L().Info("application saved", zap.String("applicationId", app.ApplicationID),
		zap.String("email", p.Email))
	return app.ApplicationID, nil
}

// GetApplicationStatus returns the public status view for a
// caller-facing application ID; never the full record.
func GetApplicationStatus(db *gorm.DB, applicationID string) (*ApplicationStatusView, error) {
	var app models.Application
	err := db.Where("application_id = ?", applicationID).First(&app).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &ApplicationStatusView{
		ID:              app.ApplicationID,
		Status:          string(app.Status),
		SubmittedAt:     app.CreatedAt,
		LastUpdated:     app.UpdatedAt,
		ReviewedAt:      app.ReviewedAt,
		RejectionReason: app.RejectionReason,
	}, nil
}

// isUniqueViolation sniffs driver-specific unique constraint errors.
// Postgres reports 23505, sqlite "UNIQUE constraint failed", mysql 1062.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
