package models

import (
	"time"

	"github.com/signingconnect/signingconnect-api/internal/types"
)

// Application is one prospective agent's intake submission. It is created
// once at submission and mutated only by the admin review workflow.
type Application struct {
	ID            uint64                  `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID string                  `gorm:"size:20;uniqueIndex;not null" json:"applicationId"`
	Status        types.ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_applications_status" json:"status"`
	CreatedAt     time.Time               `gorm:"index:idx_applications_created_at" json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`

	// Personal information
	FirstName       string `gorm:"size:100;not null" json:"firstName"`
	LastName        string `gorm:"size:100;not null" json:"lastName"`
	Email           string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone           string `gorm:"size:20;not null" json:"phone"`
	CellPhone       string `gorm:"size:20" json:"cellPhone,omitempty"`
	Address         string `json:"address,omitempty"`
	City            string `gorm:"size:100" json:"city,omitempty"`
	State           string `gorm:"size:2" json:"state,omitempty"`
	ZipCode         string `gorm:"size:10" json:"zipCode,omitempty"`
	BusinessName    string `gorm:"size:255" json:"businessName,omitempty"`
	Website         string `gorm:"size:255" json:"website,omitempty"`
	YearsExperience string `gorm:"size:10;not null" json:"yearsExperience"`
	MonthlyVolume   string `gorm:"size:20;not null" json:"monthlyVolume"`

	// Professional credentials
	NotaryLicense         string    `gorm:"size:100;not null" json:"notaryLicense"`
	LicenseExpiration     time.Time `gorm:"type:date;not null" json:"licenseExpiration"`
	NotaryStates          JSON      `json:"notaryStates"`
	EOInsurance           string    `gorm:"column:eo_insurance;size:100;not null" json:"eoInsurance"`
	InsuranceAmount       int64     `gorm:"not null" json:"insuranceAmount"`
	BackgroundCheck       string    `gorm:"size:100" json:"backgroundCheck,omitempty"`
	DigitalNotaryServices bool      `gorm:"default:false" json:"digitalNotaryServices"`
	BilingualServices     bool      `gorm:"default:false" json:"bilingualServices"`

	// Service coverage
	PrimaryCounties    string `json:"primaryCounties,omitempty"`
	AdditionalCounties string `json:"additionalCounties,omitempty"`
	ServiceRadius      int64  `gorm:"default:25" json:"serviceRadius"`
	MaxTravelDistance  int64  `gorm:"default:50" json:"maxTravelDistance"`
	WeekdaysAvailable  bool   `gorm:"default:true" json:"weekdaysAvailable"`
	EveningsAvailable  bool   `gorm:"default:false" json:"eveningsAvailable"`
	WeekendsAvailable  bool   `gorm:"default:false" json:"weekendsAvailable"`
	HolidaysAvailable  bool   `gorm:"default:false" json:"holidaysAvailable"`
	EmergencyServices  bool   `gorm:"default:false" json:"emergencyServices"`

	// Fee schedule, stored as integer minor units (cents)
	RefinanceWithInsurance    int64 `gorm:"default:12500" json:"refinanceWithInsurance"`
	RefinanceWithoutInsurance int64 `gorm:"default:10000" json:"refinanceWithoutInsurance"`
	HomeEquityHELOC           int64 `gorm:"column:home_equity_heloc;default:15000" json:"homeEquityHELOC"`
	PurchaseClosings          int64 `gorm:"default:17500" json:"purchaseClosings"`
	ReverseMortgage           int64 `gorm:"default:20000" json:"reverseMortgage"`
	LoanModification          int64 `gorm:"default:12500" json:"loanModification"`
	CommercialClosing         int64 `gorm:"default:25000" json:"commercialClosing"`
	RONSignings               int64 `gorm:"column:ron_signings;default:15000" json:"ronSignings"`
	TravelFeePerMile          int64 `gorm:"default:65" json:"travelFeePerMile"`

	// Legal agreements
	IndependentContractorAgreed bool       `gorm:"default:false" json:"independentContractorAgreed"`
	PrivacyPolicyAgreed         bool       `gorm:"default:false" json:"privacyPolicyAgreed"`
	CodeOfConductAgreed         bool       `gorm:"default:false" json:"codeOfConductAgreed"`
	ServiceLevelAgreed          bool       `gorm:"default:false" json:"serviceLevelAgreed"`
	ElectronicSignatureAgreed   bool       `gorm:"default:false" json:"electronicSignatureAgreed"`
	AgreementsSignedAt          *time.Time `json:"agreementsSignedAt,omitempty"`

	// Review metadata
	ReviewedBy      *uint64    `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// TableName overrides the table name for Application
func (Application) TableName() string {
	return "applications"
}
