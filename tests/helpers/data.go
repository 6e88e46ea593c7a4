package helpers

import (
	"testing"
	"time"

	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"gorm.io/gorm"
)

// SampleApplicationInput builds a complete, valid intake payload with
// the given applicant email.
func SampleApplicationInput(email string) services.SubmitApplicationInput {
	return services.SubmitApplicationInput{
		PersonalInfo: services.PersonalInfoInput{
			FirstName:       "Maria",
			LastName:        "Santos",
			Email:           email,
			Phone:           "555-0142",
			CellPhone:       "555-0143",
			Address:         "100 Ocean Dr",
			City:            "Miami",
			State:           "FL",
			ZipCode:         "33139",
			YearsExperience: "5",
			MonthlyVolume:   "20-40",
		},
		Credentials: services.CredentialsInput{
			NotaryLicense:     "FL-998877",
			LicenseExpiration: time.Now().AddDate(2, 0, 0).Format("2006-01-02"),
			NotaryStates:      types.FlexList[string]{"FL", "GA"},
			EOInsurance:       "Merchants Bonding",
			InsuranceAmount:   types.FlexInt(100000),
		},
		Coverage: services.CoverageInput{
			PrimaryCounties: "Miami-Dade",
			ServiceRadius:   types.FlexInt(30),
		},
		Fees: services.FeesInput{
			RefinanceWithInsurance: types.FlexAmount(13500),
		},
		Agreements: services.AgreementsInput{
			IndependentContractor: true,
			PrivacyPolicy:         true,
			CodeOfConduct:         true,
			ServiceLevel:          true,
			ElectronicSignature:   true,
		},
	}
}

// CreateTestJob inserts an open job owned by the given company.
func CreateTestJob(t *testing.T, db *gorm.DB, companyID uint64) *models.Job {
	t.Helper()

	job := &models.Job{
		CompanyID:        companyID,
		Title:            "Refinance signing",
		DocumentType:     "Refinance",
		Location:         "450 Brickell Ave, Miami, FL",
		AppointmentDate:  time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour),
		AppointmentTime:  "14:00",
		FeeAmount:        12500,
		TravelFee:        2500,
		TotalAmount:      15000,
		Status:           types.JobOpen,
		Priority:         "normal",
		RequiresScanBack: true,
		MaxDistanceMiles: 25,
		PaymentStatus:    types.PaymentPending,
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("Failed to create test job: %v", err)
	}
	return job
}

// SubmitTestApplication pushes a sample intake through the service
// layer and returns the generated tracking id.
func SubmitTestApplication(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()

	id, err := services.SubmitApplication(db, SampleApplicationInput(email))
	if err != nil {
		t.Fatalf("Failed to submit test application: %v", err)
	}
	return id
}
