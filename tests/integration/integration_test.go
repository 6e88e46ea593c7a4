package integration

import (
	"errors"
	"testing"

	"github.com/signingconnect/signingconnect-api/internal/config"
	"github.com/signingconnect/signingconnect-api/internal/database"
	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/tests/helpers"
)

// TestWithPostgres runs the full intake-to-marketplace flow against a
// real Postgres container with the canonical DDL applied, rather than
// the auto-migrated sqlite schema the unit tests use.
func TestWithPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc := helpers.StartPostgres(t)
	defer tc.Terminate(t)

	cfg := &config.Config{
		DBType:            "postgres",
		DBHost:            tc.Host,
		DBPort:            tc.Port.Port(),
		DBDatabase:        tc.Database,
		DBUser:            "signingconnect",
		DBPassword:        "signingconnect-test",
		DBConnectionLimit: 5,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	// Intake: submit and track.
	trackingID := helpers.SubmitTestApplication(t, db, "maria@example.com")

	view, err := services.GetApplicationStatus(db, trackingID)
	if err != nil {
		t.Fatalf("GetApplicationStatus failed: %v", err)
	}
	if view.Status != "pending" {
		t.Errorf("New application status = %q, want pending", view.Status)
	}

	// Duplicate submission trips the Postgres unique constraint path.
	if _, err := services.SubmitApplication(db, helpers.SampleApplicationInput("maria@example.com")); err == nil {
		t.Error("Duplicate application email accepted")
	}

	// Review: approve and provision.
	admin := helpers.CreateTestUser(t, db, "admin@example.com", types.UserAdmin)

	var app models.Application
	if err := db.Where("application_id = ?", trackingID).First(&app).Error; err != nil {
		t.Fatalf("Failed to load application: %v", err)
	}
	if _, err := services.UpdateApplicationStatus(db, app.ID, types.ApplicationApproved, "", "", admin); err != nil {
		t.Fatalf("Approval failed: %v", err)
	}

	var agent models.User
	if err := db.Where("email = ? AND user_type = ?", "maria@example.com", types.UserAgent).First(&agent).Error; err != nil {
		t.Fatalf("Agent account not provisioned: %v", err)
	}

	// Re-approval stays idempotent under the real unique index.
	if _, err := services.UpdateApplicationStatus(db, app.ID, types.ApplicationApproved, "", "", admin); err != nil {
		t.Fatalf("Re-approval failed: %v", err)
	}
	var agents int64
	db.Model(&models.User{}).Where("email = ?", "maria@example.com").Count(&agents)
	if agents != 1 {
		t.Errorf("Agent accounts = %d, want 1", agents)
	}

	// Marketplace: post, bid, assign.
	company, err := services.RegisterCompany(db, services.RegisterCompanyInput{
		Email:       "title@example.com",
		Password:    "company-pass-1",
		CompanyName: "First Title LLC",
		ContactName: "Dana Whitfield",
		Phone:       "555-0100",
	})
	if err != nil {
		t.Fatalf("RegisterCompany failed: %v", err)
	}

	job := helpers.CreateTestJob(t, db, company.ID)

	if _, err := services.ApplyToJob(db, job.ID, agent.ID, services.BidInput{
		ProposedFee: types.FlexAmount(14000),
	}); err != nil {
		t.Fatalf("ApplyToJob failed: %v", err)
	}
	// Duplicate bid hits the composite unique constraint.
	if _, err := services.ApplyToJob(db, job.ID, agent.ID, services.BidInput{}); err == nil {
		t.Error("Duplicate bid accepted")
	}

	updated, err := services.UpdateJobStatus(db, job.ID, company.ID, types.JobFilled, &agent.ID)
	if err != nil {
		t.Fatalf("UpdateJobStatus failed: %v", err)
	}
	if updated.AssignedAgentID == nil || *updated.AssignedAgentID != agent.ID {
		t.Error("Agent not assigned")
	}

	// JSONB round trip: agent profile carries the projected fee schedule.
	detail, err := services.GetApplicationDetail(db, app.ID)
	if err != nil {
		t.Fatalf("GetApplicationDetail failed: %v", err)
	}
	if detail["refinanceWithInsurance"] != 135.0 {
		t.Errorf("refinanceWithInsurance = %v, want 135", detail["refinanceWithInsurance"])
	}
}

// TestConcurrentDuplicateEmail races two writers with the same email so
// the loser slips past the count pre-check and lands on the unique
// index. On Postgres that violation aborts the transaction, so the
// loser must still come back as a duplicate-email conflict, never a
// raw driver error.
func TestConcurrentDuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc := helpers.StartPostgres(t)
	defer tc.Terminate(t)

	cfg := &config.Config{
		DBType:            "postgres",
		DBHost:            tc.Host,
		DBPort:            tc.Port.Port(),
		DBDatabase:        tc.Database,
		DBUser:            "signingconnect",
		DBPassword:        "signingconnect-test",
		DBConnectionLimit: 5,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	t.Run("application submission", func(t *testing.T) {
		errs := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				_, err := services.SubmitApplication(db, helpers.SampleApplicationInput("race-agent@example.com"))
				errs <- err
			}()
		}

		var oks, dupes int
		for i := 0; i < 2; i++ {
			switch err := <-errs; {
			case err == nil:
				oks++
			case errors.Is(err, services.ErrDuplicateEmail):
				dupes++
			default:
				t.Fatalf("Racing submission returned unexpected error: %v", err)
			}
		}
		if oks != 1 || dupes != 1 {
			t.Errorf("Racing submissions: %d succeeded, %d duplicate, want 1 and 1", oks, dupes)
		}

		var count int64
		db.Model(&models.Application{}).Where("email = ?", "race-agent@example.com").Count(&count)
		if count != 1 {
			t.Errorf("Stored applications = %d, want 1", count)
		}
	})

	t.Run("company registration", func(t *testing.T) {
		errs := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				_, err := services.RegisterCompany(db, services.RegisterCompanyInput{
					Email:       "race-company@example.com",
					Password:    "company-pass-1",
					CompanyName: "Race Title LLC",
					ContactName: "Riley Ortega",
					Phone:       "555-0102",
				})
				errs <- err
			}()
		}

		var oks, dupes int
		for i := 0; i < 2; i++ {
			switch err := <-errs; {
			case err == nil:
				oks++
			case errors.Is(err, services.ErrDuplicateEmail):
				dupes++
			default:
				t.Fatalf("Racing registration returned unexpected error: %v", err)
			}
		}
		if oks != 1 || dupes != 1 {
			t.Errorf("Racing registrations: %d succeeded, %d duplicate, want 1 and 1", oks, dupes)
		}
	})
}
