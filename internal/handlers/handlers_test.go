package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/signingconnect/signingconnect-api/internal/config"
	"github.com/signingconnect/signingconnect-api/internal/handlers"
	"github.com/signingconnect/signingconnect-api/internal/middleware"
	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"github.com/signingconnect/signingconnect-api/tests/helpers"
)

// newTestApp wires the full route tree against an in-memory database
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	utils.SetJWTSecret("handlers-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Application{},
		&models.User{},
		&models.Job{},
		&models.JobApplication{},
		&models.Document{},
		&models.Review{},
		&models.Notification{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		Environment:   "test",
		TokenTTLHours: 1,
		JWTSecret:     "handlers-test-secret",
	}

	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	applicationHandler := &handlers.ApplicationHandler{DB: db, Cfg: cfg}
	adminHandler := &handlers.AdminHandler{DB: db, Cfg: cfg}
	jobHandler := &handlers.JobHandler{DB: db, Cfg: cfg}
	notificationHandler := &handlers.NotificationHandler{DB: db, Cfg: cfg}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Get("/verify", middleware.Protected(db), authHandler.Verify)
	auth.Get("/profile", middleware.Protected(db), authHandler.GetProfile)
	auth.Patch("/profile", middleware.Protected(db), authHandler.UpdateProfile)
	auth.Post("/change-password", middleware.Protected(db), authHandler.ChangePassword)

	api.Post("/applications/submit", applicationHandler.Submit)
	api.Get("/applications/status/:applicationId", applicationHandler.Status)

	admin := api.Group("/admin", middleware.Protected(db), middleware.RequireAdmin())
	admin.Get("/applications", adminHandler.ListApplications)
	admin.Get("/applications/:id", adminHandler.GetApplication)
	admin.Patch("/applications/:id/status", adminHandler.UpdateApplicationStatus)

	jobs := api.Group("/jobs", middleware.Protected(db))
	jobs.Post("/", middleware.RequireCompany(), jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/:id", jobHandler.Get)
	jobs.Patch("/:id/status", middleware.RequireCompany(), jobHandler.UpdateStatus)
	jobs.Post("/:id/apply", middleware.RequireAgent(), jobHandler.Apply)
	jobs.Get("/:id/applications", middleware.RequireCompany(), jobHandler.ListBids)

	notifications := api.Group("/notifications", middleware.Protected(db))
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	return app, db
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func TestSubmitApplicationEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	// Wizard payload with decimal-string fees, as the frontend sends them
	payload := map[string]interface{}{
		"personalInfo": map[string]interface{}{
			"firstName":       "Maria",
			"lastName":        "Santos",
			"email":           "maria@example.com",
			"phone":           "555-0142",
			"city":            "Miami",
			"state":           "FL",
			"yearsExperience": "5",
			"monthlyVolume":   "20-40",
		},
		"credentials": map[string]interface{}{
			"notaryLicense":     "FL-998877",
			"licenseExpiration": "2028-06-30",
			"notaryStates":      "FL",
			"eoInsurance":       "Merchants Bonding",
			"insuranceAmount":   "100000",
		},
		"coverage": map[string]interface{}{
			"primaryCounties": "Miami-Dade",
			"serviceRadius":   "30",
		},
		"fees": map[string]interface{}{
			"refinanceWithInsurance": "135.00",
		},
		"agreements": map[string]interface{}{
			"independentContractor": true,
			"privacyPolicy":         true,
			"codeOfConduct":         true,
			"serviceLevel":          true,
			"electronicSignature":   true,
		},
	}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/applications/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	envelope := helpers.ParseEnvelope(t, resp, true)
	id, _ := envelope["applicationId"].(string)
	if !regexp.MustCompile(`^SC\d{8}$`).MatchString(id) {
		t.Fatalf("applicationId = %q, want SC followed by 8 digits", id)
	}

	// Public status lookup sees it as pending.
	req = httptest.NewRequest("GET", "/api/applications/status/"+id, nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Status request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	envelope = helpers.ParseEnvelope(t, resp, true)
	application, _ := envelope["application"].(map[string]interface{})
	if application["status"] != "pending" {
		t.Errorf("status = %v, want pending", application["status"])
	}
}

func TestApplicationStatusUnknownID(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/applications/status/SC00000000", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusNotFound)
	helpers.ParseEnvelope(t, resp, false)
}

func TestRegisterAndLoginEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	register := map[string]interface{}{
		"userType":    "company",
		"email":       "title@example.com",
		"password":    "company-pass-1",
		"companyName": "First Title LLC",
		"contactName": "Dana Whitfield",
		"phone":       "555-0100",
	}
	body, _ := json.Marshal(register)
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Register request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	envelope := helpers.ParseEnvelope(t, resp, true)
	token, _ := envelope["token"].(string)
	if token == "" {
		t.Fatal("Register response missing token")
	}

	raw, _ := json.Marshal(envelope)
	if strings.Contains(string(raw), "password") || strings.Contains(string(raw), "company-pass-1") {
		t.Error("Register response leaks password material")
	}

	// Token works against the verify endpoint.
	req = httptest.NewRequest("GET", "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Verify request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	// Login with the same credentials.
	login := map[string]interface{}{
		"email":    "title@example.com",
		"password": "company-pass-1",
		"userType": "company",
	}
	body, _ = json.Marshal(login)
	req = httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Login request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	// Wrong portal with right credentials stays generic 401.
	login["userType"] = "agent"
	body, _ = json.Marshal(login)
	req = httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Login request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusUnauthorized)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/auth/verify", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusUnauthorized)

	req = httptest.NewRequest("GET", "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusUnauthorized)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app, db := newTestApp(t)
	company := helpers.CreateTestUser(t, db, "company@example.com", types.UserCompany)
	admin := helpers.CreateTestUser(t, db, "admin@example.com", types.UserAdmin)

	req := httptest.NewRequest("GET", "/api/admin/applications", nil)
	req.Header.Set("Authorization", helpers.BearerToken(t, company))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusForbidden)

	req = httptest.NewRequest("GET", "/api/admin/applications", nil)
	req.Header.Set("Authorization", helpers.BearerToken(t, admin))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	envelope := helpers.ParseEnvelope(t, resp, true)
	if _, ok := envelope["pagination"].(map[string]interface{}); !ok {
		t.Error("Admin listing missing pagination envelope")
	}
}

func TestAdminRejectFlowEndToEnd(t *testing.T) {
	app, db := newTestApp(t)
	admin := helpers.CreateTestUser(t, db, "admin@example.com", types.UserAdmin)

	trackingID := helpers.SubmitTestApplication(t, db, "reject-me@example.com")

	var stored models.Application
	if err := db.Where("application_id = ?", trackingID).First(&stored).Error; err != nil {
		t.Fatalf("Failed to load application: %v", err)
	}

	update := map[string]interface{}{
		"status":          "rejected",
		"rejectionReason": "License expired",
	}
	body, _ := json.Marshal(update)
	req := httptest.NewRequest("PATCH", "/api/admin/applications/"+itoa(stored.ID)+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", helpers.BearerToken(t, admin))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	// Applicant sees the rejection through the public endpoint.
	req = httptest.NewRequest("GET", "/api/applications/status/"+trackingID, nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Status request failed: %v", err)
	}
	envelope := helpers.ParseEnvelope(t, resp, true)
	application, _ := envelope["application"].(map[string]interface{})
	if application["status"] != "rejected" {
		t.Errorf("status = %v, want rejected", application["status"])
	}
	if application["rejectionReason"] != "License expired" {
		t.Errorf("rejectionReason = %v", application["rejectionReason"])
	}
}

func TestJobPostingAndBiddingEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	company := helpers.CreateTestUser(t, db, "company@example.com", types.UserCompany)
	agent := helpers.CreateTestUser(t, db, "agent@example.com", types.UserAgent)

	posting := map[string]interface{}{
		"title":           "Refinance signing",
		"location":        "450 Brickell Ave, Miami, FL",
		"appointmentDate": "2026-10-15",
		"appointmentTime": "14:00",
		"feeAmount":       "125.00",
		"travelFee":       "25.00",
	}
	body, _ := json.Marshal(posting)
	req := httptest.NewRequest("POST", "/api/jobs/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", helpers.BearerToken(t, company))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Create job request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	envelope := helpers.ParseEnvelope(t, resp, true)
	job, _ := envelope["job"].(map[string]interface{})
	if job["totalAmount"] != 15000.0 {
		t.Errorf("totalAmount = %v, want 15000 cents", job["totalAmount"])
	}
	jobID := itoa(uint64(job["id"].(float64)))

	// Agents may not post jobs.
	req = httptest.NewRequest("POST", "/api/jobs/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", helpers.BearerToken(t, agent))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusForbidden)

	// The agent board shows the open job.
	req = httptest.NewRequest("GET", "/api/jobs/", nil)
	req.Header.Set("Authorization", helpers.BearerToken(t, agent))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("List request failed: %v", err)
	}
	envelope = helpers.ParseEnvelope(t, resp, true)
	jobs, _ := envelope["jobs"].([]interface{})
	if len(jobs) != 1 {
		t.Fatalf("Agent board shows %d jobs, want 1", len(jobs))
	}

	// Agent bids; a second bid conflicts.
	bid := map[string]interface{}{"proposedFee": "120.00"}
	body, _ = json.Marshal(bid)
	req = httptest.NewRequest("POST", "/api/jobs/"+jobID+"/apply", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", helpers.BearerToken(t, agent))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Apply request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	req = httptest.NewRequest("POST", "/api/jobs/"+jobID+"/apply", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", helpers.BearerToken(t, agent))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Second apply request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusConflict)

	// Owning company reads the bids.
	req = httptest.NewRequest("GET", "/api/jobs/"+jobID+"/applications", nil)
	req.Header.Set("Authorization", helpers.BearerToken(t, company))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("List bids request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)
	envelope = helpers.ParseEnvelope(t, resp, true)
	bids, _ := envelope["jobApplications"].([]interface{})
	if len(bids) != 1 {
		t.Errorf("Bids = %d, want 1", len(bids))
	}
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	var status map[string]interface{}
	helpers.ParseJSON(t, resp, &status)
	if status["status"] != "healthy" || status["database"] != "connected" {
		t.Errorf("Health payload = %v", status)
	}
}
