package services_test

import (
	"errors"
	"testing"

	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"github.com/signingconnect/signingconnect-api/tests/helpers"
)

func sampleCompanyInput(email string) services.RegisterCompanyInput {
	return services.RegisterCompanyInput{
		Email:       email,
		Password:    "company-pass-1",
		CompanyName: "First Title LLC",
		ContactName: "Dana Whitfield",
		Phone:       "555-0100",
		Address:     "200 Biscayne Blvd, Miami, FL",
	}
}

func TestRegisterCompany(t *testing.T) {
	db := newTestDB(t)

	user, err := services.RegisterCompany(db, sampleCompanyInput("title@example.com"))
	if err != nil {
		t.Fatalf("RegisterCompany failed: %v", err)
	}

	if user.UserType != types.UserCompany {
		t.Errorf("UserType = %q, want company", user.UserType)
	}
	if user.Status != types.UserActive {
		t.Errorf("Status = %q, want active", user.Status)
	}
	if user.PasswordHash == "company-pass-1" {
		t.Error("Password stored in plaintext")
	}
	if !utils.CheckPassword(user.PasswordHash, "company-pass-1") {
		t.Error("Stored hash does not verify the original password")
	}
}

func TestRegisterCompanyDuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	if _, err := services.RegisterCompany(db, sampleCompanyInput("dup@example.com")); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}

	_, err := services.RegisterCompany(db, sampleCompanyInput("dup@example.com"))
	if !errors.Is(err, services.ErrDuplicateEmail) {
		t.Errorf("Expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegisterCompanyValidation(t *testing.T) {
	db := newTestDB(t)

	in := sampleCompanyInput("missing@example.com")
	in.CompanyName = ""

	_, err := services.RegisterCompany(db, in)
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	company := helpers.CreateTestUser(t, db, "login@example.com", types.UserCompany)

	user, err := services.Login(db, "login@example.com", helpers.TestPassword, types.UserCompany)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != company.ID {
		t.Errorf("Logged in as user %d, want %d", user.ID, company.ID)
	}
	if user.LastLogin == nil {
		t.Error("LastLogin not stamped")
	}
}

func TestLoginScopedByUserType(t *testing.T) {
	db := newTestDB(t)
	helpers.CreateTestUser(t, db, "scoped@example.com", types.UserCompany)

	// Right credentials, wrong portal.
	_, err := services.Login(db, "scoped@example.com", helpers.TestPassword, types.UserAgent)
	if !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong user type, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	helpers.CreateTestUser(t, db, "badpass@example.com", types.UserCompany)

	_, err := services.Login(db, "badpass@example.com", "wrong-password", types.UserCompany)
	if !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	db := newTestDB(t)
	user := helpers.CreateTestUser(t, db, "frozen@example.com", types.UserCompany)
	db.Model(user).Update("status", types.UserSuspended)

	_, err := services.Login(db, "frozen@example.com", helpers.TestPassword, types.UserCompany)
	if !errors.Is(err, services.ErrAccountInactive) {
		t.Errorf("Expected ErrAccountInactive, got %v", err)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	db := newTestDB(t)
	helpers.CreateTestUser(t, db, "forgot@example.com", types.UserCompany)

	found, err := services.ForgotPassword(db, "forgot@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	if !found {
		t.Fatal("ForgotPassword did not find the account")
	}

	// Unknown email is not an error, just not found.
	found, err = services.ForgotPassword(db, "nobody@example.com")
	if err != nil || found {
		t.Errorf("ForgotPassword(unknown) = (%v, %v), want (false, nil)", found, err)
	}

	var stored models.User
	if err := db.Where("email = ?", "forgot@example.com").First(&stored).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if stored.ResetToken == "" || stored.ResetTokenExpiry == nil {
		t.Fatal("Reset token not persisted")
	}

	if err := services.ResetPassword(db, stored.ResetToken, "brand-new-pass"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, err := services.Login(db, "forgot@example.com", "brand-new-pass", types.UserCompany); err != nil {
		t.Errorf("Login with reset password failed: %v", err)
	}

	// Token is single-use.
	if err := services.ResetPassword(db, stored.ResetToken, "another-pass-99"); !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected ErrValidation for reused token, got %v", err)
	}
}

func TestResetPasswordTooShort(t *testing.T) {
	db := newTestDB(t)

	err := services.ResetPassword(db, "some-token", "short")
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected ErrValidation for short password, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	user := helpers.CreateTestUser(t, db, "change@example.com", types.UserAgent)

	if err := services.ChangePassword(db, user, "wrong-current", "new-password-1"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong current password, got %v", err)
	}

	if err := services.ChangePassword(db, user, helpers.TestPassword, "new-password-1"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := services.Login(db, "change@example.com", "new-password-1", types.UserAgent); err != nil {
		t.Errorf("Login with changed password failed: %v", err)
	}
}

func TestGetActiveUser(t *testing.T) {
	db := newTestDB(t)
	user := helpers.CreateTestUser(t, db, "active@example.com", types.UserAgent)

	got, err := services.GetActiveUser(db, user.ID)
	if err != nil {
		t.Fatalf("GetActiveUser failed: %v", err)
	}
	if got.Email != "active@example.com" {
		t.Errorf("Email = %q", got.Email)
	}

	db.Model(user).Update("status", types.UserInactive)
	if _, err := services.GetActiveUser(db, user.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for inactive account, got %v", err)
	}
}
