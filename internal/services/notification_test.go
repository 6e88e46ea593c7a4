package services_test

import (
	"errors"
	"testing"

	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/tests/helpers"
)

func TestNotificationsScopedToUser(t *testing.T) {
	db := newTestDB(t)
	alice := helpers.CreateTestUser(t, db, "alice@example.com", types.UserAgent)
	bob := helpers.CreateTestUser(t, db, "bob@example.com", types.UserAgent)

	if err := services.CreateNotification(db, alice.ID, "job_assigned", "Assignment", "You are assigned", nil, nil); err != nil {
		t.Fatalf("CreateNotification failed: %v", err)
	}

	got, err := services.ListNotifications(db, alice.ID, 50)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Alice sees %d notifications, want 1", len(got))
	}

	// Bob cannot read or ack Alice's notification.
	empty, err := services.ListNotifications(db, bob.ID, 50)
	if err != nil || len(empty) != 0 {
		t.Errorf("Bob sees %d notifications, want 0", len(empty))
	}
	if err := services.MarkNotificationRead(db, bob.ID, got[0].ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign notification, got %v", err)
	}

	if err := services.MarkNotificationRead(db, alice.ID, got[0].ID); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}

	var stored models.Notification
	if err := db.First(&stored, got[0].ID).Error; err != nil {
		t.Fatalf("Failed to reload notification: %v", err)
	}
	if !stored.Read || stored.ReadAt == nil {
		t.Error("Notification not marked read with timestamp")
	}
}

func TestEnsureAdminAccount(t *testing.T) {
	db := newTestDB(t)

	if err := services.EnsureAdminAccount(db, "root@example.com", "bootstrap-pass"); err != nil {
		t.Fatalf("EnsureAdminAccount failed: %v", err)
	}
	// Second call is a no-op.
	if err := services.EnsureAdminAccount(db, "root@example.com", "bootstrap-pass"); err != nil {
		t.Fatalf("Repeated EnsureAdminAccount failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("user_type = ?", types.UserAdmin).Count(&count)
	if count != 1 {
		t.Errorf("Admin accounts = %d, want 1", count)
	}

	// Empty credentials do nothing.
	if err := services.EnsureAdminAccount(db, "", ""); err != nil {
		t.Errorf("EnsureAdminAccount with empty input errored: %v", err)
	}
}
