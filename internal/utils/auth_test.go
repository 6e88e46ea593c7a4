package utils

import (
	"strings"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("Hash equals plaintext")
	}
	if !CheckPassword(hash, "correct horse battery") {
		t.Error("CheckPassword rejected the original password")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestGenerateTemporaryPassword(t *testing.T) {
	const (
		upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		special = "!@#$%^&*"
		numbers = "0123456789"
	)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		p := GenerateTemporaryPassword()
		if len(p) != 10 {
			t.Fatalf("Password length = %d, want 10", len(p))
		}
		if !strings.ContainsAny(p, upper) {
			t.Errorf("Password %q has no capital letter", p)
		}
		if !strings.ContainsAny(p, special) {
			t.Errorf("Password %q has no special character", p)
		}
		if !strings.ContainsAny(p, numbers) {
			t.Errorf("Password %q has no digit", p)
		}
		seen[p] = true
	}
	if len(seen) < 2 {
		t.Error("Temporary passwords are not random")
	}
}

func TestGenerateApplicationDigits(t *testing.T) {
	d := GenerateApplicationDigits(8)
	if len(d) != 8 {
		t.Fatalf("Digits length = %d, want 8", len(d))
	}
	for _, r := range d {
		if r < '0' || r > '9' {
			t.Fatalf("Non-digit %q in %q", r, d)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("token-test-secret")

	token, err := GenerateToken(42, "agent@example.com", "agent", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "agent@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.UserType != "agent" {
		t.Errorf("UserType = %q", claims.UserType)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	SetJWTSecret("token-test-secret")

	token, err := GenerateToken(7, "old@example.com", "company", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("secret-one")
	token, err := GenerateToken(7, "a@example.com", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	SetJWTSecret("secret-two")
	if _, err := ParseToken(token); err == nil {
		t.Error("Expected error for token signed with a different secret")
	}

	if _, err := ParseToken("garbage.token.value"); err == nil {
		t.Error("Expected error for malformed token")
	}
}
