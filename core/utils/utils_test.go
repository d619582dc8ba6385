package utils

import (
	"testing"
	"time"

	"bandos-api/core/config"
	"bandos-api/core/constants"

	"github.com/google/uuid"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	config.Set(&config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTTLHours:  1,
			RefreshTTLHours: 24,
		},
	})
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig(t)

	userID := uuid.New()
	token, err := GenerateToken(userID, "sax@example.com", "Sax", constants.ScopeTokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateAndParseToken(token)
	if err != nil {
		t.Fatalf("ValidateAndParseToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "sax@example.com" || claims.DisplayName != "Sax" {
		t.Errorf("claims = %+v, want email and display name preserved", claims)
	}
	if claims.Scope != constants.ScopeTokenAccess {
		t.Errorf("scope = %q, want %q", claims.Scope, constants.ScopeTokenAccess)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateToken(uuid.New(), "sax@example.com", "Sax", constants.ScopeTokenAccess, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateAndParseToken(token); err == nil {
		t.Fatal("expired token was accepted")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateToken(uuid.New(), "sax@example.com", "Sax", constants.ScopeTokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateAndParseToken(tampered); err == nil {
		t.Fatal("tampered token was accepted")
	}
}

func TestPasswordHashAndCompare(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !ComparePassword(hashed, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if ComparePassword(hashed, "wrong password") {
		t.Error("wrong password accepted")
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "sax.player@example.com", "x+y@mail.example.org"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	invalid := []string{"", "no-at-sign", "@example.com", "user@", "user @example.com"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestGenerateRandomStringLength(t *testing.T) {
	s := GenerateRandomString(32)
	if len(s) != 32 {
		t.Errorf("len = %d, want 32", len(s))
	}
	if s == GenerateRandomString(32) {
		t.Error("two generated strings were identical")
	}
}
