package utils

import (
	"testing"
	"time"
)

func init() {
	SetJWTSecret("unit-test-secret")
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(1, "alice", "admin", 24)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateToken() returned empty token")
	}

	if len(token) < 50 {
		t.Errorf("token seems too short: %d chars", len(token))
	}
}

func TestGenerateToken_DifferentTokens(t *testing.T) {
	token1, _ := GenerateToken(1, "alice", "admin", 24)
	token2, _ := GenerateToken(2, "bob", "manager", 24)

	if token1 == token2 {
		t.Error("different users should produce different tokens")
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	tests := []struct {
		userID   uint
		username string
		role     string
	}{
		{1, "admin", "admin"},
		{7, "alice", "manager"},
		{42, "bob", "user"},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			token, err := GenerateToken(tt.userID, tt.username, tt.role, 24)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}

			claims, err := ParseToken(token)
			if err != nil {
				t.Fatalf("ParseToken() error = %v", err)
			}

			if claims.UserID != tt.userID {
				t.Errorf("UserID = %d, expected %d", claims.UserID, tt.userID)
			}
			if claims.Username != tt.username {
				t.Errorf("Username = %q, expected %q", claims.Username, tt.username)
			}
			if claims.Role != tt.role {
				t.Errorf("Role = %q, expected %q", claims.Role, tt.role)
			}
		})
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"invalid",
		"not.a.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		if _, err := ParseToken(token); err == nil {
			t.Errorf("ParseToken(%q) should return error", token)
		}
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	SetJWTSecret("first-secret")
	token, _ := GenerateToken(1, "alice", "admin", 24)

	SetJWTSecret("second-secret")
	_, err := ParseToken(token)

	SetJWTSecret("unit-test-secret")

	if err == nil {
		t.Error("ParseToken should fail with wrong secret")
	}
}

func TestGenerateToken_Expiration(t *testing.T) {
	token, _ := GenerateToken(1, "alice", "user", 2)
	claims, _ := ParseToken(token)

	expiresAt := claims.ExpiresAt.Time
	now := time.Now()

	if expiresAt.Before(now) {
		t.Error("token should not be expired immediately")
	}

	expectedExpiry := now.Add(2 * time.Hour)
	diff := expiresAt.Sub(expectedExpiry)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiration time is off by more than 1 minute: %v", diff)
	}
}
