package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, "inspector", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Username != "inspector" {
		t.Errorf("Username = %q, expected inspector", claims.Username)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, expected admin", claims.Role)
	}
}

func TestParseToken_Rejections(t *testing.T) {
	token, err := GenerateToken("right-secret", "user", "viewer", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "wrong-secret", token},
		{"garbage token", "right-secret", "not.a.token"},
		{"empty token", "right-secret", ""},
	}

	for _, tt := range tests {
		if _, err := ParseToken(tt.secret, tt.token); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", "user", "viewer", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2" {
		t.Error("Hash must not equal the plaintext")
	}
	if !CheckPassword("hunter2", hash) {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword("wrong", hash) {
		t.Error("CheckPassword accepted a wrong password")
	}
}
