package utils

import "testing"

func TestSignAndParseJWT(t *testing.T) {
	token, err := SignJWT("test-secret", "user-123", 60)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	claims, err := ParseJWT("test-secret", token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("expected uid user-123, got %s", claims.UserID)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := SignJWT("test-secret", "user-123", 60)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	if _, err := ParseJWT("other-secret", token); err == nil {
		t.Error("expected parse failure with wrong secret")
	}
}

func TestParseJWT_Garbage(t *testing.T) {
	if _, err := ParseJWT("test-secret", "not-a-token"); err == nil {
		t.Error("expected parse failure for malformed token")
	}
}
