package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if hashed == "secret123" {
		t.Error("hash must not equal the plaintext")
	}
	if !CheckPassword(hashed, "secret123") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hashed, "wrong") {
		t.Error("expected mismatching password to fail")
	}
}
