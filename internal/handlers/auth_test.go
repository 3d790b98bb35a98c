package handlers

import "testing"

func TestValidateRegister_ShortPassword(t *testing.T) {
	// 5-character password must be rejected locally, before any DB work.
	errs := validateRegister("Anna", "anna@example.com", "12345")

	msgs := errs["password"]
	if len(msgs) != 1 || msgs[0] != "Password must be at least 6 characters long" {
		t.Errorf("expected exact short-password message, got %v", msgs)
	}
}

func TestValidateRegister_Valid(t *testing.T) {
	errs := validateRegister("Anna", "anna@example.com", "123456")
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateRegister_MissingFields(t *testing.T) {
	errs := validateRegister("", "", "")

	for _, field := range []string{"name", "email", "password"} {
		if len(errs[field]) == 0 {
			t.Errorf("expected an error for %s", field)
		}
	}
}

func TestValidateRegister_BadEmail(t *testing.T) {
	errs := validateRegister("Anna", "not-an-email", "123456")
	if len(errs["email"]) == 0 {
		t.Error("expected an email format error")
	}
}
