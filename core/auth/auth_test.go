package auth

import (
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse1" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !VerifyPassword("correct horse1", hash) {
		t.Error("expected matching password to verify")
	}
	if VerifyPassword("wrong password1", hash) {
		t.Error("expected mismatched password to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.GenerateToken(42, "neo")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := issuer.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "neo" {
		t.Errorf("expected username neo, got %q", claims.Username)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).GenerateToken(1, "neo")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := NewTokenIssuer("secret-b", time.Hour).ParseToken(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := NewTokenIssuer("secret", -time.Minute).GenerateToken(1, "neo")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := NewTokenIssuer("secret", time.Hour).ParseToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.io"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("expected %q to be valid, got %v", email, err)
		}
	}

	invalid := []string{"", "plain", "no@tld", "two@@example.com", "spa ce@example.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	valid := []string{"abcdefg1", "longer password 9"}
	for _, pw := range valid {
		if err := ValidatePassword(pw); err != nil {
			t.Errorf("expected %q to be valid, got %v", pw, err)
		}
	}

	invalid := []string{"", "short1", "nodigitshere", "12345678"}
	for _, pw := range invalid {
		if err := ValidatePassword(pw); err == nil {
			t.Errorf("expected %q to be invalid", pw)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"neo", "user_42", "abcdefghij0123456789"}
	for _, name := range valid {
		if err := ValidateUsername(name); err != nil {
			t.Errorf("expected %q to be valid, got %v", name, err)
		}
	}

	invalid := []string{"", "ab", "UPPER", "has space", "way_too_long_username_here", "dash-ed"}
	for _, name := range invalid {
		if err := ValidateUsername(name); err == nil {
			t.Errorf("expected %q to be invalid", name)
		}
	}
}

func TestValidateRegistrationCollectsAllFailures(t *testing.T) {
	errs := ValidateRegistration("bad", "short", "X")
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(errs), errs)
	}

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, field := range []string{"email", "password", "username"} {
		if !fields[field] {
			t.Errorf("missing error for field %q", field)
		}
	}

	if errs := ValidateRegistration("user@example.com", "abcdefg1", "neo"); len(errs) != 0 {
		t.Errorf("expected no errors for valid registration, got %v", errs)
	}
}
