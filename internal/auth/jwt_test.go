package auth

import "testing"

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("user-123", "test@example.com", RoleContributor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, email, role, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if userID != "user-123" || email != "test@example.com" || role != RoleContributor {
		t.Fatalf("claims round-trip failed: %s %s %s", userID, email, role)
	}
}

func TestGenerateTokenRejectsEmptyUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := GenerateToken("", "test@example.com", RoleContributor); err == nil {
		t.Fatal("expected error for empty userID")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, _, _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
