package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/farmhand/internal/model"
)

func TestJWTIssuer_IssueAndVerify(t *testing.T) {
	issuer, err := NewJWTIssuer("test-secret-key", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTIssuer returned error: %v", err)
	}

	token, expiresAt, err := issuer.Issue(42, model.RoleFarmer)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned an empty token")
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("expiresAt = %v, want a future time", expiresAt)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("claims.UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != model.RoleFarmer {
		t.Errorf("claims.Role = %q, want %q", claims.Role, model.RoleFarmer)
	}
}

func TestJWTIssuer_ExpiredToken(t *testing.T) {
	issuer, err := NewJWTIssuer("test-secret-key", 1*time.Millisecond)
	if err != nil {
		t.Fatalf("NewJWTIssuer returned error: %v", err)
	}

	token, _, err := issuer.Issue(1, model.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// 有効期限を過ぎるまで待つ
	time.Sleep(10 * time.Millisecond)

	_, err = issuer.Verify(token)
	if err == nil {
		t.Fatal("Verify should fail for an expired token")
	}

	// 期限切れは署名不正と区別される
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *model.APIError", err)
	}
	if apiErr.Code != model.ErrCodeTokenExpired {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeTokenExpired)
	}
}

func TestJWTIssuer_TamperedToken(t *testing.T) {
	issuer, err := NewJWTIssuer("test-secret-key", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTIssuer returned error: %v", err)
	}

	token, _, err := issuer.Issue(1, model.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// ペイロード部分を改ざんする
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token parts = %d, want 3", len(parts))
	}
	tampered := parts[0] + ".eyJ1aWQiOjk5OX0" + "." + parts[2]

	_, err = issuer.Verify(tampered)
	if err == nil {
		t.Fatal("Verify should fail for a tampered token")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *model.APIError", err)
	}
	if apiErr.Code != model.ErrCodeTokenInvalid {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeTokenInvalid)
	}
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	issuerA, err := NewJWTIssuer("secret-a", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTIssuer returned error: %v", err)
	}
	issuerB, err := NewJWTIssuer("secret-b", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTIssuer returned error: %v", err)
	}

	token, _, err := issuerA.Issue(1, model.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// 別の鍵で署名されたトークンは受理しない
	if _, err := issuerB.Verify(token); err == nil {
		t.Error("Verify should fail for a token signed with a different secret")
	}
}

func TestNewJWTIssuer_EmptySecretRejected(t *testing.T) {
	if _, err := NewJWTIssuer("", time.Hour); err == nil {
		t.Error("NewJWTIssuer(\"\") should return an error")
	}
}

func TestNewJWTIssuer_NonPositiveExpiryRejected(t *testing.T) {
	if _, err := NewJWTIssuer("secret", 0); err == nil {
		t.Error("NewJWTIssuer with zero expiry should return an error")
	}
	if _, err := NewJWTIssuer("secret", -time.Hour); err == nil {
		t.Error("NewJWTIssuer with negative expiry should return an error")
	}
}
