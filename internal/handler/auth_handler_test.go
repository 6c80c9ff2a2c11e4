package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/farmhand/internal/auth"
	"github.com/hitoshi/farmhand/internal/model"
)

// --- モック定義 ---

// mockAuthService はAuthServiceInterfaceのモック実装。
type mockAuthService struct {
	registerFn       func(ctx context.Context, in auth.RegisterInput) (*model.User, error)
	loginFn          func(ctx context.Context, email, password string) (*auth.LoginResult, error)
	changePasswordFn func(ctx context.Context, userID int64, newPassword string) error
}

func (m *mockAuthService) Register(ctx context.Context, in auth.RegisterInput) (*model.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, in)
	}
	return &model.User{ID: 1}, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*auth.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return &auth.LoginResult{Token: "token"}, nil
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int64, newPassword string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, newPassword)
	}
	return nil
}

var _ AuthServiceInterface = (*mockAuthService)(nil)

// mockAuthMetrics は認証メトリクスの呼び出し回数を記録する。
type mockAuthMetrics struct {
	registrations int
	loginSuccess  int
	loginFailure  int
}

func (m *mockAuthMetrics) RecordRegistration() { m.registrations++ }
func (m *mockAuthMetrics) RecordLoginSuccess() { m.loginSuccess++ }
func (m *mockAuthMetrics) RecordLoginFailure() { m.loginFailure++ }

var _ AuthMetrics = (*mockAuthMetrics)(nil)

// --- POST /api/auth/register テスト ---

func TestAuthHandler_Register_Success(t *testing.T) {
	var gotInput auth.RegisterInput
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, in auth.RegisterInput) (*model.User, error) {
			gotInput = in
			return &model.User{ID: 1, Name: in.Name, Email: in.Email, Role: model.RoleFarmer}, nil
		},
	}
	metrics := &mockAuthMetrics{}

	h := NewAuthHandler(svc, metrics)

	body := `{"name":"田中太郎","email":"tanaka@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if gotInput.Email != "tanaka@example.com" {
		t.Errorf("input.Email = %q, want %q", gotInput.Email, "tanaka@example.com")
	}
	if metrics.registrations != 1 {
		t.Errorf("registrations = %d, want 1", metrics.registrations)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, in auth.RegisterInput) (*model.User, error) {
			return nil, model.NewDuplicateEmailError(in.Email)
		},
	}
	metrics := &mockAuthMetrics{}

	h := NewAuthHandler(svc, metrics)

	body := `{"name":"田中太郎","email":"taken@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	var errResp apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Code != model.ErrCodeDuplicateEmail {
		t.Errorf("error code = %q, want %q", errResp.Code, model.ErrCodeDuplicateEmail)
	}

	if metrics.registrations != 0 {
		t.Errorf("registrations = %d, want 0", metrics.registrations)
	}
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Register(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

// --- POST /api/auth/login テスト ---

func TestAuthHandler_Login_Success(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*auth.LoginResult, error) {
			return &auth.LoginResult{
				Token:     "signed-token",
				ExpiresAt: expiresAt,
				User:      model.PublicProfile{ID: 7, Name: "田中太郎", Email: email, Role: model.RoleFarmer},
			}, nil
		},
	}
	metrics := &mockAuthMetrics{}

	h := NewAuthHandler(svc, metrics)

	body := `{"email":"tanaka@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var loginResp loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if loginResp.Token != "signed-token" {
		t.Errorf("token = %q, want %q", loginResp.Token, "signed-token")
	}
	if loginResp.User.ID != 7 {
		t.Errorf("user.ID = %d, want 7", loginResp.User.ID)
	}

	if metrics.loginSuccess != 1 {
		t.Errorf("loginSuccess = %d, want 1", metrics.loginSuccess)
	}
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*auth.LoginResult, error) {
			return nil, model.NewUserNotFoundError()
		},
	}
	metrics := &mockAuthMetrics{}

	h := NewAuthHandler(svc, metrics)

	body := `{"email":"unknown@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	if metrics.loginFailure != 1 {
		t.Errorf("loginFailure = %d, want 1", metrics.loginFailure)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*auth.LoginResult, error) {
			return nil, model.NewInvalidCredentialsError()
		},
	}
	metrics := &mockAuthMetrics{}

	h := NewAuthHandler(svc, metrics)

	body := `{"email":"tanaka@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if metrics.loginFailure != 1 {
		t.Errorf("loginFailure = %d, want 1", metrics.loginFailure)
	}
}

func TestAuthHandler_Login_InternalErrorNotCountedAsFailure(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*auth.LoginResult, error) {
			return nil, errors.New("connection reset")
		},
	}
	metrics := &mockAuthMetrics{}

	h := NewAuthHandler(svc, metrics)

	body := `{"email":"tanaka@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
	// 内部エラーはログイン失敗に数えない
	if metrics.loginFailure != 0 {
		t.Errorf("loginFailure = %d, want 0", metrics.loginFailure)
	}
}

// --- PUT /api/auth/change-password テスト ---

func TestAuthHandler_ChangePassword_Success(t *testing.T) {
	var gotUserID int64
	svc := &mockAuthService{
		changePasswordFn: func(ctx context.Context, userID int64, newPassword string) error {
			gotUserID = userID
			return nil
		},
	}

	h := NewAuthHandler(svc, nil)

	body := `{"user_id":7,"new_password":"new-secret"}`
	req := httptest.NewRequest(http.MethodPut, "/api/auth/change-password", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.ChangePassword(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if gotUserID != 7 {
		t.Errorf("userID = %d, want 7", gotUserID)
	}
}

func TestAuthHandler_ChangePassword_UserNotFound(t *testing.T) {
	svc := &mockAuthService{
		changePasswordFn: func(ctx context.Context, userID int64, newPassword string) error {
			return model.NewUserNotFoundError()
		},
	}

	h := NewAuthHandler(svc, nil)

	body := `{"user_id":999,"new_password":"new-secret"}`
	req := httptest.NewRequest(http.MethodPut, "/api/auth/change-password", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.ChangePassword(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestAuthHandler_ChangePassword_MissingFields(t *testing.T) {
	svc := &mockAuthService{
		changePasswordFn: func(ctx context.Context, userID int64, newPassword string) error {
			return model.NewInvalidRequestError("user_idとnew_passwordは必須です")
		},
	}

	h := NewAuthHandler(svc, nil)

	body := `{"user_id":0,"new_password":""}`
	req := httptest.NewRequest(http.MethodPut, "/api/auth/change-password", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.ChangePassword(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}
