package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/farmhand/internal/model"
	"github.com/hitoshi/farmhand/internal/repository"
)

// --- モック定義 ---

// mockUserRepo はrepository.UserRepositoryのモック実装。
type mockUserRepo struct {
	findByIDFn func(ctx context.Context, id int64) (*model.User, error)
	listFn     func(ctx context.Context) ([]*model.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) (bool, error) {
	return true, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

// --- テスト ---

func TestService_List_ReturnsPublicProfilesOnly(t *testing.T) {
	repo := &mockUserRepo{
		listFn: func(ctx context.Context) ([]*model.User, error) {
			return []*model.User{
				{ID: 1, Name: "田中太郎", Email: "tanaka@example.com", PasswordHash: "$2a$10$secret", Role: model.RoleFarmer},
				{ID: 2, Name: "管理者", Email: "admin@example.com", PasswordHash: "$2a$10$secret2", Role: model.RoleAdmin},
			}, nil
		},
	}

	svc := NewService(repo)

	profiles, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(profiles) != 2 {
		t.Fatalf("len(profiles) = %d, want 2", len(profiles))
	}

	// 公開プロファイルのJSONにパスワードハッシュが漏れないこと
	encoded, err := json.Marshal(profiles)
	if err != nil {
		t.Fatalf("json.Marshal returned error: %v", err)
	}
	if strings.Contains(string(encoded), "secret") {
		t.Errorf("serialized profiles leak the password hash: %s", encoded)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, nil
		},
	}

	svc := NewService(repo)

	_, err := svc.Get(context.Background(), 999)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *model.APIError", err)
	}
	if apiErr.Code != model.ErrCodeUserNotFound {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeUserNotFound)
	}
}

func TestService_Get_Success(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "田中太郎", Email: "tanaka@example.com", Role: model.RoleFarmer}, nil
		},
	}

	svc := NewService(repo)

	profile, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if profile.ID != 7 {
		t.Errorf("profile.ID = %d, want 7", profile.ID)
	}
}
