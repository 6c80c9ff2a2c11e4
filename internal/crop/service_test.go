package crop

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/farmhand/internal/model"
	"github.com/hitoshi/farmhand/internal/repository"
)

// --- モック定義 ---

// mockCropRepo はrepository.CropRepositoryのモック実装。
type mockCropRepo struct {
	listFn   func(ctx context.Context) ([]*model.Crop, error)
	createFn func(ctx context.Context, crop *model.Crop) error
	updateFn func(ctx context.Context, id int64, name, status string) (bool, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

func (m *mockCropRepo) List(ctx context.Context) ([]*model.Crop, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCropRepo) Create(ctx context.Context, crop *model.Crop) error {
	if m.createFn != nil {
		return m.createFn(ctx, crop)
	}
	return nil
}

func (m *mockCropRepo) Update(ctx context.Context, id int64, name, status string) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, name, status)
	}
	return true, nil
}

func (m *mockCropRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

var _ repository.CropRepository = (*mockCropRepo)(nil)

// passthroughSanitizer は入力をそのまま返すサニタイザー。
type passthroughSanitizer struct{}

func (passthroughSanitizer) SanitizeText(s string) string { return s }

// --- テスト ---

func TestService_Add_LinksRecorder(t *testing.T) {
	var created *model.Crop
	repo := &mockCropRepo{
		createFn: func(ctx context.Context, crop *model.Crop) error {
			crop.ID = 1
			created = crop
			return nil
		},
	}

	svc := NewService(repo, passthroughSanitizer{})

	crop, err := svc.Add(context.Background(), "トマト", "育成中", 7)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if crop.ID != 1 {
		t.Errorf("crop.ID = %d, want 1", crop.ID)
	}
	if created.UserID == nil || *created.UserID != 7 {
		t.Errorf("created.UserID = %v, want 7", created.UserID)
	}
}

func TestService_Add_EmptyNameRejected(t *testing.T) {
	svc := NewService(&mockCropRepo{}, passthroughSanitizer{})

	_, err := svc.Add(context.Background(), "", "育成中", 7)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *model.APIError", err)
	}
	if apiErr.Code != model.ErrCodeInvalidRequest {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeInvalidRequest)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	repo := &mockCropRepo{
		updateFn: func(ctx context.Context, id int64, name, status string) (bool, error) {
			return false, nil
		},
	}

	svc := NewService(repo, passthroughSanitizer{})

	err := svc.Update(context.Background(), 999, "トマト", "収穫済")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *model.APIError", err)
	}
	if apiErr.Code != model.ErrCodeCropNotFound {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeCropNotFound)
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := &mockCropRepo{
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			return false, nil
		},
	}

	svc := NewService(repo, passthroughSanitizer{})

	err := svc.Delete(context.Background(), 999)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *model.APIError", err)
	}
	if apiErr.Code != model.ErrCodeCropNotFound {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeCropNotFound)
	}
}

func TestService_List_PropagatesRepositoryError(t *testing.T) {
	repo := &mockCropRepo{
		listFn: func(ctx context.Context) ([]*model.Crop, error) {
			return nil, errors.New("connection reset")
		},
	}

	svc := NewService(repo, passthroughSanitizer{})

	if _, err := svc.List(context.Background()); err == nil {
		t.Error("List should propagate repository errors")
	}
}
