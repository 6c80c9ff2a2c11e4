// Package crop は作付け管理のドメインロジックを提供する。
package crop

import (
	"context"
	"fmt"

	"github.com/hitoshi/farmhand/internal/model"
	"github.com/hitoshi/farmhand/internal/repository"
)

// TextSanitizer はユーザー入力の表示文字列を無害化するインターフェース。
type TextSanitizer interface {
	SanitizeText(s string) string
}

// Service は作付け管理のサービス層。
type Service struct {
	crops     repository.CropRepository
	sanitizer TextSanitizer
}

// NewService はServiceを生成する。
func NewService(crops repository.CropRepository, sanitizer TextSanitizer) *Service {
	return &Service{
		crops:     crops,
		sanitizer: sanitizer,
	}
}

// List は全作付け記録を返す。
func (s *Service) List(ctx context.Context) ([]*model.Crop, error) {
	crops, err := s.crops.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	return crops, nil
}

// Add は新しい作付け記録を登録する。userIDは記録者として紐付けられる。
func (s *Service) Add(ctx context.Context, name, status string, userID int64) (*model.Crop, error) {
	if name == "" {
		return nil, model.NewInvalidRequestError("nameは必須です")
	}

	crop := &model.Crop{
		Name:   s.sanitizer.SanitizeText(name),
		Status: s.sanitizer.SanitizeText(status),
		UserID: &userID,
	}

	if err := s.crops.Create(ctx, crop); err != nil {
		return nil, fmt.Errorf("failed to create crop: %w", err)
	}

	return crop, nil
}

// Update は作付け記録の名前とステータスを更新する。
// 対象が存在しない場合はCROP_NOT_FOUND。
func (s *Service) Update(ctx context.Context, id int64, name, status string) error {
	if name == "" {
		return model.NewInvalidRequestError("nameは必須です")
	}

	updated, err := s.crops.Update(ctx, id, s.sanitizer.SanitizeText(name), s.sanitizer.SanitizeText(status))
	if err != nil {
		return fmt.Errorf("failed to update crop: %w", err)
	}
	if !updated {
		return model.NewCropNotFoundError(id)
	}
	return nil
}

// Delete は指定IDの作付け記録を削除する。対象が存在しない場合はCROP_NOT_FOUND。
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.crops.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete crop: %w", err)
	}
	if !deleted {
		return model.NewCropNotFoundError(id)
	}
	return nil
}
