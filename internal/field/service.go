// Package field は圃場管理のドメインロジックを提供する。
//
// ここでの追加・編集・削除は管理者用の経路であり、購入による所有権移転
// （allocationパッケージ）とは独立している。編集経路は所有者カラムに
// 触れないため、単独所有インバリアントを壊さない。
package field

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

// AddInput は圃場追加の入力を表す。
type AddInput struct {
	Name     string
	Location string
	Size     float64
	Price    float64
}

// UpdateInput は圃場編集の入力を表す。
type UpdateInput struct {
	Name     string
	Location string
	Size     float64
	Price    float64
	Status   model.FieldStatus
}

// Service は圃場管理のサービス層。
type Service struct {
	fields    repository.FieldRepository
	sanitizer TextSanitizer
}

// NewService はServiceを生成する。
func NewService(fields repository.FieldRepository, sanitizer TextSanitizer) *Service {
	return &Service{
		fields:    fields,
		sanitizer: sanitizer,
	}
}

// List は全圃場を返す。
func (s *Service) List(ctx context.Context) ([]*model.Field, error) {
	fields, err := s.fields.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}
	return fields, nil
}

// Get は指定IDの圃場を返す。見つからない場合はFIELD_NOT_FOUND。
func (s *Service) Get(ctx context.Context, id int64) (*model.Field, error) {
	field, err := s.fields.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find field: %w", err)
	}
	if field == nil {
		return nil, model.NewFieldNotFoundError(id)
	}
	return field, nil
}

// Add は新しい圃場を未所有・Activeステータスで登録する。
func (s *Service) Add(ctx context.Context, in AddInput) (*model.Field, error) {
	if in.Name == "" {
		return nil, model.NewInvalidRequestError("nameは必須です")
	}

	field := &model.Field{
		Name:     s.sanitizer.SanitizeText(in.Name),
		Location: s.sanitizer.SanitizeText(in.Location),
		Size:     in.Size,
		Price:    in.Price,
		Status:   model.FieldStatusActive,
	}

	if err := s.fields.Create(ctx, field); err != nil {
		return nil, fmt.Errorf("failed to create field: %w", err)
	}

	return field, nil
}

// Update は圃場の表示属性を更新する。対象が存在しない場合はFIELD_NOT_FOUND。
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*model.Field, error) {
	if in.Name == "" {
		return nil, model.NewInvalidRequestError("nameは必須です")
	}

	field := &model.Field{
		ID:       id,
		Name:     s.sanitizer.SanitizeText(in.Name),
		Location: s.sanitizer.SanitizeText(in.Location),
		Size:     in.Size,
		Price:    in.Price,
		Status:   in.Status,
	}

	updated, err := s.fields.Update(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("failed to update field: %w", err)
	}
	if !updated {
		return nil, model.NewFieldNotFoundError(id)
	}

	// 更新後の状態（所有者カラムを含む）を取り直して返す
	return s.Get(ctx, id)
}

// Delete は指定IDの圃場を削除する。対象が存在しない場合はFIELD_NOT_FOUND。
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.fields.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete field: %w", err)
	}
	if !deleted {
		return model.NewFieldNotFoundError(id)
	}
	return nil
}
