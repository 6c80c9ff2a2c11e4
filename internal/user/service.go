// Package user はユーザー一覧のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"

	"github.com/hitoshi/farmhand/internal/model"
	"github.com/hitoshi/farmhand/internal/repository"
)

// Service はユーザー管理のサービス層。
type Service struct {
	users repository.UserRepository
}

// NewService はServiceを生成する。
func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// List は全ユーザーの公開プロファイルを返す。
// パスワードハッシュはサービス境界の外に出さない。
func (s *Service) List(ctx context.Context) ([]model.PublicProfile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]model.PublicProfile, len(users))
	for i, u := range users {
		profiles[i] = u.Public()
	}
	return profiles, nil
}

// Get は指定IDのユーザーの公開プロファイルを返す。
// 見つからない場合はUSER_NOT_FOUND。
func (s *Service) Get(ctx context.Context, id int64) (*model.PublicProfile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	profile := user.Public()
	return &profile, nil
}
