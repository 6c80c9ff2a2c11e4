// Package auth はパスワード認証、トークン発行・検証を提供する。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher はパスワードのハッシュ化と照合のインターフェース。
type PasswordHasher interface {
	// Hash は平文パスワードから不可逆なダイジェストを生成する。
	// ソルトはダイジェストごとにランダムに生成されるため、
	// 同一の平文からも毎回異なるダイジェストが得られる。
	Hash(password string) (string, error)

	// Verify は平文パスワードがダイジェストと一致するかを返す。
	// 比較はタイミング攻撃に耐性のある定数時間で行われる。
	Verify(password, digest string) bool
}

// BcryptHasher はbcryptによるPasswordHasherの実装。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher はBcryptHasherを生成する。
// costが範囲外の場合はbcrypt.DefaultCostを使用する。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash は平文パスワードからbcryptダイジェストを生成する。
// 空のパスワードは拒否する。
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(digest), nil
}

// Verify は平文パスワードがダイジェストと一致するかを返す。
// ダイジェストが不正な形式の場合も単に不一致として扱う。
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// compile-time interface check
var _ PasswordHasher = (*BcryptHasher)(nil)
