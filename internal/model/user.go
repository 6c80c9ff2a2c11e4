// Package model はドメインモデルを定義する。
package model

import "time"

// Role はユーザーの権限区分を表す。
type Role string

const (
	// RoleAdmin は管理者。圃場の追加・編集・削除が可能。
	RoleAdmin Role = "Admin"
	// RoleFarmer は農家。登録時のデフォルト権限。
	RoleFarmer Role = "Farmer"
	// RoleUser は一般ユーザー。
	RoleUser Role = "User"
)

// IsValid はRoleが定義済みの値かどうかを返す。
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleFarmer, RoleUser:
		return true
	}
	return false
}

// User はサービス利用ユーザーを表す。
// PasswordHashはbcryptダイジェストであり、平文パスワードは保持しない。
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile はAPIレスポンスに公開可能なユーザー情報。
// PasswordHashを含まない。
type PublicProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public はUserから公開プロファイルを生成する。
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
