// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/farmhand/internal/model"
)

// ErrDuplicateEmail はメールアドレスの一意制約違反を示す。
// サービス層でAPIErrorに変換される。
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	// 照合は大文字小文字を区別する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成し、採番されたIDをuser.IDに設定する。
	// メールアドレスが既に存在する場合はErrDuplicateEmailを返す。
	// 一意性はDBの一意制約で保証されるため、同一メールでの並行登録は片方だけ成功する。
	Create(ctx context.Context, user *model.User) error

	// UpdatePassword は指定ユーザーのパスワードハッシュを更新する。
	// 更新対象が存在しない場合はfalseを返す。
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (bool, error)

	// List は全ユーザーを返す。
	List(ctx context.Context) ([]*model.User, error)
}

// FieldRepository は圃場データの永続化インターフェース。
// 単独所有インバリアントを条件付き更新で保証する台帳でもある。
type FieldRepository interface {
	// FindByID は指定IDの圃場を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Field, error)

	// List は全圃場を返す。
	List(ctx context.Context) ([]*model.Field, error)

	// Create は圃場を作成し、採番されたIDをfield.IDに設定する。
	Create(ctx context.Context, field *model.Field) error

	// Update は圃場の表示属性を更新する。対象が存在しない場合はfalseを返す。
	// 管理者用の編集経路であり、所有権インバリアントの対象外。
	Update(ctx context.Context, field *model.Field) (bool, error)

	// Delete は指定IDの圃場を削除する。対象が存在しない場合はfalseを返す。
	Delete(ctx context.Context, id int64) (bool, error)

	// TryTransfer は所有者未設定の圃場に限り、所有者とステータスを
	// 単一の条件付きUPDATEで原子的に設定する。
	// 同一圃場への並行呼び出しでは必ず1件だけTransferPurchasedになる。
	TryTransfer(ctx context.Context, fieldID, buyerID int64) (model.TransferOutcome, error)
}

// CropRepository は作付けデータの永続化インターフェース。
type CropRepository interface {
	// List は全作付け記録を返す。
	List(ctx context.Context) ([]*model.Crop, error)

	// Create は作付け記録を作成し、採番されたIDをcrop.IDに設定する。
	Create(ctx context.Context, crop *model.Crop) error

	// Update は作付け記録の名前とステータスを更新する。
	// 対象が存在しない場合はfalseを返す。
	Update(ctx context.Context, id int64, name, status string) (bool, error)

	// Delete は指定IDの作付け記録を削除する。対象が存在しない場合はfalseを返す。
	Delete(ctx context.Context, id int64) (bool, error)
}
