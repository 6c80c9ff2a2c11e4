package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, field, crop, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeDuplicateEmail     = "DUPLICATE_EMAIL"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeFieldNotFound      = "FIELD_NOT_FOUND"
	ErrCodeFieldAlreadyOwned  = "FIELD_ALREADY_OWNED"
	ErrCodeCropNotFound       = "CROP_NOT_FOUND"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeForbidden          = "FORBIDDEN"
)

// NewInvalidRequestError は必須フィールド欠落などのリクエスト不正エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("リクエストが不正です: %s", reason),
		Category: "validation",
		Action:   "必須フィールドが揃っているか確認してください。",
	}
}

// NewDuplicateEmailError はメールアドレス重複エラーを生成する。
func NewDuplicateEmailError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateEmail,
		Message:  fmt.Sprintf("このメールアドレスは既に登録されています: %s", email),
		Category: "auth",
		Action:   "別のメールアドレスで登録するか、ログインしてください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "メールアドレスまたはユーザーIDを確認してください。",
	}
}

// NewInvalidCredentialsError はパスワード不一致エラーを生成する。
// メッセージからはどの認証要素が誤っていたかを判別できないようにする。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "認証情報が正しくありません。",
		Category: "auth",
		Action:   "メールアドレスとパスワードを確認してください。",
	}
}

// NewFieldNotFoundError は圃場が見つからない場合のエラーを生成する。
func NewFieldNotFoundError(fieldID int64) *APIError {
	return &APIError{
		Code:     ErrCodeFieldNotFound,
		Message:  fmt.Sprintf("指定された圃場が見つかりません: %d", fieldID),
		Category: "field",
		Action:   "圃場IDを確認してください。",
	}
}

// NewFieldAlreadyOwnedError は購入済み圃場への購入試行エラーを生成する。
func NewFieldAlreadyOwnedError(fieldID int64) *APIError {
	return &APIError{
		Code:     ErrCodeFieldAlreadyOwned,
		Message:  fmt.Sprintf("この圃場は既に購入されています: %d", fieldID),
		Category: "field",
		Action:   "購入可能な圃場の一覧から選び直してください。",
	}
}

// NewCropNotFoundError は作付け記録が見つからない場合のエラーを生成する。
func NewCropNotFoundError(cropID int64) *APIError {
	return &APIError{
		Code:     ErrCodeCropNotFound,
		Message:  fmt.Sprintf("指定された作付け記録が見つかりません: %d", cropID),
		Category: "crop",
		Action:   "作付けIDを確認してください。",
	}
}

// NewTokenInvalidError は署名不正・改ざんされたトークンのエラーを生成する。
func NewTokenInvalidError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenInvalid,
		Message:  "トークンが不正です。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewTokenExpiredError は期限切れトークンのエラーを生成する。
// 署名不正とは区別し、再ログインを促す。
func NewTokenExpiredError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenExpired,
		Message:  "トークンの有効期限が切れています。",
		Category: "auth",
		Action:   "再度ログインしてください。",
	}
}

// NewForbiddenError は権限不足エラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "この操作を行う権限がありません。",
		Category: "auth",
		Action:   "管理者権限が必要な操作です。",
	}
}
