package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/farmhand/internal/model"
	"github.com/hitoshi/farmhand/internal/repository"
)

// TextSanitizer はユーザー入力の表示文字列を無害化するインターフェース。
type TextSanitizer interface {
	SanitizeText(s string) string
}

// RegisterInput はユーザー登録の入力を表す。
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role // 省略時はRoleFarmer
}

// LoginResult はログイン成功時の結果を表す。
// パスワードハッシュは含まれない。
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      model.PublicProfile
}

// Service は認証に関するビジネスロジックを提供する。
// 登録・ログイン・パスワード変更のそれぞれが、クレデンシャルストアへの
// 操作をちょうど1回だけ行う。
type Service struct {
	users     repository.UserRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	sanitizer TextSanitizer
}

// NewService はServiceを生成する。
func NewService(
	users repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	sanitizer TextSanitizer,
) *Service {
	return &Service{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		sanitizer: sanitizer,
	}
}

// Register は新規ユーザーを登録する。
// メールアドレスが既に存在する場合はDUPLICATE_EMAILを返す。
// 自動ログインは行わず、作成されたユーザーの公開プロファイルを返す。
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, model.NewInvalidRequestError("name, email, passwordは必須です")
	}

	role := in.Role
	if role == "" {
		role = model.RoleFarmer
	}
	if !role.IsValid() {
		return nil, model.NewInvalidRequestError(fmt.Sprintf("不明なロールです: %s", role))
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		// ハッシュ化の失敗を「パスワードなし」として扱ってはならない
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         s.sanitizer.SanitizeText(in.Name),
		Email:        in.Email,
		PasswordHash: digest,
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, model.NewDuplicateEmailError(in.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("new user registered",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// Login はメールアドレスとパスワードでユーザーを認証し、トークンを発行する。
// 未知のメールアドレスはUSER_NOT_FOUND、パスワード不一致はINVALID_CREDENTIALS。
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, model.NewInvalidRequestError("emailとpasswordは必須です")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, model.NewInvalidCredentialsError()
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in", slog.Int64("user_id", user.ID))

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	}, nil
}

// ChangePassword は指定ユーザーのパスワードを新しいものに差し替える。
// 対象ユーザーが存在しない場合はUSER_NOT_FOUNDを返す。更新0件を
// 成功として扱うことはない。
func (s *Service) ChangePassword(ctx context.Context, userID int64, newPassword string) error {
	if userID <= 0 || newPassword == "" {
		return model.NewInvalidRequestError("user_idとnew_passwordは必須です")
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	updated, err := s.users.UpdatePassword(ctx, userID, digest)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if !updated {
		return model.NewUserNotFoundError()
	}

	slog.Info("password changed", slog.Int64("user_id", userID))
	return nil
}
