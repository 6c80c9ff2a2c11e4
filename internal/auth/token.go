package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/farmhand/internal/model"
)

// Claims はセッショントークンに含まれる主張を表す。
// サーバー側に状態を持たず、署名と有効期限のみで検証される。
type Claims struct {
	UserID int64      `json:"uid"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer はセッショントークンの発行と検証のインターフェース。
type TokenIssuer interface {
	// Issue は{ユーザーID, ロール}に紐付くトークンを発行し、有効期限とともに返す。
	Issue(userID int64, role model.Role) (string, time.Time, error)

	// Verify はトークンの署名と有効期限を検証し、含まれる主張を返す。
	// 期限切れはTOKEN_EXPIRED、署名不正・改ざんはTOKEN_INVALIDとして区別される。
	Verify(tokenString string) (*Claims, error)
}

// JWTIssuer はHMAC-SHA256署名のJWTによるTokenIssuerの実装。
type JWTIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewJWTIssuer はJWTIssuerを生成する。
// 署名鍵は起動時に設定から注入され、以後変更されない。
// 空の鍵は推測可能なデフォルトへのフォールバックを防ぐため拒否する。
func NewJWTIssuer(secret string, expiry time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token signing secret must not be empty")
	}
	if expiry <= 0 {
		return nil, fmt.Errorf("token expiry must be positive: %s", expiry)
	}

	return &JWTIssuer{
		secret: []byte(secret),
		expiry: expiry,
	}, nil
}

// Issue は{ユーザーID, ロール}に紐付くトークンを発行する。
func (i *JWTIssuer) Issue(userID int64, role model.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.expiry)

	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify はトークンの署名と有効期限を検証する。
func (i *JWTIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})

	if err != nil {
		// 期限切れは署名不正と区別して返す
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.NewTokenExpiredError()
		}
		return nil, model.NewTokenInvalidError()
	}

	if !token.Valid {
		return nil, model.NewTokenInvalidError()
	}

	return claims, nil
}

// compile-time interface check
var _ TokenIssuer = (*JWTIssuer)(nil)
