// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizer はユーザーが入力する表示文字列（ユーザー名、圃場名、
// 作付け名など）をサニタイズし、格納型XSSからAPI利用側を保護する。
// bluemondayのStrictPolicyを使用し、HTMLタグを一切通過させない。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer はプレーンテキストとして扱うべき入力のサニタイズ機能を提供する。
// 保存前のユーザー名・圃場名・作付け名・場所などの表示文字列に使用する。
type TextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerを生成する。
// StrictPolicyにより全てのHTML要素と属性が除去される。
func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// SanitizeText は入力からHTMLタグを除去し、前後の空白を取り除いて返す。
// 同一入力に対して常に同一出力を返す（冪等）。
func (s *TextSanitizer) SanitizeText(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
