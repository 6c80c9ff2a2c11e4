package security

import "testing"

func TestTextSanitizer_RemovesHTMLTags(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"scriptタグ", `<script>alert("xss")</script>田中`, "田中"},
		{"imgタグのイベント属性", `<img src=x onerror=alert(1)>圃場A`, "圃場A"},
		{"装飾タグ", "<b>第一圃場</b>", "第一圃場"},
		{"プレーンテキスト", "トマト", "トマト"},
		{"前後の空白", "  田中太郎  ", "田中太郎"},
		{"空文字列", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SanitizeText(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextSanitizer_Idempotent(t *testing.T) {
	s := NewTextSanitizer()

	input := `<a href="https://example.com">リンク</a>付きの名前`
	once := s.SanitizeText(input)
	twice := s.SanitizeText(once)

	if once != twice {
		t.Errorf("sanitization is not idempotent: %q != %q", once, twice)
	}
}
