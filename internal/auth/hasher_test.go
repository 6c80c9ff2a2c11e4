package auth

import (
	"strings"
	"testing"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(4) // テストでは最小コストで高速化

	digest, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if digest == "correct horse battery staple" {
		t.Error("digest must not equal the plaintext password")
	}

	if !h.Verify("correct horse battery staple", digest) {
		t.Error("Verify = false for the correct password, want true")
	}

	if h.Verify("wrong password", digest) {
		t.Error("Verify = true for a wrong password, want false")
	}
}

func TestBcryptHasher_DistinctDigestsForSamePassword(t *testing.T) {
	h := NewBcryptHasher(4)

	d1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	d2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	// ソルトがランダムなため、同一平文でもダイジェストは毎回異なる
	if d1 == d2 {
		t.Error("two digests of the same password are identical, want distinct")
	}

	if !h.Verify("same-password", d1) || !h.Verify("same-password", d2) {
		t.Error("both digests should verify against the original password")
	}
}

func TestBcryptHasher_EmptyPasswordRejected(t *testing.T) {
	h := NewBcryptHasher(4)

	if _, err := h.Hash(""); err == nil {
		t.Error("Hash(\"\") should return an error")
	}
}

func TestBcryptHasher_VerifyMalformedDigest(t *testing.T) {
	h := NewBcryptHasher(4)

	// 不正な形式のダイジェストは単に不一致として扱う
	if h.Verify("password", "not-a-bcrypt-digest") {
		t.Error("Verify = true for a malformed digest, want false")
	}
	if h.Verify("password", "") {
		t.Error("Verify = true for an empty digest, want false")
	}
}

func TestNewBcryptHasher_OutOfRangeCostFallsBack(t *testing.T) {
	// 範囲外のコストはデフォルトコストにフォールバックする
	h := NewBcryptHasher(99)

	digest, err := h.Hash("password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Errorf("digest = %q, want bcrypt format", digest)
	}
}
