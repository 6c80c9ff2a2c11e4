package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDMiddleware_AssignsUniqueIDs(t *testing.T) {
	mw := NewRequestIDMiddleware()

	var contextID string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	headerID := w.Result().Header.Get("X-Request-ID")
	if headerID == "" {
		t.Fatal("X-Request-ID header should be set")
	}
	if contextID != headerID {
		t.Errorf("context ID = %q, header ID = %q, want equal", contextID, headerID)
	}
	if _, err := uuid.Parse(headerID); err != nil {
		t.Errorf("request ID %q is not a valid UUID: %v", headerID, err)
	}

	// 2リクエスト目は別のIDになる
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w2.Result().Header.Get("X-Request-ID") == headerID {
		t.Error("two requests should receive distinct request IDs")
	}
}

func TestRequestIDFromContext_NotSet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if got := RequestIDFromContext(req.Context()); got != "" {
		t.Errorf("RequestIDFromContext = %q, want empty string", got)
	}
}
