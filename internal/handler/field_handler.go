package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	fieldpkg "github.com/hitoshi/farmhand/internal/field"
	"github.com/hitoshi/farmhand/internal/middleware"
	"github.com/hitoshi/farmhand/internal/model"
)

// FieldServiceInterface は圃場ハンドラーが必要とする管理系サービスインターフェース。
type FieldServiceInterface interface {
	List(ctx context.Context) ([]*model.Field, error)
	Get(ctx context.Context, id int64) (*model.Field, error)
	Add(ctx context.Context, in fieldpkg.AddInput) (*model.Field, error)
	Update(ctx context.Context, id int64, in fieldpkg.UpdateInput) (*model.Field, error)
	Delete(ctx context.Context, id int64) error
}

// AllocationServiceInterface は圃場購入のサービスインターフェース。
type AllocationServiceInterface interface {
	Purchase(ctx context.Context, fieldID, buyerID int64) error
}

// PurchaseMetrics は購入結果のメトリクス記録インターフェース。nilの場合は記録しない。
type PurchaseMetrics interface {
	RecordPurchaseOutcome(outcome model.TransferOutcome)
}

// FieldHandler は圃場管理と購入のHTTPハンドラー。
type FieldHandler struct {
	service    FieldServiceInterface
	allocation AllocationServiceInterface
	metrics    PurchaseMetrics
}

// NewFieldHandler はFieldHandlerを生成する。
func NewFieldHandler(service FieldServiceInterface, allocation AllocationServiceInterface, metrics PurchaseMetrics) *FieldHandler {
	return &FieldHandler{
		service:    service,
		allocation: allocation,
		metrics:    metrics,
	}
}

// fieldRequest は圃場追加・編集リクエストのボディ。
type fieldRequest struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Size     float64 `json:"size"`
	Price    float64 `json:"price"`
	Status   string  `json:"status"`
}

// purchaseRequest は圃場購入リクエストのボディ。
// 購入者は認証済みトークンの本人であり、ボディでは指定できない。
type purchaseRequest struct {
	FieldID int64 `json:"field_id"`
}

// fieldResponse は圃場情報のAPIレスポンス。
type fieldResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Size     float64 `json:"size"`
	Price    float64 `json:"price"`
	Status   string  `json:"status"`
	OwnerID  *int64  `json:"user_id"`
}

// ListFields は圃場一覧を返す。
// GET /api/fields
func (h *FieldHandler) ListFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]fieldResponse, len(fields))
	for i, f := range fields {
		resp[i] = toFieldResponse(f)
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddField は圃場を追加する。管理者のみ実行できる。
// POST /api/fields
func (h *FieldHandler) AddField(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	field, err := h.service.Add(r.Context(), fieldpkg.AddInput{
		Name:     req.Name,
		Location: req.Location,
		Size:     req.Size,
		Price:    req.Price,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFieldResponse(field))
}

// UpdateField は圃場の表示属性を更新する。管理者のみ実行できる。
// PUT /api/fields/{id}
func (h *FieldHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("idが不正です"))
		return
	}

	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	field, err := h.service.Update(r.Context(), id, fieldpkg.UpdateInput{
		Name:     req.Name,
		Location: req.Location,
		Size:     req.Size,
		Price:    req.Price,
		Status:   model.FieldStatus(req.Status),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFieldResponse(field))
}

// DeleteField は圃場を削除する。管理者のみ実行できる。
// DELETE /api/fields/{id}
func (h *FieldHandler) DeleteField(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("idが不正です"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Purchase は圃場購入を処理する。
// POST /api/fields/purchase
func (h *FieldHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	buyerID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	if err := h.allocation.Purchase(r.Context(), req.FieldID, buyerID); err != nil {
		h.recordPurchase(err)
		handleServiceError(w, err)
		return
	}

	h.recordPurchase(nil)
	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "圃場を購入しました。",
	})
}

// recordPurchase は購入結果をメトリクスに記録する。
func (h *FieldHandler) recordPurchase(err error) {
	if h.metrics == nil {
		return
	}

	if err == nil {
		h.metrics.RecordPurchaseOutcome(model.TransferPurchased)
		return
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		return
	}
	switch apiErr.Code {
	case model.ErrCodeFieldAlreadyOwned:
		h.metrics.RecordPurchaseOutcome(model.TransferAlreadyOwned)
	case model.ErrCodeFieldNotFound:
		h.metrics.RecordPurchaseOutcome(model.TransferNotFound)
	}
}

// --- ヘルパー関数 ---

// toFieldResponse はmodel.FieldからAPIレスポンスに変換する。
func toFieldResponse(field *model.Field) fieldResponse {
	return fieldResponse{
		ID:       field.ID,
		Name:     field.Name,
		Location: field.Location,
		Size:     field.Size,
		Price:    field.Price,
		Status:   string(field.Status),
		OwnerID:  field.OwnerID,
	}
}

// parseIDParam はURLパスの{id}パラメータを数値として取り出す。
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// requireAdmin はリクエストが管理者によるものかを確認する。
// 管理者でない場合はFORBIDDENを書き込み、falseを返す。
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	role, err := middleware.RoleFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return false
	}
	if role != model.RoleAdmin {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return false
	}
	return true
}
