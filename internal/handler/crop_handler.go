package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/farmhand/internal/middleware"
	"github.com/hitoshi/farmhand/internal/model"
)

// CropServiceInterface は作付けハンドラーが必要とするサービスインターフェース。
type CropServiceInterface interface {
	List(ctx context.Context) ([]*model.Crop, error)
	Add(ctx context.Context, name, status string, userID int64) (*model.Crop, error)
	Update(ctx context.Context, id int64, name, status string) error
	Delete(ctx context.Context, id int64) error
}

// CropHandler は作付け管理のHTTPハンドラー。
type CropHandler struct {
	service CropServiceInterface
}

// NewCropHandler はCropHandlerを生成する。
func NewCropHandler(service CropServiceInterface) *CropHandler {
	return &CropHandler{service: service}
}

// cropRequest は作付け追加・編集リクエストのボディ。
type cropRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// cropResponse は作付け記録のAPIレスポンス。
type cropResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	UserID *int64 `json:"user_id"`
}

// ListCrops は作付け記録の一覧を返す。
// GET /api/crops
func (h *CropHandler) ListCrops(w http.ResponseWriter, r *http.Request) {
	crops, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]cropResponse, len(crops))
	for i, c := range crops {
		resp[i] = cropResponse{
			ID:     c.ID,
			Name:   c.Name,
			Status: c.Status,
			UserID: c.UserID,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddCrop は新しい作付け記録を登録する。記録者はトークンの本人。
// POST /api/crops
func (h *CropHandler) AddCrop(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req cropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	crop, err := h.service.Add(r.Context(), req.Name, req.Status, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cropResponse{
		ID:     crop.ID,
		Name:   crop.Name,
		Status: crop.Status,
		UserID: crop.UserID,
	})
}

// UpdateCrop は作付け記録を更新する。
// PUT /api/crops/{id}
func (h *CropHandler) UpdateCrop(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("idが不正です"))
		return
	}

	var req cropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	if err := h.service.Update(r.Context(), id, req.Name, req.Status); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "作付け記録を更新しました。",
	})
}

// DeleteCrop は作付け記録を削除する。
// DELETE /api/crops/{id}
func (h *CropHandler) DeleteCrop(w http.ResponseWriter, r *http.Request) {
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
