// Package allocation は圃場購入ワークフローのドメインロジックを提供する。
package allocation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/farmhand/internal/model"
	"github.com/hitoshi/farmhand/internal/repository"
)

// Service は圃場購入のサービス層。
// 所有権台帳（FieldRepository）の条件付き更新に購入処理を委譲し、
// 結果をエラータクソノミに変換する。
type Service struct {
	fields repository.FieldRepository
}

// NewService はServiceを生成する。
func NewService(fields repository.FieldRepository) *Service {
	return &Service{fields: fields}
}

// Purchase は指定圃場の所有権を購入者に移転する。
//
// 移転は台帳の単一の条件付きUPDATEで行われるため、同一圃場への並行購入では
// 必ず1件だけが成功し、残りはFIELD_ALREADY_OWNEDになる。所有者とステータスは
// 同時に変わり、片方だけが更新された状態が観測されることはない。
func (s *Service) Purchase(ctx context.Context, fieldID, buyerID int64) error {
	if fieldID <= 0 || buyerID <= 0 {
		return model.NewInvalidRequestError("field_idとuser_idは必須です")
	}

	outcome, err := s.fields.TryTransfer(ctx, fieldID, buyerID)
	if err != nil {
		return fmt.Errorf("failed to transfer field: %w", err)
	}

	switch outcome {
	case model.TransferPurchased:
		slog.Info("field purchased",
			slog.Int64("field_id", fieldID),
			slog.Int64("buyer_id", buyerID),
		)
		return nil
	case model.TransferAlreadyOwned:
		return model.NewFieldAlreadyOwnedError(fieldID)
	case model.TransferNotFound:
		return model.NewFieldNotFoundError(fieldID)
	default:
		return fmt.Errorf("unexpected transfer outcome: %v", outcome)
	}
}
