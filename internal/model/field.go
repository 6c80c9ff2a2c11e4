package model

import "time"

// FieldStatus は圃場の状態を表す。
type FieldStatus string

const (
	// FieldStatusActive は購入可能な状態。所有者はいない。
	FieldStatusActive FieldStatus = "Active"
	// FieldStatusOccupied は購入済みの状態。所有者が設定されている。
	FieldStatusOccupied FieldStatus = "Occupied"
	// FieldStatusMaintenance は整備中の状態。管理者が設定する表示用ステータス。
	FieldStatusMaintenance FieldStatus = "Maintenance"
)

// Field は圃場を表す。
// OwnerIDは未購入の間nilであり、購入によって一度だけ設定される。
// 購入経路ではnil → 購入者ID以外の遷移は起こらない。
type Field struct {
	ID        int64
	Name      string
	Location  string
	Size      float64
	Price     float64
	Status    FieldStatus
	OwnerID   *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransferOutcome は所有権移転の結果を表す。
type TransferOutcome int

const (
	// TransferPurchased は条件付き更新に成功し、所有権を獲得したことを示す。
	TransferPurchased TransferOutcome = iota
	// TransferAlreadyOwned は圃場に既に所有者がいることを示す。
	TransferAlreadyOwned
	// TransferNotFound は圃場が存在しないことを示す。
	TransferNotFound
)

// String はTransferOutcomeの文字列表現を返す。メトリクスのラベルに使用する。
func (o TransferOutcome) String() string {
	switch o {
	case TransferPurchased:
		return "purchased"
	case TransferAlreadyOwned:
		return "already_owned"
	case TransferNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
