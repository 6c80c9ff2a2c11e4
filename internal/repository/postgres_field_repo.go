package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/farmhand/internal/model"
)

// PostgresFieldRepo はPostgreSQLを使用した圃場リポジトリ。
// 所有権の移転はtryTransferの条件付きUPDATEのみで行い、
// 読み取ってから書き込む方式は使わない。
type PostgresFieldRepo struct {
	db *sql.DB
}

// NewPostgresFieldRepo はPostgresFieldRepoを生成する。
func NewPostgresFieldRepo(db *sql.DB) *PostgresFieldRepo {
	return &PostgresFieldRepo{db: db}
}

// FindByID は指定IDの圃場を取得する。見つからない場合はnilを返す。
func (r *PostgresFieldRepo) FindByID(ctx context.Context, id int64) (*model.Field, error) {
	field := &model.Field{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, location, size, price, status, user_id, created_at, updated_at
		 FROM fields WHERE id = $1`,
		id,
	).Scan(&field.ID, &field.Name, &field.Location, &field.Size, &field.Price, &field.Status, &field.OwnerID, &field.CreatedAt, &field.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find field by ID: %w", err)
	}

	return field, nil
}

// List は全圃場をID昇順で返す。
func (r *PostgresFieldRepo) List(ctx context.Context) ([]*model.Field, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, location, size, price, status, user_id, created_at, updated_at
		 FROM fields ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}
	defer rows.Close()

	var fields []*model.Field
	for rows.Next() {
		field := &model.Field{}
		if err := rows.Scan(&field.ID, &field.Name, &field.Location, &field.Size, &field.Price, &field.Status, &field.OwnerID, &field.CreatedAt, &field.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan field: %w", err)
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fields: %w", err)
	}

	return fields, nil
}

// Create は圃場を作成し、採番されたIDをfield.IDに設定する。
func (r *PostgresFieldRepo) Create(ctx context.Context, field *model.Field) error {
	now := time.Now()
	if field.Status == "" {
		field.Status = model.FieldStatusActive
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO fields (name, location, size, price, status, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		field.Name, field.Location, field.Size, field.Price, field.Status, field.OwnerID, now, now,
	).Scan(&field.ID)

	if err != nil {
		return fmt.Errorf("failed to insert field: %w", err)
	}

	field.CreatedAt = now
	field.UpdatedAt = now
	return nil
}

// Update は圃場の表示属性を更新する。対象が存在しない場合はfalseを返す。
// 所有者カラムは購入経路（TryTransfer）以外からは変更しない。
func (r *PostgresFieldRepo) Update(ctx context.Context, field *model.Field) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE fields SET name = $1, location = $2, size = $3, price = $4, status = $5, updated_at = $6
		 WHERE id = $7`,
		field.Name, field.Location, field.Size, field.Price, field.Status, time.Now(), field.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update field: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete は指定IDの圃場を削除する。対象が存在しない場合はfalseを返す。
func (r *PostgresFieldRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM fields WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete field: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// TryTransfer は所有者未設定の圃場に限り、所有者とステータスを原子的に設定する。
//
// チェックと書き込みを1文のUPDATEにまとめることで、並行する購入リクエストの
// 競合をDBの行ロックに委ねる。affected = 1なら競争に勝ち、0なら圃場が存在しないか
// 既に所有されているかのどちらかであり、後続の存在確認で区別する。
// 単一ステートメントのためロールバックや補償処理は不要。
func (r *PostgresFieldRepo) TryTransfer(ctx context.Context, fieldID, buyerID int64) (model.TransferOutcome, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE fields SET user_id = $1, status = $2, updated_at = $3
		 WHERE id = $4 AND user_id IS NULL`,
		buyerID, model.FieldStatusOccupied, time.Now(), fieldID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to transfer field ownership: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		return model.TransferPurchased, nil
	}

	// affected = 0: 圃場が存在しないのか、既に所有者がいるのかを区別する
	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM fields WHERE id = $1)`,
		fieldID,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check field existence: %w", err)
	}

	if exists {
		return model.TransferAlreadyOwned, nil
	}
	return model.TransferNotFound, nil
}

// compile-time interface check
var _ FieldRepository = (*PostgresFieldRepo)(nil)
