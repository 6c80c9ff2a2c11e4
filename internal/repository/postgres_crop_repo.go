package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/farmhand/internal/model"
)

// PostgresCropRepo はPostgreSQLを使用した作付けリポジトリ。
type PostgresCropRepo struct {
	db *sql.DB
}

// NewPostgresCropRepo はPostgresCropRepoを生成する。
func NewPostgresCropRepo(db *sql.DB) *PostgresCropRepo {
	return &PostgresCropRepo{db: db}
}

// List は全作付け記録をID昇順で返す。
func (r *PostgresCropRepo) List(ctx context.Context) ([]*model.Crop, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, status, user_id, created_at FROM crops ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	defer rows.Close()

	var crops []*model.Crop
	for rows.Next() {
		crop := &model.Crop{}
		if err := rows.Scan(&crop.ID, &crop.Name, &crop.Status, &crop.UserID, &crop.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan crop: %w", err)
		}
		crops = append(crops, crop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crops: %w", err)
	}

	return crops, nil
}

// Create は作付け記録を作成し、採番されたIDをcrop.IDに設定する。
func (r *PostgresCropRepo) Create(ctx context.Context, crop *model.Crop) error {
	now := time.Now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO crops (name, status, user_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		crop.Name, crop.Status, crop.UserID, now,
	).Scan(&crop.ID)

	if err != nil {
		return fmt.Errorf("failed to insert crop: %w", err)
	}

	crop.CreatedAt = now
	return nil
}

// Update は作付け記録の名前とステータスを更新する。
// 対象が存在しない場合はfalseを返す。
func (r *PostgresCropRepo) Update(ctx context.Context, id int64, name, status string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE crops SET name = $1, status = $2 WHERE id = $3`,
		name, status, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update crop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete は指定IDの作付け記録を削除する。対象が存在しない場合はfalseを返す。
func (r *PostgresCropRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM crops WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete crop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// compile-time interface check
var _ CropRepository = (*PostgresCropRepo)(nil)
