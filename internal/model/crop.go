package model

import "time"

// Crop は作付け記録を表す。
type Crop struct {
	ID        int64
	Name      string
	Status    string
	UserID    *int64
	CreatedAt time.Time
}
