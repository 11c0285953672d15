package counter

import (
	"context"
	"time"

	"go-hrms/internal/shared/txmanager"

	"gorm.io/gorm"
)

// Counter is the row behind one (type, key) sequence.
type Counter struct {
	CounterType string `gorm:"type:varchar(40);primaryKey"`
	CounterKey  string `gorm:"type:varchar(80);primaryKey"`
	LastValue   int64  `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

func (Counter) TableName() string {
	return "sequence_counters"
}

// Repository hands out monotonically increasing values per (type, key).
// Salary versions use it so two concurrent calculations for the same
// employee and month never pick the same version number.
//
//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, counterType string, key string) (int64, error)
	// SetFloor raises the counter to at least value. Used when rows were
	// written before the counter existed.
	SetFloor(ctx context.Context, counterType string, key string, value int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, counterType string, key string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT and increment; the row lock serializes callers per key.
	err := txmanager.GetDB(ctx, r.db).Raw(`
		INSERT INTO sequence_counters (counter_type, counter_key, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (counter_type, counter_key) DO UPDATE
		SET last_value = sequence_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType, key).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

func (r *repository) SetFloor(ctx context.Context, counterType string, key string, value int64) error {
	return txmanager.GetDB(ctx, r.db).Exec(`
		INSERT INTO sequence_counters (counter_type, counter_key, last_value, updated_at)
		VALUES (?, ?, ?, now())
		ON CONFLICT (counter_type, counter_key) DO UPDATE
		SET last_value = GREATEST(sequence_counters.last_value, EXCLUDED.last_value), updated_at = now()
	`, counterType, key, value).Error
}
