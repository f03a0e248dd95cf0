// Package history keeps a ledger of finished battles in sqlite.
package history

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Outcome is one finished battle
type Outcome struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionID  string    `gorm:"index;not null" json:"session_id"`
	Winner     string    `gorm:"not null" json:"winner"`
	Rounds     int       `json:"rounds"`
	PlayerHP   int       `json:"player_hp"`
	EnemyHP    int       `json:"enemy_hp"`
	FinishedAt time.Time `gorm:"index" json:"finished_at"`
}

// Repository records and lists finished battles
type Repository interface {
	Record(ctx context.Context, outcome *Outcome) error
	Recent(ctx context.Context, limit int) ([]Outcome, error)
}

// OpenAndMigrate opens the sqlite database at dataSourceName and ensures the schema
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Outcome{}); err != nil {
		return nil, err
	}

	return db, nil
}

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository creates a gorm-backed history repository
func NewSQLiteRepository(db *gorm.DB) Repository {
	if db == nil {
		panic("db is required")
	}
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Record(ctx context.Context, outcome *Outcome) error {
	if outcome.FinishedAt.IsZero() {
		outcome.FinishedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(outcome).Error
}

// Recent returns the newest outcomes first
func (r *sqliteRepository) Recent(ctx context.Context, limit int) ([]Outcome, error) {
	var outcomes []Outcome
	err := r.db.WithContext(ctx).
		Order("finished_at desc").
		Order("id desc").
		Limit(clampLimit(limit)).
		Find(&outcomes).Error
	if err != nil {
		return nil, err
	}
	return outcomes, nil
}

type nopRepository struct{}

// NewNopRepository returns a ledger that stores nothing, used when history is disabled
func NewNopRepository() Repository {
	return nopRepository{}
}

func (nopRepository) Record(context.Context, *Outcome) error { return nil }

func (nopRepository) Recent(context.Context, int) ([]Outcome, error) { return []Outcome{}, nil }

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
