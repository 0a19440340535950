package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Repos bundles the repositories that share one *gorm.DB (or one transaction).
type Repos struct {
	db       *gorm.DB
	Users    *UserRepository
	Jewels   *JewelRepository
	Requests *BorrowRequestRepository
}

func New(db *gorm.DB) *Repos {
	return &Repos{
		db:       db,
		Users:    NewUserRepository(db),
		Jewels:   NewJewelRepository(db),
		Requests: NewBorrowRequestRepository(db),
	}
}

// Transaction runs fn with repositories bound to a single transaction.
func (r *Repos) Transaction(ctx context.Context, fn func(tx *Repos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func (r *Repos) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
