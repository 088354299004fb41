package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrSnapshotNotFound = errors.New("SNAPSHOT_NOT_FOUND")
var ErrSnapshotDuplicate = errors.New("SNAPSHOT_DUPLICATE")

// SnapshotRepository is append-only: snapshots are never updated or deleted.
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *model.BalanceSnapshot) error
	GetAt(ctx context.Context, walletID, assetID string, timestamp time.Time) (*model.BalanceSnapshot, error)
}

type Snapshot struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &Snapshot{db: db}
}

func (s *Snapshot) Create(ctx context.Context, snapshot *model.BalanceSnapshot) error {
	db := GetTx(ctx, s.db)
	err := db.WithContext(ctx).Create(snapshot).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrSnapshotDuplicate
	}

	return err
}

func (s *Snapshot) GetAt(ctx context.Context, walletID, assetID string, timestamp time.Time) (*model.BalanceSnapshot, error) {
	var snapshot model.BalanceSnapshot

	err := s.db.WithContext(ctx).
		Where("wallet_id = ? AND asset_id = ? AND timestamp = ?", walletID, assetID, timestamp).
		First(&snapshot).Error
	if err == nil {
		return &snapshot, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSnapshotNotFound
	}

	return nil, err
}
