package repository

import (
	"context"
	"errors"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrBalanceNotFound = errors.New("BALANCE_NOT_FOUND")

type CachedBalanceRepository interface {
	Get(ctx context.Context, walletID, assetID string) (*model.WalletBalance, error)
	Upsert(ctx context.Context, balance *model.WalletBalance) error
	List(ctx context.Context, limit, offset int) ([]model.WalletBalance, error)
}

type CachedBalance struct {
	db *gorm.DB
}

func NewCachedBalanceRepository(db *gorm.DB) CachedBalanceRepository {
	return &CachedBalance{db: db}
}

func (c *CachedBalance) Get(ctx context.Context, walletID, assetID string) (*model.WalletBalance, error) {
	var balance model.WalletBalance

	err := c.db.WithContext(ctx).
		Where("wallet_id = ? AND asset_id = ?", walletID, assetID).
		First(&balance).Error
	if err == nil {
		return &balance, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBalanceNotFound
	}

	return nil, err
}

// Upsert writes balance and reserved in a single statement so readers never
// observe one without the other.
func (c *CachedBalance) Upsert(ctx context.Context, balance *model.WalletBalance) error {
	db := GetTx(ctx, c.db)
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_id"}, {Name: "asset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance", "reserved", "updated_at"}),
	}).Create(balance).Error
}

func (c *CachedBalance) List(ctx context.Context, limit, offset int) ([]model.WalletBalance, error) {
	var balances []model.WalletBalance

	err := c.db.WithContext(ctx).
		Order("wallet_id, asset_id").
		Limit(limit).
		Offset(offset).
		Find(&balances).Error
	if err != nil {
		return nil, err
	}

	return balances, nil
}
