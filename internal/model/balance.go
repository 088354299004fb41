package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletBalance is the cached "current balance" row for a (wallet, asset)
// pair. There is at most one row per key and it is overwritten in place by
// the balance-updated projection; it carries no business timestamp, only the
// time the row was last written.
type WalletBalance struct {
	WalletID  string          `gorm:"primaryKey;column:wallet_id;size:64"`
	AssetID   string          `gorm:"primaryKey;column:asset_id;size:64"`
	Balance   decimal.Decimal `gorm:"column:balance;type:decimal(36,18);not null"`
	Reserved  decimal.Decimal `gorm:"column:reserved;type:decimal(36,18);not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (WalletBalance) TableName() string {
	return "wallet_balances"
}
