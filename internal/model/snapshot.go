package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is a historical balance record keyed by the exact
// (wallet, asset, timestamp) triple. Rows are immutable once written; there
// is no update or delete path for them anywhere in the service.
type BalanceSnapshot struct {
	WalletID  string          `gorm:"primaryKey;column:wallet_id;size:64;<-:create"`
	AssetID   string          `gorm:"primaryKey;column:asset_id;size:64;<-:create"`
	Timestamp time.Time       `gorm:"primaryKey;column:timestamp;<-:create"`
	Balance   decimal.Decimal `gorm:"column:balance;type:decimal(36,18);not null;<-:create"`
	Reserved  decimal.Decimal `gorm:"column:reserved;type:decimal(36,18);not null;<-:create"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (BalanceSnapshot) TableName() string {
	return "balance_snapshots"
}
