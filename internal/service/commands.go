package service

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	QueueUpdateCommands = "wallet.balances.update"
	QueueBalanceUpdated = "wallet.balances.updated"
)

// UpdateTotalBalanceCommand asserts a new total balance for a wallet/asset.
type UpdateTotalBalanceCommand struct {
	WalletID string          `json:"wallet_id" validate:"required"`
	AssetID  string          `json:"asset_id" validate:"required"`
	Balance  decimal.Decimal `json:"balance"`
	Reserved decimal.Decimal `json:"reserved" validate:"gte=0"`
}

// BalanceUpdatedEvent is emitted once per accepted command and is the only
// input to the cache projection.
type BalanceUpdatedEvent struct {
	WalletID string          `json:"wallet_id"`
	AssetID  string          `json:"asset_id"`
	Balance  decimal.Decimal `json:"balance"`
	Reserved decimal.Decimal `json:"reserved"`
}

type GetBalanceAtMomentQuery struct {
	WalletID  string
	AssetID   string
	Timestamp time.Time
}

type BalanceSnapshotResult struct {
	WalletID  string
	AssetID   string
	Balance   decimal.Decimal
	Reserved  decimal.Decimal
	Timestamp time.Time
}

// AddSnapshotCommand is the debug insertion path. RequestedAt is the route's
// path timestamp; it is logged but not stored, the snapshot is stamped with
// processing time.
type AddSnapshotCommand struct {
	WalletID    string `validate:"required"`
	AssetID     string `validate:"required"`
	Balance     decimal.Decimal
	Reserved    decimal.Decimal `validate:"gte=0"`
	RequestedAt time.Time
}

// NewValidator returns a validator that understands decimal.Decimal fields,
// so numeric tags like gte apply to amounts.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterCustomTypeFunc(decimalToFloat, decimal.Decimal{})
	return validate
}

func decimalToFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
