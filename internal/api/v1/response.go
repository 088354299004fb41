package v1

import "github.com/shopspring/decimal"

type BalanceSnapshotResponse struct {
	WalletID  string          `json:"walletId"`
	AssetID   string          `json:"assetId"`
	Balance   decimal.Decimal `json:"balance"`
	Reserved  decimal.Decimal `json:"reserved"`
	Timestamp string          `json:"timestamp"`
}

type UpdateAcceptedResponse struct {
	Status string `json:"status"`
}
