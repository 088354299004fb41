package v1

import "github.com/shopspring/decimal"

type UpdateBalanceRequest struct {
	Balance  decimal.Decimal `json:"balance"`
	Reserved decimal.Decimal `json:"reserved"`
}

type AddSnapshotRequest struct {
	Balance  decimal.Decimal `json:"balance"`
	Reserved decimal.Decimal `json:"reserved"`
}
