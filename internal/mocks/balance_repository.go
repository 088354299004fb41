package mocks

import (
	"context"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/model"
	"github.com/stretchr/testify/mock"
)

type CachedBalanceRepository struct {
	mock.Mock
}

func (m *CachedBalanceRepository) Get(ctx context.Context, walletID, assetID string) (*model.WalletBalance, error) {
	args := m.Called(ctx, walletID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WalletBalance), args.Error(1)
}

func (m *CachedBalanceRepository) Upsert(ctx context.Context, balance *model.WalletBalance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

func (m *CachedBalanceRepository) List(ctx context.Context, limit, offset int) ([]model.WalletBalance, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WalletBalance), args.Error(1)
}
