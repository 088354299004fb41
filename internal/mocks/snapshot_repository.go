package mocks

import (
	"context"
	"time"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/model"
	"github.com/stretchr/testify/mock"
)

type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) Create(ctx context.Context, snapshot *model.BalanceSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *SnapshotRepository) GetAt(ctx context.Context, walletID, assetID string, timestamp time.Time) (*model.BalanceSnapshot, error) {
	args := m.Called(ctx, walletID, assetID, timestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BalanceSnapshot), args.Error(1)
}
