package mocks

import (
	"context"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/service"
	"github.com/stretchr/testify/mock"
)

type BalanceResolver struct {
	mock.Mock
}

func (m *BalanceResolver) Resolve(ctx context.Context, query service.GetBalanceAtMomentQuery) (service.BalanceSnapshotResult, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(service.BalanceSnapshotResult), args.Error(1)
}

type SnapshotService struct {
	mock.Mock
}

func (m *SnapshotService) AddSnapshot(ctx context.Context, cmd service.AddSnapshotCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *SnapshotService) Materialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type UpdatePublisher struct {
	mock.Mock
}

func (m *UpdatePublisher) PublishUpdate(ctx context.Context, cmd service.UpdateTotalBalanceCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type TotalBalanceHandler struct {
	mock.Mock
}

func (m *TotalBalanceHandler) Handle(ctx context.Context, cmd service.UpdateTotalBalanceCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type BalanceProjection struct {
	mock.Mock
}

func (m *BalanceProjection) Apply(ctx context.Context, event service.BalanceUpdatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
