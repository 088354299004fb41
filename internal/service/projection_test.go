package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/config"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/mocks"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/model"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/service"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func projectionConfig() *config.Config {
	return &config.Config{
		Projection: config.Projection{
			MaxRetries:     3,
			InitialBackoff: time.Millisecond,
		},
	}
}

func TestBalanceProjection_Apply(t *testing.T) {
	logger := zap.NewNop()

	event := service.BalanceUpdatedEvent{
		WalletID: "wallet-1",
		AssetID:  "BTC",
		Balance:  decimal.RequireFromString("42.0"),
		Reserved: decimal.RequireFromString("2.0"),
	}

	t.Run("overwrites the cache row with the event's values", func(t *testing.T) {
		mockBalances := &mocks.CachedBalanceRepository{}
		projection := service.NewBalanceProjection(projectionConfig(), mockBalances, logger)

		mockBalances.On("Upsert", mock.Anything, mock.MatchedBy(func(row *model.WalletBalance) bool {
			return row.WalletID == event.WalletID &&
				row.AssetID == event.AssetID &&
				row.Balance.Equal(event.Balance) &&
				row.Reserved.Equal(event.Reserved)
		})).Return(nil).Once()

		assert.NoError(t, projection.Apply(context.Background(), event))
		mockBalances.AssertExpectations(t)
	})

	t.Run("applying events in arrival order leaves the last event's values", func(t *testing.T) {
		mockBalances := &mocks.CachedBalanceRepository{}
		projection := service.NewBalanceProjection(projectionConfig(), mockBalances, logger)

		var lastApplied *model.WalletBalance
		mockBalances.On("Upsert", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				lastApplied = args.Get(1).(*model.WalletBalance)
			}).Return(nil)

		for i, balance := range []string{"10", "20", "30"} {
			e := event
			e.Balance = decimal.RequireFromString(balance)
			e.Reserved = decimal.NewFromInt(int64(i))
			assert.NoError(t, projection.Apply(context.Background(), e))
		}

		assert.True(t, lastApplied.Balance.Equal(decimal.NewFromInt(30)))
		assert.True(t, lastApplied.Reserved.Equal(decimal.NewFromInt(2)))
		mockBalances.AssertNumberOfCalls(t, "Upsert", 3)
	})

	t.Run("retries transient storage failures before succeeding", func(t *testing.T) {
		mockBalances := &mocks.CachedBalanceRepository{}
		projection := service.NewBalanceProjection(projectionConfig(), mockBalances, logger)

		mockBalances.On("Upsert", mock.Anything, mock.Anything).
			Return(errors.New("deadlock")).Twice()
		mockBalances.On("Upsert", mock.Anything, mock.Anything).
			Return(nil).Once()

		assert.NoError(t, projection.Apply(context.Background(), event))
		mockBalances.AssertNumberOfCalls(t, "Upsert", 3)
	})

	t.Run("returns a temporary error after retries exhaust so the event requeues", func(t *testing.T) {
		mockBalances := &mocks.CachedBalanceRepository{}
		projection := service.NewBalanceProjection(projectionConfig(), mockBalances, logger)

		mockBalances.On("Upsert", mock.Anything, mock.Anything).
			Return(errors.New("storage unavailable"))

		err := projection.Apply(context.Background(), event)

		var tempErr mq.TempError
		assert.ErrorAs(t, err, &tempErr)
		assert.True(t, tempErr.Temporary())
		// Initial attempt plus the configured retries.
		mockBalances.AssertNumberOfCalls(t, "Upsert", 4)
	})
}
