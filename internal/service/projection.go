package service

import (
	"context"
	"time"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/config"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/model"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/repository"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mq"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// BalanceProjection is the sole writer of the cached balance store. It
// overwrites the row for the event's key unconditionally, trusting per-key
// delivery order from the broker.
type BalanceProjection interface {
	Apply(ctx context.Context, event BalanceUpdatedEvent) error
}

type balanceProjection struct {
	balances       repository.CachedBalanceRepository
	maxRetries     uint
	initialBackoff time.Duration
	logger         *zap.Logger
}

func NewBalanceProjection(cfg *config.Config, balances repository.CachedBalanceRepository,
	logger *zap.Logger) BalanceProjection {
	return &balanceProjection{
		balances:       balances,
		maxRetries:     cfg.Projection.MaxRetries,
		initialBackoff: cfg.Projection.InitialBackoff,
		logger:         logger,
	}
}

func (p *balanceProjection) Apply(ctx context.Context, event BalanceUpdatedEvent) error {
	row := &model.WalletBalance{
		WalletID:  event.WalletID,
		AssetID:   event.AssetID,
		Balance:   event.Balance,
		Reserved:  event.Reserved,
		UpdatedAt: time.Now().UTC(),
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.initialBackoff

	err := backoff.Retry(func() error {
		return p.balances.Upsert(ctx, row)
	}, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(p.maxRetries)), ctx))

	if err != nil {
		// Dropping an accepted event would leave the cache stale for this
		// key forever, so after local retries the event goes back to the
		// queue instead.
		p.logger.Error("Failed to apply balance update, requeueing",
			zap.Error(err),
			zap.String("walletID", event.WalletID),
			zap.String("assetID", event.AssetID))
		return mq.Temporary(err)
	}

	p.logger.Debug("Applied balance update",
		zap.String("walletID", event.WalletID),
		zap.String("assetID", event.AssetID),
		zap.String("balance", event.Balance.String()),
		zap.String("reserved", event.Reserved.String()))

	return nil
}
