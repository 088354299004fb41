package service

import (
	"context"
	"errors"
	"time"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/config"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/constants"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/model"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/repository"
	"go.uber.org/zap"
)

// BalanceResolver answers point-in-time balance queries. A stored snapshot
// wins; otherwise the live cached balance is returned relabeled with the
// requested timestamp. The relabeling is deliberate: within the freshness
// window "current value as of the asked moment" is the contract, not an
// interpolation.
type BalanceResolver interface {
	Resolve(ctx context.Context, query GetBalanceAtMomentQuery) (BalanceSnapshotResult, error)
}

type balanceResolver struct {
	snapshots repository.SnapshotRepository
	balances  repository.CachedBalanceRepository
	timeFrame time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

func NewBalanceResolver(cfg *config.Config, snapshots repository.SnapshotRepository,
	balances repository.CachedBalanceRepository, logger *zap.Logger) BalanceResolver {
	return &balanceResolver{
		snapshots: snapshots,
		balances:  balances,
		timeFrame: cfg.BalanceHistory.TimeFrame,
		timeout:   cfg.BalanceHistory.LookupTimeout,
		logger:    logger,
	}
}

func (r *balanceResolver) Resolve(ctx context.Context, query GetBalanceAtMomentQuery) (BalanceSnapshotResult, error) {
	timestamp := query.Timestamp.UTC()

	// Window check happens before any store is touched.
	age := time.Now().UTC().Sub(timestamp)
	if age < 0 || age > r.timeFrame {
		r.logger.Debug("Timestamp outside allowed window",
			zap.String("walletID", query.WalletID),
			zap.String("assetID", query.AssetID),
			zap.Time("timestamp", timestamp),
			zap.Duration("age", age),
			zap.Duration("timeFrame", r.timeFrame))
		return BalanceSnapshotResult{}, NewServiceError(constants.ErrCodeOutOfWindow, ErrOutOfWindow)
	}

	snapshot, err := r.lookupSnapshot(ctx, query.WalletID, query.AssetID, timestamp)
	if err == nil {
		return BalanceSnapshotResult{
			WalletID:  snapshot.WalletID,
			AssetID:   snapshot.AssetID,
			Balance:   snapshot.Balance,
			Reserved:  snapshot.Reserved,
			Timestamp: snapshot.Timestamp,
		}, nil
	}

	if !errors.Is(err, repository.ErrSnapshotNotFound) {
		r.logger.Error("Snapshot lookup failed",
			zap.Error(err),
			zap.String("walletID", query.WalletID),
			zap.String("assetID", query.AssetID))
		return BalanceSnapshotResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	wallet, err := r.lookupCached(ctx, query.WalletID, query.AssetID)
	if err != nil {
		if errors.Is(err, repository.ErrBalanceNotFound) {
			return BalanceSnapshotResult{}, NewServiceError(constants.ErrCodeWalletNotFound, ErrWalletNotFound)
		}

		r.logger.Error("Cached balance lookup failed",
			zap.Error(err),
			zap.String("walletID", query.WalletID),
			zap.String("assetID", query.AssetID))
		return BalanceSnapshotResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	return BalanceSnapshotResult{
		WalletID:  query.WalletID,
		AssetID:   wallet.AssetID,
		Balance:   wallet.Balance,
		Reserved:  wallet.Reserved,
		Timestamp: timestamp,
	}, nil
}

// Store lookups run under a bounded timeout so a resolution never blocks
// indefinitely; a timeout surfaces as DATABASE_ERROR, not as not-found.
func (r *balanceResolver) lookupSnapshot(ctx context.Context, walletID, assetID string,
	timestamp time.Time) (*model.BalanceSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.snapshots.GetAt(ctx, walletID, assetID, timestamp)
}

func (r *balanceResolver) lookupCached(ctx context.Context, walletID, assetID string) (*model.WalletBalance, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.balances.Get(ctx, walletID, assetID)
}
