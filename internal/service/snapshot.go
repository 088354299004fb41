package service

import (
	"context"
	"errors"
	"time"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/config"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/constants"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/model"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/repository"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// snapshotStamp returns the processing-time stamp for new snapshots. The
// stamp is truncated to what the timestamp column actually stores, so the
// value written equals the value an exact lookup queries by.
func snapshotStamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

type SnapshotService interface {
	AddSnapshot(ctx context.Context, cmd AddSnapshotCommand) error
	Materialize(ctx context.Context) error
}

type snapshotService struct {
	snapshots repository.SnapshotRepository
	balances  repository.CachedBalanceRepository
	txManager repository.TxManager
	batchSize int
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewSnapshotService(cfg *config.Config, snapshots repository.SnapshotRepository,
	balances repository.CachedBalanceRepository, txManager repository.TxManager,
	logger *zap.Logger) SnapshotService {
	return &snapshotService{
		snapshots: snapshots,
		balances:  balances,
		txManager: txManager,
		batchSize: cfg.Snapshots.BatchSize,
		validate:  NewValidator(),
		logger:    logger,
	}
}

// AddSnapshot stores a snapshot stamped with the current processing time.
// The route's path timestamp is intentionally not used for the stored value;
// it is logged so the discrepancy stays observable.
func (s *snapshotService) AddSnapshot(ctx context.Context, cmd AddSnapshotCommand) error {
	if err := s.validate.Struct(cmd); err != nil {
		return NewServiceError(constants.ErrCodeValidation, err)
	}

	now := snapshotStamp()
	snapshot := &model.BalanceSnapshot{
		WalletID:  cmd.WalletID,
		AssetID:   cmd.AssetID,
		Timestamp: now,
		Balance:   cmd.Balance,
		Reserved:  cmd.Reserved,
		CreatedAt: now,
	}

	s.logger.Info("Inserting debug snapshot",
		zap.String("walletID", cmd.WalletID),
		zap.String("assetID", cmd.AssetID),
		zap.Time("stampedAt", now),
		zap.Time("requestedAt", cmd.RequestedAt))

	err := s.snapshots.Create(ctx, snapshot)
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrSnapshotDuplicate) {
		s.logger.Warn("Snapshot already exists for this instant, keeping the stored one",
			zap.String("walletID", cmd.WalletID),
			zap.String("assetID", cmd.AssetID),
			zap.Time("timestamp", now))
		return nil
	}

	return NewServiceError(ErrCodeDatabase, err)
}

// Materialize writes one snapshot per cache entry, all stamped with a single
// UTC instant, paging through the cache so a large wallet population never
// loads at once. Existing (wallet, asset, timestamp) triples are skipped:
// snapshots are immutable and a re-run inside the same instant is harmless.
func (s *snapshotService) Materialize(ctx context.Context) error {
	now := snapshotStamp()

	written, skipped := 0, 0
	for offset := 0; ; offset += s.batchSize {
		balances, err := s.balances.List(ctx, s.batchSize, offset)
		if err != nil {
			s.logger.Error("Failed to list cached balances", zap.Error(err))
			return NewServiceError(ErrCodeDatabase, err)
		}

		if len(balances) == 0 {
			break
		}

		err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
			for i := range balances {
				snapshot := &model.BalanceSnapshot{
					WalletID:  balances[i].WalletID,
					AssetID:   balances[i].AssetID,
					Timestamp: now,
					Balance:   balances[i].Balance,
					Reserved:  balances[i].Reserved,
					CreatedAt: now,
				}

				err := s.snapshots.Create(ctx, snapshot)
				if errors.Is(err, repository.ErrSnapshotDuplicate) {
					skipped++
					continue
				}
				if err != nil {
					return err
				}

				written++
			}

			return nil
		})
		if err != nil {
			s.logger.Error("Snapshot materialization page failed",
				zap.Error(err),
				zap.Int("offset", offset))
			return NewServiceError(ErrCodeDatabase, err)
		}

		if len(balances) < s.batchSize {
			break
		}
	}

	s.logger.Info("Snapshot materialization finished",
		zap.Time("timestamp", now),
		zap.Int("written", written),
		zap.Int("skipped", skipped))

	return nil
}
