package main

import (
	"context"
	"time"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/config"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/repository"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/service"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mysql"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewConnectionDB,

			repository.NewCachedBalanceRepository,
			repository.NewSnapshotRepository,
			repository.NewTransactionManager,

			service.NewSnapshotService,
		),
		fx.Invoke(runSnapshotWorker),
	).Run()
}

func runSnapshotWorker(cfg *config.Config, snapshots service.SnapshotService, logger *zap.Logger,
	lc fx.Lifecycle) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return err
	}

	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := scheduler.NewJob(
				gocron.DurationJob(cfg.Snapshots.Interval),
				gocron.NewTask(func() {
					if err := snapshots.Materialize(appCtx); err != nil {
						logger.Error("snapshot materialization failed", zap.Error(err))
					}
				}),
			)
			if err != nil {
				return err
			}

			scheduler.Start()
			logger.Info("snapshot worker started", zap.Duration("interval", cfg.Snapshots.Interval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping snapshot worker")
			cancel()
			return scheduler.Shutdown()
		},
	})

	return nil
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}
