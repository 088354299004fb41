package main

import (
	"context"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/config"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/consumers"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/repository"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/service"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mq"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mysql"
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
			NewMQConnection,
			NewMQConsumer,

			repository.NewCachedBalanceRepository,

			service.NewBalanceProjection,

			consumers.NewProjectionConsumer,
		),
		fx.Invoke(runProjectionConsumer),
	).Run()
}

func runProjectionConsumer(cfg *config.Config, projectionConsumer consumers.ProjectionConsumer,
	logger *zap.Logger, rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology(service.QueueBalanceUpdated); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", service.QueueBalanceUpdated))

			go func() {
				if err := projectionConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("balance projection started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping balance projection")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}
