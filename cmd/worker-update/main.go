package main

import (
	"context"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/config"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/consumers"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/service"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMQConnection,
			NewMQConsumer,
			NewMQPublisher,

			service.NewTotalBalanceHandler,

			consumers.NewUpdateConsumer,
		),
		fx.Invoke(runUpdateConsumer),
	).Run()
}

func runUpdateConsumer(cfg *config.Config, updateConsumer consumers.UpdateConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology(service.QueueUpdateCommands, service.QueueBalanceUpdated); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queues declared",
				zap.String("commands", service.QueueUpdateCommands),
				zap.String("events", service.QueueBalanceUpdated))

			go func() {
				if err := updateConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("update command consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping update command consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
