package main

import (
	"context"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/api"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/api/v1"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/config"
	middleware "github.com/AleksSoft/Lykke.Service.Balances/internal/error"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/publishers"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/repository"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/service"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mq"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mysql"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewFiberApp,

			NewConnectionDB,
			NewMQConnection,
			NewMQPublisher,

			repository.NewCachedBalanceRepository,
			repository.NewSnapshotRepository,
			repository.NewTransactionManager,

			service.NewBalanceResolver,
			service.NewSnapshotService,

			publishers.NewUpdatePublisher,

			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, rabbit *mq.RabbitMQ,
	logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, cfg)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology(service.QueueUpdateCommands); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := app.ShutdownWithContext(ctx); err != nil {
				return err
			}
			return rabbit.Close()
		},
	})
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
