package consumers

import (
	"context"
	"encoding/json"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/service"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mq"
	"go.uber.org/zap"
)

type UpdateConsumer interface {
	Consume(ctx context.Context) error
}

type updateConsumer struct {
	handler  service.TotalBalanceHandler
	consumer mq.Consumer
	logger   *zap.Logger
}

func NewUpdateConsumer(handler service.TotalBalanceHandler, consumer mq.Consumer, logger *zap.Logger) UpdateConsumer {
	return &updateConsumer{handler: handler, consumer: consumer, logger: logger}
}

func (u *updateConsumer) Consume(ctx context.Context) error {
	return u.consumer.Consume(ctx, 1, service.QueueUpdateCommands, u.handleMessage)
}

func (u *updateConsumer) handleMessage(ctx context.Context, body []byte) error {
	u.logger.Debug("received update total balance command", zap.ByteString("body", body))

	var cmd service.UpdateTotalBalanceCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		u.logger.Warn("invalid update total balance command", zap.Error(err))
		return err
	}

	return u.handler.Handle(ctx, cmd)
}
