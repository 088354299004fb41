package consumers

import (
	"context"
	"encoding/json"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/service"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mq"
	"go.uber.org/zap"
)

type ProjectionConsumer interface {
	Consume(ctx context.Context) error
}

type projectionConsumer struct {
	projection service.BalanceProjection
	consumer   mq.Consumer
	logger     *zap.Logger
}

func NewProjectionConsumer(projection service.BalanceProjection, consumer mq.Consumer,
	logger *zap.Logger) ProjectionConsumer {
	return &projectionConsumer{projection: projection, consumer: consumer, logger: logger}
}

func (p *projectionConsumer) Consume(ctx context.Context) error {
	return p.consumer.Consume(ctx, 1, service.QueueBalanceUpdated, p.handleMessage)
}

func (p *projectionConsumer) handleMessage(ctx context.Context, body []byte) error {
	p.logger.Debug("received balance updated event", zap.ByteString("body", body))

	var event service.BalanceUpdatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		p.logger.Warn("invalid balance updated event", zap.Error(err))
		return err
	}

	return p.projection.Apply(ctx, event)
}
