package publishers

import (
	"context"
	"encoding/json"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/service"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mq"
	"go.uber.org/zap"
)

// UpdatePublisher is the ingress side of the command stream: it hands
// UpdateTotalBalanceCommands to the broker for the update worker.
type UpdatePublisher interface {
	PublishUpdate(ctx context.Context, cmd service.UpdateTotalBalanceCommand) error
}

type updatePublisher struct {
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewUpdatePublisher(publisher mq.Publisher, logger *zap.Logger) UpdatePublisher {
	return &updatePublisher{publisher: publisher, logger: logger}
}

func (u *updatePublisher) PublishUpdate(ctx context.Context, cmd service.UpdateTotalBalanceCommand) error {
	body, _ := json.Marshal(cmd)

	if err := u.publisher.Publish(ctx, "", service.QueueUpdateCommands, body); err != nil {
		u.logger.Error("Failed to publish update total balance command",
			zap.Error(err),
			zap.String("walletID", cmd.WalletID),
			zap.String("assetID", cmd.AssetID))
		return err
	}

	u.logger.Debug("Published update total balance command",
		zap.String("walletID", cmd.WalletID),
		zap.String("assetID", cmd.AssetID))

	return nil
}
