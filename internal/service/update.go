package service

import (
	"context"
	"encoding/json"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/constants"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mq"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// TotalBalanceHandler is the single point of business validation for balance
// updates. An accepted command produces exactly one BalanceUpdatedEvent.
type TotalBalanceHandler interface {
	Handle(ctx context.Context, cmd UpdateTotalBalanceCommand) error
}

type totalBalanceHandler struct {
	publisher mq.Publisher
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewTotalBalanceHandler(publisher mq.Publisher, logger *zap.Logger) TotalBalanceHandler {
	return &totalBalanceHandler{publisher: publisher, validate: NewValidator(), logger: logger}
}

func (h *totalBalanceHandler) Handle(ctx context.Context, cmd UpdateTotalBalanceCommand) error {
	if err := h.validate.Struct(cmd); err != nil {
		// Terminal for this command: a malformed update is never retried.
		h.logger.Warn("Rejected invalid balance update command",
			zap.Error(err),
			zap.String("walletID", cmd.WalletID),
			zap.String("assetID", cmd.AssetID))
		return NewServiceError(constants.ErrCodeValidation, err)
	}

	event := BalanceUpdatedEvent{
		WalletID: cmd.WalletID,
		AssetID:  cmd.AssetID,
		Balance:  cmd.Balance,
		Reserved: cmd.Reserved,
	}

	body, _ := json.Marshal(event)
	if err := h.publisher.Publish(ctx, "", QueueBalanceUpdated, body); err != nil {
		h.logger.Error("Failed to publish balance updated event",
			zap.Error(err),
			zap.String("walletID", cmd.WalletID),
			zap.String("assetID", cmd.AssetID))
		return mq.Temporary(err)
	}

	h.logger.Info("Balance update accepted",
		zap.String("walletID", cmd.WalletID),
		zap.String("assetID", cmd.AssetID),
		zap.String("balance", cmd.Balance.String()),
		zap.String("reserved", cmd.Reserved.String()))

	return nil
}
