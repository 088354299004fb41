package v1

import (
	"net/url"
	"time"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/constants"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/publishers"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger    *zap.Logger
	resolver  service.BalanceResolver
	snapshots service.SnapshotService
	updates   publishers.UpdatePublisher
}

func NewHandler(logger *zap.Logger, resolver service.BalanceResolver,
	snapshots service.SnapshotService, updates publishers.UpdatePublisher) *Handler {
	return &Handler{logger: logger, resolver: resolver, snapshots: snapshots, updates: updates}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) GetBalanceAtMoment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	timestamp, ok := parseTimestamp(c)
	if !ok {
		return badRequest(c, constants.ErrCodeInvalidTimestamp)
	}

	query := service.GetBalanceAtMomentQuery{
		WalletID:  pathParam(c, "walletId"),
		AssetID:   pathParam(c, "assetId"),
		Timestamp: timestamp,
	}

	result, err := h.resolver.Resolve(ctx, query)
	if err != nil {
		return err
	}

	return c.JSON(BalanceSnapshotResponse{
		WalletID:  result.WalletID,
		AssetID:   result.AssetID,
		Balance:   result.Balance,
		Reserved:  result.Reserved,
		Timestamp: result.Timestamp.Format(time.RFC3339),
	})
}

func (h *Handler) UpdateBalance(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request UpdateBalanceRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse update balance body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return badRequest(c, constants.ErrCodeInvalidRequestBody)
	}

	cmd := service.UpdateTotalBalanceCommand{
		WalletID: pathParam(c, "walletId"),
		AssetID:  pathParam(c, "assetId"),
		Balance:  request.Balance,
		Reserved: request.Reserved,
	}

	if err := h.updates.PublishUpdate(ctx, cmd); err != nil {
		return err
	}

	h.logger.Info("Balance update command accepted",
		zap.String("walletID", cmd.WalletID),
		zap.String("assetID", cmd.AssetID))

	return c.Status(fiber.StatusAccepted).JSON(UpdateAcceptedResponse{Status: "ACCEPTED"})
}

func (h *Handler) AddSnapshot(c *fiber.Ctx) error {
	ctx := c.UserContext()

	timestamp, ok := parseTimestamp(c)
	if !ok {
		return badRequest(c, constants.ErrCodeInvalidTimestamp)
	}

	var request AddSnapshotRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse add snapshot body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return badRequest(c, constants.ErrCodeInvalidRequestBody)
	}

	cmd := service.AddSnapshotCommand{
		WalletID:    pathParam(c, "walletId"),
		AssetID:     pathParam(c, "assetId"),
		Balance:     request.Balance,
		Reserved:    request.Reserved,
		RequestedAt: timestamp,
	}

	if err := h.snapshots.AddSnapshot(ctx, cmd); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}

// Fiber hands route params over percent-encoded; identifiers and the
// timestamp all need the same decoding before use.
func pathParam(c *fiber.Ctx, name string) string {
	value, err := url.PathUnescape(c.Params(name))
	if err != nil {
		return c.Params(name)
	}
	return value
}

func parseTimestamp(c *fiber.Ctx) (time.Time, bool) {
	timestamp, err := time.Parse(time.RFC3339, pathParam(c, "timestamp"))
	if err != nil {
		return time.Time{}, false
	}

	return timestamp, true
}

func badRequest(c *fiber.Ctx, code string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"code":    code,
		"message": constants.GetErrorMessage(code),
	})
}
