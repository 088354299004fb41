package api

import (
	"github.com/AleksSoft/Lykke.Service.Balances/internal/api/v1"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/config"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, cfg *config.Config) {
	app.Get("/ping", handler.Pong)

	app.Get("/wallets/:walletId/:assetId/:timestamp", handler.GetBalanceAtMoment)
	app.Post("/wallets/:walletId/:assetId", handler.UpdateBalance)

	// Snapshot insertion exists for non-production builds only.
	if cfg.API.Debug {
		app.Post("/wallets/:walletId/:assetId/:timestamp", handler.AddSnapshot)
	}
}
