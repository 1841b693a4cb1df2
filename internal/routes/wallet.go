package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rezaamd/digitalwallet/internal/wallet"
)

// RegisterWalletRoutes wires wallet lookup and provisioning endpoints.
func RegisterWalletRoutes(app *fiber.App, h *wallet.Handler) {
	group := app.Group("/v1/wallets")
	group.Post("/", h.Create)
	group.Get("/", h.List)
	group.Get("/seed/:seed", h.GetBySeed)
	group.Get("/:walletId", h.Get)
	group.Get("/:walletId/balance", h.Balance)
	group.Get("/:walletId/transfers/latest", h.LatestTransfer)
}
