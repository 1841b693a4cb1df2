package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rezaamd/digitalwallet/internal/deposit"
)

// RegisterDepositRoutes wires external funding endpoints.
func RegisterDepositRoutes(app *fiber.App, h *deposit.Handler) {
	group := app.Group("/v1/deposits")
	group.Post("/", h.Deposit)
	group.Get("/:depositId", h.Get)

	app.Post("/v1/withdrawals", h.Withdraw)
}
