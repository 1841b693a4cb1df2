package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rezaamd/digitalwallet/internal/history"
	"github.com/rezaamd/digitalwallet/internal/transfer"
)

// RegisterTransferRoutes wires the transfer execution and history endpoints.
func RegisterTransferRoutes(app *fiber.App, th *transfer.Handler, hh *history.Handler) {
	group := app.Group("/v1/transfers")
	group.Post("/", th.Create)
	group.Get("/", hh.List)
	group.Get("/:transferId", th.Get)
}
