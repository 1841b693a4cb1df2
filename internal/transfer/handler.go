package transfer

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rezaamd/digitalwallet/internal/ledger"
)

// Handler exposes transfer HTTP endpoints.
type Handler struct {
	engine *Engine
	store  ledger.Store
}

// NewHandler builds a transfer HTTP handler.
func NewHandler(engine *Engine, store ledger.Store) *Handler {
	return &Handler{engine: engine, store: store}
}

type createRequest struct {
	OriginID      string `json:"origin_id"`
	DestinationID string `json:"destination_id"`
	Amount        int64  `json:"amount"`
}

// Create executes a wallet-to-wallet transfer.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.engine.Execute(c.UserContext(), req.OriginID, req.DestinationID, req.Amount)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(receipt)
}

// Get returns a single transfer row by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	t, err := h.store.FindByID(c.UserContext(), c.Params("transferId"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(t)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrWalletNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidAmount):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInsufficientFunds):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledger.ErrConflict):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
