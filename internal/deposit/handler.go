package deposit

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rezaamd/digitalwallet/internal/ledger"
	"github.com/rezaamd/digitalwallet/internal/transfer"
)

// Handler exposes deposit and withdrawal HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a deposit HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type fundingRequest struct {
	WalletID string `json:"wallet_id"`
	Amount   int64  `json:"amount"`
}

// Deposit credits a wallet from the external gateway.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req fundingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	result, err := h.service.Deposit(c.UserContext(), req.WalletID, req.Amount)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(result)
}

// Withdraw debits a wallet toward the external gateway.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req fundingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	result, err := h.service.Withdraw(c.UserContext(), req.WalletID, req.Amount)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(result)
}

// Get returns a deposit record by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	d, err := h.service.store.FindByID(c.UserContext(), c.Params("depositId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(d)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, transfer.ErrWalletNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, transfer.ErrInvalidAmount):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, transfer.ErrInsufficientFunds):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrDeclined):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledger.ErrConflict):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
