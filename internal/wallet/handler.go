package wallet

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rezaamd/digitalwallet/internal/ledger"
	"github.com/rezaamd/digitalwallet/internal/paging"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service  *Service
	resolver *ledger.Resolver
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service, resolver *ledger.Resolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

type createRequest struct {
	BankID *string `json:"bank_id"`
	Seed   string  `json:"seed"`
}

// Create provisions a wallet.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	w, err := h.service.Create(c.UserContext(), CreateInput{BankID: req.BankID, Seed: req.Seed})
	if err != nil {
		if errors.Is(err, ErrExists) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(w)
}

// Get returns wallet metadata by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	w, err := h.service.Get(c.UserContext(), c.Params("walletId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(w)
}

// GetBySeed resolves a wallet from its seed, optionally scoped to a bank via
// the bank_id query parameter.
func (h *Handler) GetBySeed(c *fiber.Ctx) error {
	var bankID *string
	if v := c.Query("bank_id"); v != "" {
		bankID = &v
	}
	w, err := h.service.GetBySeed(c.UserContext(), c.Params("seed"), bankID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(w)
}

// List pages wallets for a bank, or root wallets when bank_id is omitted.
func (h *Handler) List(c *fiber.Ctx) error {
	var bankID *string
	if v := c.Query("bank_id"); v != "" {
		bankID = &v
	}
	req := paging.NewRequest(c.QueryInt("page"), c.QueryInt("page_size"))
	page, err := h.service.List(c.UserContext(), bankID, req)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(page)
}

// Balance returns the wallet's derived balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	if _, err := h.service.Get(c.UserContext(), walletID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	balance, err := h.resolver.BalanceOf(c.UserContext(), walletID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"wallet_id": walletID,
		"balance":   balance,
		"timestamp": time.Now().UTC(),
	})
}

// LatestTransfer returns the wallet's most recent transfer.
func (h *Handler) LatestTransfer(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	latest, err := h.resolver.LatestTransfer(c.UserContext(), walletID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if latest == nil {
		return fiber.NewError(http.StatusNotFound, "wallet has no transfers")
	}
	return c.JSON(latest)
}
