package history

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rezaamd/digitalwallet/internal/ledger"
	"github.com/rezaamd/digitalwallet/internal/paging"
)

// Handler exposes the transfer history endpoint.
type Handler struct {
	service *Service
}

// NewHandler builds a history HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List returns a page of transfers filtered by wallet_id, start_date and
// end_date query parameters (RFC 3339 timestamps, both bounds inclusive).
func (h *Handler) List(c *fiber.Ctx) error {
	filter := ledger.Filter{WalletID: c.Query("wallet_id")}

	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid start_date: "+err.Error())
		}
		filter.StartDate = t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid end_date: "+err.Error())
		}
		filter.EndDate = t
	}

	req := paging.NewRequest(c.QueryInt("page"), c.QueryInt("page_size"))
	page, err := h.service.Query(c.UserContext(), filter, req)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(page)
}
