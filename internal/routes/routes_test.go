package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/rezaamd/digitalwallet/internal/config"
	"github.com/rezaamd/digitalwallet/internal/logging"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	deps := Deps{
		Cfg:    config.Config{AppName: "test", AppEnv: "test"},
		Logger: logging.Discard(),
	}
	if err := Setup(app, deps); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	// Error responses carry plain-text bodies.
	var decoded map[string]any
	if len(raw) > 0 && json.Unmarshal(raw, &decoded) != nil {
		decoded = map[string]any{"message": string(raw)}
	}
	return resp.StatusCode, decoded
}

func createWallet(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := doJSON(t, app, fiber.MethodPost, "/v1/wallets", map[string]any{})
	if status != fiber.StatusCreated {
		t.Fatalf("create wallet: status %d body %v", status, body)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("wallet response missing id: %v", body)
	}
	return id
}

func walletBalance(t *testing.T, app *fiber.App, id string) float64 {
	t.Helper()
	status, body := doJSON(t, app, fiber.MethodGet, "/v1/wallets/"+id+"/balance", nil)
	if status != fiber.StatusOK {
		t.Fatalf("balance: status %d body %v", status, body)
	}
	balance, _ := body["balance"].(float64)
	return balance
}

func TestTransferFlowOverHTTP(t *testing.T) {
	app := setupApp(t)

	w := createWallet(t, app)
	x := createWallet(t, app)

	if got := walletBalance(t, app, w); got != 0 {
		t.Fatalf("new wallet balance must be 0, got %v", got)
	}

	status, body := doJSON(t, app, fiber.MethodPost, "/v1/deposits", map[string]any{
		"wallet_id": w, "amount": 100,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("deposit: status %d body %v", status, body)
	}

	status, body = doJSON(t, app, fiber.MethodPost, "/v1/transfers", map[string]any{
		"origin_id": w, "destination_id": x, "amount": 30,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("transfer: status %d body %v", status, body)
	}

	if got := walletBalance(t, app, w); got != 70 {
		t.Fatalf("expected 70 for origin, got %v", got)
	}
	if got := walletBalance(t, app, x); got != 30 {
		t.Fatalf("expected 30 for destination, got %v", got)
	}

	status, body = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/v1/transfers?wallet_id=%s&page=1&page_size=10", x), nil)
	if status != fiber.StatusOK {
		t.Fatalf("history: status %d body %v", status, body)
	}
	if total, _ := body["total_count"].(float64); total != 1 {
		t.Fatalf("expected 1 history row for destination, got %v", body)
	}

	status, body = doJSON(t, app, fiber.MethodGet, "/v1/wallets/"+w+"/transfers/latest", nil)
	if status != fiber.StatusOK {
		t.Fatalf("latest transfer: status %d body %v", status, body)
	}
	if amount, _ := body["amount"].(float64); amount != 30 {
		t.Fatalf("latest transfer for origin should be the 30 transfer, got %v", body)
	}
}

func TestTransferRejectionsOverHTTP(t *testing.T) {
	app := setupApp(t)

	w := createWallet(t, app)
	x := createWallet(t, app)

	status, _ := doJSON(t, app, fiber.MethodPost, "/v1/transfers", map[string]any{
		"origin_id": w, "destination_id": x, "amount": 0,
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("zero amount: expected 400, got %d", status)
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/v1/transfers", map[string]any{
		"origin_id": w, "destination_id": x, "amount": 10,
	})
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("insufficient funds: expected 422, got %d", status)
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/v1/transfers", map[string]any{
		"origin_id": w, "destination_id": "ghost", "amount": 10,
	})
	if status != fiber.StatusNotFound {
		t.Fatalf("unknown wallet: expected 404, got %d", status)
	}
}

func TestWalletListOverHTTP(t *testing.T) {
	app := setupApp(t)

	status, body := doJSON(t, app, fiber.MethodPost, "/v1/wallets", map[string]any{
		"bank_id": "bank-1", "seed": "seeded",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create bank wallet: status %d body %v", status, body)
	}
	createWallet(t, app) // root wallet

	status, body = doJSON(t, app, fiber.MethodGet, "/v1/wallets?bank_id=bank-1", nil)
	if status != fiber.StatusOK {
		t.Fatalf("list: status %d", status)
	}
	if total, _ := body["total_count"].(float64); total != 1 {
		t.Fatalf("expected 1 bank wallet, got %v", body)
	}

	status, body = doJSON(t, app, fiber.MethodGet, "/v1/wallets/seed/seeded?bank_id=bank-1", nil)
	if status != fiber.StatusOK {
		t.Fatalf("seed lookup: status %d body %v", status, body)
	}
}

func TestHealthz(t *testing.T) {
	app := setupApp(t)

	status, body := doJSON(t, app, fiber.MethodGet, "/healthz", nil)
	if status != fiber.StatusOK {
		t.Fatalf("healthz: status %d body %v", status, body)
	}
}
