package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rezaamd/digitalwallet/internal/config"
	"github.com/rezaamd/digitalwallet/internal/deposit"
	"github.com/rezaamd/digitalwallet/internal/history"
	"github.com/rezaamd/digitalwallet/internal/ledger"
	"github.com/rezaamd/digitalwallet/internal/middleware"
	"github.com/rezaamd/digitalwallet/internal/notification"
	"github.com/rezaamd/digitalwallet/internal/transfer"
	"github.com/rezaamd/digitalwallet/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Cache    *redis.Client
	Logger   *slog.Logger
	Notifier notification.Notifier
}

// Setup configures middlewares and all application routes. Without a
// database the stores fall back to their in-memory implementations, which is
// allowed only in development.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var (
		transferStore ledger.Store
		walletStore   wallet.Store
		depositStore  deposit.Store
	)
	if d.DB != nil {
		transferStore = ledger.NewPostgresStore(d.DB)
		walletStore = wallet.NewPostgresStore(d.DB)
		depositStore = deposit.NewPostgresStore(d.DB)
	} else {
		transferStore = ledger.NewMemory()
		walletStore = wallet.NewMemory()
		depositStore = deposit.NewMemory()
	}

	notifier := d.Notifier
	if notifier == nil {
		notifier = notification.NewLoggerNotifier(d.Logger)
	}

	resolver := ledger.NewResolver(transferStore)
	walletSvc := wallet.NewService(walletStore)
	engine := transfer.NewEngine(walletStore, transferStore, notifier)
	historySvc := history.NewService(transferStore)
	depositSvc := deposit.NewService(depositStore, engine, nil)

	RegisterWalletRoutes(app, wallet.NewHandler(walletSvc, resolver))
	RegisterTransferRoutes(app, transfer.NewHandler(engine, transferStore), history.NewHandler(historySvc))
	RegisterDepositRoutes(app, deposit.NewHandler(depositSvc))

	return nil
}
