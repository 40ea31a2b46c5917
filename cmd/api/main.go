package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Comercio-api/internal/application/audit"
	"github.com/jhoicas/Comercio-api/internal/application/journal"
	"github.com/jhoicas/Comercio-api/internal/application/stock"
	"github.com/jhoicas/Comercio-api/internal/application/usecase"
	"github.com/jhoicas/Comercio-api/internal/application/wallet"
	infrapdf "github.com/jhoicas/Comercio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Comercio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Comercio-api/internal/interfaces/http"
	"github.com/jhoicas/Comercio-api/pkg/config"
	"github.com/jhoicas/Comercio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orgRepo := postgres.NewOrganizationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	walletRepo := postgres.NewWalletRepository(pool)
	walletTxRepo := postgres.NewWalletTransactionRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	journalRepo := postgres.NewJournalRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movementUC := stock.NewMovementUseCase(txRunner, movementRepo, variantRepo, orgRepo)
	walletTxUC := wallet.NewTransactionUseCase(txRunner, walletRepo, walletTxRepo, orgRepo)
	receiptUC := wallet.NewReceiptUseCase(txRunner, receiptRepo, walletRepo, customerRepo, orgRepo,
		infrapdf.NewMarotoPDFGenerator())
	auditUC := audit.NewUseCase(txRunner, auditRepo, variantRepo, orgRepo)
	journalUC := journal.NewEntryUseCase(txRunner, journalRepo, accountRepo)

	organizationUC := usecase.NewOrganizationUseCase(orgRepo, accountRepo)
	productUC := usecase.NewProductUseCase(productRepo, variantRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, walletRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comercio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrganizationUC: organizationUC,
		ProductUC:      productUC,
		CustomerUC:     customerUC,
		AccountUC:      accountUC,
		MovementUC:     movementUC,
		WalletTxUC:     walletTxUC,
		ReceiptUC:      receiptUC,
		AuditUC:        auditUC,
		JournalUC:      journalUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
