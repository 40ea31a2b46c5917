package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/audit"
	"github.com/jhoicas/Comercio-api/internal/application/journal"
	"github.com/jhoicas/Comercio-api/internal/application/stock"
	"github.com/jhoicas/Comercio-api/internal/application/usecase"
	"github.com/jhoicas/Comercio-api/internal/application/wallet"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrganizationUC *usecase.OrganizationUseCase
	ProductUC      *usecase.ProductUseCase
	CustomerUC     *usecase.CustomerUseCase
	AccountUC      *usecase.AccountUseCase
	MovementUC     *stock.MovementUseCase
	WalletTxUC     *wallet.TransactionUseCase
	ReceiptUC      *wallet.ReceiptUseCase
	AuditUC        *audit.UseCase
	JournalUC      *journal.EntryUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Organizations (creación pública; el resto requiere token)
	organizationHandler := NewOrganizationHandler(deps.OrganizationUC)
	api.Post("/organizations", organizationHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	orgs := protected.Group("/organizations")
	orgs.Get("/me", organizationHandler.GetCurrent)
	orgs.Put("/posting-accounts", organizationHandler.ConfigurePostingAccounts)

	// Products y variants (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	variants := protected.Group("/variants")
	variants.Post("/", productHandler.CreateVariant)
	variants.Get("/", productHandler.ListVariants)
	variants.Get("/:id", productHandler.GetVariant)

	// Customers y sus monederos (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/wallet", customerHandler.GetWallet)

	// Plan de cuentas (protegido)
	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.GetByID)

	// Movimientos de stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.MovementUC)
	stockGroup.Post("/movements", stockHandler.CreateDraft)
	stockGroup.Get("/movements/:id", stockHandler.GetByID)
	stockGroup.Post("/movements/:id/post", stockHandler.Post)
	stockGroup.Post("/movements/:id/reject", stockHandler.Reject)
	stockGroup.Get("/variants/:variant_id/movements", stockHandler.ListByVariant)

	// Transacciones de monedero (protegido)
	walletGroup := protected.Group("/wallet")
	walletHandler := NewWalletHandler(deps.WalletTxUC)
	walletGroup.Post("/transactions", walletHandler.CreateDraft)
	walletGroup.Get("/transactions/:id", walletHandler.GetByID)
	walletGroup.Post("/transactions/:id/post", walletHandler.Post)
	walletGroup.Post("/transactions/:id/reject", walletHandler.Reject)
	walletGroup.Get("/wallets/:wallet_id/transactions", walletHandler.ListByWallet)

	// Recibos de caja (protegido)
	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	receipts.Post("/", receiptHandler.CreateDraft)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Get("/:id/pdf", receiptHandler.DownloadPDF)
	receipts.Post("/:id/post", receiptHandler.Post)
	receipts.Post("/:id/reject", receiptHandler.Reject)

	// Auditorías de inventario (protegido)
	audits := protected.Group("/audits")
	auditHandler := NewAuditHandler(deps.AuditUC)
	audits.Post("/", auditHandler.CreateDraft)
	audits.Post("/items/:item_id/count", auditHandler.RecordCount)
	audits.Get("/:id", auditHandler.GetByID)
	audits.Post("/:id/start", auditHandler.Start)
	audits.Post("/:id/complete", auditHandler.Complete)
	audits.Post("/:id/cancel", auditHandler.Cancel)

	// Libro diario (protegido)
	journalGroup := protected.Group("/journal")
	journalHandler := NewJournalHandler(deps.JournalUC)
	journalGroup.Post("/entries", journalHandler.CreateDraft)
	journalGroup.Get("/entries", journalHandler.List)
	journalGroup.Get("/entries/:id", journalHandler.GetByID)
	journalGroup.Post("/entries/:id/post", journalHandler.Post)
	journalGroup.Post("/entries/:id/reject", journalHandler.Reject)
	journalGroup.Get("/trial-balance", journalHandler.TrialBalance)
}
