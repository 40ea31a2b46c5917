package wallet

import (
	"context"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del libro de monederos atados a esa tx.
type TxRunner interface {
	RunWallet(ctx context.Context, fn func(
		walletRepo repository.WalletRepository,
		walletTxRepo repository.WalletTransactionRepository,
		receiptRepo repository.ReceiptRepository,
		journalRepo repository.JournalRepository,
		accountRepo repository.AccountRepository,
	) error) error
}

// ReceiptPDFGenerator genera la representación imprimible de un recibo.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(
		ctx context.Context,
		receipt *entity.Receipt,
		items []*entity.ReceiptItem,
		org *entity.Organization,
		customer *entity.Customer,
	) ([]byte, error)
}
