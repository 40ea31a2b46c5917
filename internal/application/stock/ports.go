package stock

import (
	"context"

	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad de la contabilización:
// flags del documento, stock/costo de la variante, lotes FIFO y asiento
// contable se escriben todos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		batchRepo repository.StockBatchRepository,
		journalRepo repository.JournalRepository,
		accountRepo repository.AccountRepository,
	) error) error
}
