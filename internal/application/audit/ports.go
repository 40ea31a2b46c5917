package audit

import (
	"context"

	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios necesarios para auditorías: el cierre contabiliza los ajustes
// generados a través del libro de stock en la misma transacción.
type TxRunner interface {
	RunAudit(ctx context.Context, fn func(
		auditRepo repository.AuditRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		batchRepo repository.StockBatchRepository,
		journalRepo repository.JournalRepository,
		accountRepo repository.AccountRepository,
	) error) error
}
