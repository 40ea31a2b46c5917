package journal

import (
	"context"

	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que un asiento se contabiliza con
// todas sus líneas o con ninguna.
type TxRunner interface {
	RunJournal(ctx context.Context, fn func(
		journalRepo repository.JournalRepository,
		accountRepo repository.AccountRepository,
	) error) error
}
