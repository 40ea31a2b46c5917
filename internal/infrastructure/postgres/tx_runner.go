package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Comercio-api/internal/application/audit"
	"github.com/jhoicas/Comercio-api/internal/application/journal"
	"github.com/jhoicas/Comercio-api/internal/application/stock"
	"github.com/jhoicas/Comercio-api/internal/application/wallet"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Ensure TxRunner implements the application-layer runners.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ wallet.TxRunner = (*TxRunner)(nil)
var _ audit.TxRunner = (*TxRunner)(nil)
var _ journal.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Fallas de serialización y deadlocks se traducen a ErrConcurrentModification
// para que la capa HTTP responda 409 y el cliente reintente.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConcurrentModification
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConcurrentModification
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run inicia una transacción con los repos del libro de stock atados a la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	batchRepo repository.StockBatchRepository,
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewStockMovementRepository(q),
			NewVariantRepository(q),
			NewStockBatchRepository(q),
			NewJournalRepository(q),
			NewAccountRepository(q),
		)
	})
}

// RunWallet inicia una transacción con los repos del libro de monederos.
func (r *TxRunner) RunWallet(ctx context.Context, fn func(
	walletRepo repository.WalletRepository,
	walletTxRepo repository.WalletTransactionRepository,
	receiptRepo repository.ReceiptRepository,
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewWalletRepository(q),
			NewWalletTransactionRepository(q),
			NewReceiptRepository(q),
			NewJournalRepository(q),
			NewAccountRepository(q),
		)
	})
}

// RunAudit inicia una transacción con los repos de auditoría; el cierre
// contabiliza los ajustes a través del libro de stock en la misma tx.
func (r *TxRunner) RunAudit(ctx context.Context, fn func(
	auditRepo repository.AuditRepository,
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	batchRepo repository.StockBatchRepository,
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewAuditRepository(q),
			NewStockMovementRepository(q),
			NewVariantRepository(q),
			NewStockBatchRepository(q),
			NewJournalRepository(q),
			NewAccountRepository(q),
		)
	})
}

// RunJournal inicia una transacción con los repos del diario contable.
func (r *TxRunner) RunJournal(ctx context.Context, fn func(
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewJournalRepository(q),
			NewAccountRepository(q),
		)
	})
}
