package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.WalletTransactionRepository = (*WalletTransactionRepo)(nil)

const walletTxCols = "id, organization_id, wallet_id, type, amount, balance_before, balance_after, " +
	"receipt_id, sales_order_id, note, created_at, created_by, " + postingStateCols

// WalletTransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
type WalletTransactionRepo struct {
	q Querier
}

// NewWalletTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWalletTransactionRepository(q Querier) *WalletTransactionRepo {
	return &WalletTransactionRepo{q: q}
}

func scanWalletTx(s rowScanner) (*entity.WalletTransaction, error) {
	var t entity.WalletTransaction
	var receiptID, salesOrderID, note, createdBy *string
	var tmp stateTmp
	dest := []any{
		&t.ID, &t.OrganizationID, &t.WalletID, &t.Type, &t.Amount,
		&t.BalanceBefore, &t.BalanceAfter, &receiptID, &salesOrderID, &note,
		&t.CreatedAt, &createdBy,
	}
	dest = append(dest, tmp.dest(&t.State)...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	t.ReceiptID = strVal(receiptID)
	t.SalesOrderID = strVal(salesOrderID)
	t.Note = strVal(note)
	t.CreatedBy = strVal(createdBy)
	tmp.apply(&t.State)
	return &t, nil
}

// Create persiste una transacción de monedero (normalmente en borrador).
func (r *WalletTransactionRepo) Create(tx *entity.WalletTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO wallet_transactions (` + walletTxCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	args := []any{
		tx.ID, tx.OrganizationID, tx.WalletID, tx.Type, tx.Amount,
		tx.BalanceBefore, tx.BalanceAfter,
		nullStr(tx.ReceiptID), nullStr(tx.SalesOrderID), nullStr(tx.Note),
		tx.CreatedAt, nullStr(tx.CreatedBy),
	}
	args = append(args, stateArgs(&tx.State)...)
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("create wallet transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *WalletTransactionRepo) GetByID(id string) (*entity.WalletTransaction, error) {
	query := `SELECT ` + walletTxCols + ` FROM wallet_transactions WHERE id = $1`
	t, err := scanWalletTx(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet transaction: %w", err)
	}
	return t, nil
}

// GetForUpdate obtiene la transacción y bloquea la fila del documento.
func (r *WalletTransactionRepo) GetForUpdate(id string) (*entity.WalletTransaction, error) {
	query := `SELECT ` + walletTxCols + ` FROM wallet_transactions WHERE id = $1 FOR UPDATE`
	t, err := scanWalletTx(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet transaction for update: %w", err)
	}
	return t, nil
}

// Update escribe snapshots de saldo y campos de contabilización.
func (r *WalletTransactionRepo) Update(tx *entity.WalletTransaction) error {
	query := `
		UPDATE wallet_transactions SET
			balance_before = $2, balance_after = $3,
			is_posted = $4, posted_at = $5, posted_by = $6,
			is_rejected = $7, rejected_at = $8, rejected_by = $9, reject_reason = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.BalanceBefore, tx.BalanceAfter,
		tx.IsPosted, tx.PostedAt, nullStr(tx.PostedByUserID),
		tx.IsRejected, tx.RejectedAt, nullStr(tx.RejectedByUserID), nullStr(tx.RejectReason),
	)
	if err != nil {
		return fmt.Errorf("update wallet transaction: %w", err)
	}
	return nil
}

// ListByWallet lista el extracto del monedero, más reciente primero.
func (r *WalletTransactionRepo) ListByWallet(walletID string, limit, offset int) ([]*entity.WalletTransaction, error) {
	query := `
		SELECT ` + walletTxCols + ` FROM wallet_transactions
		WHERE wallet_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, walletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.WalletTransaction
	for rows.Next() {
		t, err := scanWalletTx(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
