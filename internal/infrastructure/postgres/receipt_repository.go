package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

const receiptCols = "id, organization_id, customer_id, wallet_id, type, number, date, total_amount, " +
	"wallet_transaction_id, note, created_at, created_by, " + postingStateCols

// ReceiptRepo implementación sobre PostgreSQL (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

func scanReceipt(s rowScanner) (*entity.Receipt, error) {
	var rc entity.Receipt
	var number, walletTxID, note, createdBy *string
	var tmp stateTmp
	dest := []any{
		&rc.ID, &rc.OrganizationID, &rc.CustomerID, &rc.WalletID, &rc.Type,
		&number, &rc.Date, &rc.TotalAmount, &walletTxID, &note, &rc.CreatedAt, &createdBy,
	}
	dest = append(dest, tmp.dest(&rc.State)...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	rc.Number = strVal(number)
	rc.WalletTransactionID = strVal(walletTxID)
	rc.Note = strVal(note)
	rc.CreatedBy = strVal(createdBy)
	tmp.apply(&rc.State)
	return &rc, nil
}

// Create persiste el recibo junto con sus ítems (todo o nada).
func (r *ReceiptRepo) Create(receipt *entity.Receipt, items []*entity.ReceiptItem) error {
	query := `
		INSERT INTO receipts (` + receiptCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	args := []any{
		receipt.ID, receipt.OrganizationID, receipt.CustomerID, receipt.WalletID, receipt.Type,
		nullStr(receipt.Number), receipt.Date, receipt.TotalAmount,
		nullStr(receipt.WalletTransactionID), nullStr(receipt.Note),
		receipt.CreatedAt, nullStr(receipt.CreatedBy),
	}
	args = append(args, stateArgs(&receipt.State)...)
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create receipt: %w", err)
	}

	itemQuery := `
		INSERT INTO receipt_items (id, receipt_id, description, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, it := range items {
		if _, err := r.q.Exec(context.Background(), itemQuery,
			it.ID, it.ReceiptID, it.Description, it.Quantity, it.UnitPrice, it.Subtotal); err != nil {
			return fmt.Errorf("create receipt item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un recibo por ID.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptCols + ` FROM receipts WHERE id = $1`
	rc, err := scanReceipt(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return rc, nil
}

// GetForUpdate obtiene el recibo y bloquea la fila del documento.
func (r *ReceiptRepo) GetForUpdate(id string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptCols + ` FROM receipts WHERE id = $1 FOR UPDATE`
	rc, err := scanReceipt(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt for update: %w", err)
	}
	return rc, nil
}

// GetItems devuelve las líneas del recibo.
func (r *ReceiptRepo) GetItems(receiptID string) ([]*entity.ReceiptItem, error) {
	query := `
		SELECT id, receipt_id, description, quantity, unit_price, subtotal
		FROM receipt_items WHERE receipt_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("get receipt items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReceiptItem
	for rows.Next() {
		var it entity.ReceiptItem
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan receipt item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update escribe el enlace a la transacción y los campos de contabilización.
func (r *ReceiptRepo) Update(receipt *entity.Receipt) error {
	query := `
		UPDATE receipts SET
			wallet_transaction_id = $2,
			is_posted = $3, posted_at = $4, posted_by = $5,
			is_rejected = $6, rejected_at = $7, rejected_by = $8, reject_reason = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, nullStr(receipt.WalletTransactionID),
		receipt.IsPosted, receipt.PostedAt, nullStr(receipt.PostedByUserID),
		receipt.IsRejected, receipt.RejectedAt, nullStr(receipt.RejectedByUserID), nullStr(receipt.RejectReason),
	)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	return nil
}

// ListByCustomer lista los recibos del cliente, más reciente primero.
func (r *ReceiptRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Receipt, error) {
	query := `
		SELECT ` + receiptCols + ` FROM receipts
		WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, rc)
	}
	return list, rows.Err()
}
