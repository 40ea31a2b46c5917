package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.WalletRepository = (*WalletRepo)(nil)

const walletCols = "id, organization_id, customer_id, balance, created_at, updated_at"

// WalletRepo implementación sobre PostgreSQL (usable con pool o tx).
type WalletRepo struct {
	q Querier
}

// NewWalletRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWalletRepository(q Querier) *WalletRepo {
	return &WalletRepo{q: q}
}

func scanWallet(s rowScanner) (*entity.Wallet, error) {
	var w entity.Wallet
	err := s.Scan(&w.ID, &w.OrganizationID, &w.CustomerID, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create persiste un monedero con saldo cero. Uno por cliente.
func (r *WalletRepo) Create(wallet *entity.Wallet) error {
	query := `
		INSERT INTO wallets (` + walletCols + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		wallet.ID, wallet.OrganizationID, wallet.CustomerID, wallet.Balance,
		wallet.CreatedAt, wallet.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID obtiene un monedero por ID.
func (r *WalletRepo) GetByID(id string) (*entity.Wallet, error) {
	query := `SELECT ` + walletCols + ` FROM wallets WHERE id = $1`
	w, err := scanWallet(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return w, nil
}

// GetByCustomer obtiene el monedero del cliente.
func (r *WalletRepo) GetByCustomer(customerID string) (*entity.Wallet, error) {
	query := `SELECT ` + walletCols + ` FROM wallets WHERE customer_id = $1`
	w, err := scanWallet(r.q.QueryRow(context.Background(), query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by customer: %w", err)
	}
	return w, nil
}

// GetForUpdate obtiene el monedero y bloquea la fila (SELECT FOR UPDATE).
func (r *WalletRepo) GetForUpdate(id string) (*entity.Wallet, error) {
	query := `SELECT ` + walletCols + ` FROM wallets WHERE id = $1 FOR UPDATE`
	w, err := scanWallet(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet for update: %w", err)
	}
	return w, nil
}

// UpdateBalance escribe el saldo (solo desde el motor de contabilización).
func (r *WalletRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE wallets SET balance = $2, updated_at = now() WHERE id = $1`,
		id, balance,
	)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	return nil
}
