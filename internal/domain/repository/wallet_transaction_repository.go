package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// WalletTransactionRepository define el puerto de persistencia para
// transacciones de monedero.
type WalletTransactionRepository interface {
	Create(tx *entity.WalletTransaction) error
	GetByID(id string) (*entity.WalletTransaction, error)
	// GetForUpdate bloquea la fila del documento durante la contabilización.
	GetForUpdate(id string) (*entity.WalletTransaction, error)
	Update(tx *entity.WalletTransaction) error
	ListByWallet(walletID string, limit, offset int) ([]*entity.WalletTransaction, error)
}
