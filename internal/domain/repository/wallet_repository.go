package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// WalletRepository define el puerto para monederos de clientes.
// UpdateBalance es la única escritura de Balance y solo se invoca dentro de
// una transacción de contabilización.
type WalletRepository interface {
	Create(wallet *entity.Wallet) error
	GetByID(id string) (*entity.Wallet, error)
	GetByCustomer(customerID string) (*entity.Wallet, error)
	// GetForUpdate bloquea la fila del monedero (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Wallet, error)
	UpdateBalance(id string, balance decimal.Decimal) error
}
