package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// ReceiptRepository define el puerto de persistencia para recibos y sus ítems.
// Los ítems solo se escriben junto con el borrador; después del Create el
// recibo solo cambia sus campos de contabilización y el enlace a la
// transacción de monedero.
type ReceiptRepository interface {
	Create(receipt *entity.Receipt, items []*entity.ReceiptItem) error
	GetByID(id string) (*entity.Receipt, error)
	// GetForUpdate bloquea la fila del recibo durante la contabilización.
	GetForUpdate(id string) (*entity.Receipt, error)
	GetItems(receiptID string) ([]*entity.ReceiptItem, error)
	Update(receipt *entity.Receipt) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Receipt, error)
}
