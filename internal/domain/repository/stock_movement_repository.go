package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para movimientos
// de stock. Update solo escribe los campos de contabilización y los snapshots
// stock_before/stock_after; un movimiento contabilizado o rechazado nunca se
// vuelve a tocar.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// GetForUpdate bloquea la fila del documento durante la contabilización:
	// dos Post concurrentes sobre el mismo movimiento se serializan y el
	// segundo observa el estado ya contabilizado (ErrInvalidState).
	GetForUpdate(id string) (*entity.StockMovement, error)
	Update(movement *entity.StockMovement) error
	ListByVariant(variantID string, limit, offset int) ([]*entity.StockMovement, error)
}
