package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// VariantRepository define el puerto para las variantes de producto (la fila
// de stock/costo). UpdateStockAndCost es la única escritura de
// StockQuantity/AverageCost y solo se invoca dentro de una transacción de
// contabilización.
type VariantRepository interface {
	Create(variant *entity.ProductVariant) error
	GetByID(id string) (*entity.ProductVariant, error)
	// GetForUpdate bloquea la fila de la variante (SELECT FOR UPDATE) durante
	// la transacción de contabilización para serializar posts concurrentes.
	GetForUpdate(id string) (*entity.ProductVariant, error)
	UpdateStockAndCost(id string, stockQuantity int64, averageCost decimal.Decimal) error
	ListByOrganization(orgID string) ([]*entity.ProductVariant, error)
}
