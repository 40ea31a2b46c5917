package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (dueño de una o más variantes).
// El CRUD de catálogo es superficie delgada; el motor solo necesita existencia
// y pertenencia a la organización.
type Product struct {
	ID             string
	OrganizationID string
	SKU            string // código único por organización
	Name           string
	Description    string
	Price          decimal.Decimal // precio de venta
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProductVariant es la unidad de inventario: cantidad en stock y costo
// promedio ponderado. Solo los movimientos de stock contabilizados la mutan;
// StockQuantity equivale siempre a la suma de deltas contabilizados desde su
// creación y nunca es negativa.
type ProductVariant struct {
	ID             string
	OrganizationID string
	ProductID      string
	SKU            string
	Name           string
	StockQuantity  int64
	AverageCost    decimal.Decimal // bajo FIFO es vista derivada del libro de lotes
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
