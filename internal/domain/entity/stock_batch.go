package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch es una capa del libro FIFO: unidades recibidas a un costo y
// fecha concretos. Bajo CostMethodFIFO los lotes son la fuente autoritativa
// de valoración; Remaining se consume de más antiguo a más reciente y nunca
// baja de cero.
type StockBatch struct {
	ID             string
	OrganizationID string
	VariantID      string
	MovementID     string // movimiento contabilizado que creó el lote
	Remaining      int64
	UnitCost       decimal.Decimal
	ReceivedAt     time.Time
}
