package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/posting"
)

// Tipos de movimiento de stock.
const (
	MovementTypePurchase        = "PURCHASE"         // entrada por compra (requiere costo unitario)
	MovementTypeSale            = "SALE"             // salida por venta
	MovementTypeAdjustment      = "ADJUSTMENT"       // ajuste manual (signo libre)
	MovementTypeTransfer        = "TRANSFER"         // traslado entre ubicaciones
	MovementTypeAuditAdjustment = "AUDIT_ADJUSTMENT" // ajuste generado por auditoría de inventario
)

// StockMovement representa un movimiento de inventario como documento
// contabilizable. Quantity es el efecto con signo sobre la variante; los
// traslados llevan ambas ubicaciones y efecto neto cero sobre la fila de la
// variante (el stock por ubicación es conceptual en este modelo).
// StockBefore/StockAfter se capturan al contabilizar y son inmutables.
type StockMovement struct {
	ID             string
	OrganizationID string
	VariantID      string
	Type           string
	Quantity       int64            // delta con signo (positivo entrada, negativo salida)
	UnitCost       *decimal.Decimal // obligatorio en entradas; nil en salidas
	StockBefore    int64
	StockAfter     int64

	SourceLocationID      string // solo TRANSFER
	DestinationLocationID string // solo TRANSFER

	Note      string
	CreatedAt time.Time
	CreatedBy string

	posting.State
}

// Delta devuelve el efecto del movimiento sobre StockQuantity de la variante.
// Un traslado mueve stock entre ubicaciones de la misma variante, así que su
// efecto neto sobre la fila es cero.
func (m *StockMovement) Delta() int64 {
	if m.Type == MovementTypeTransfer {
		return 0
	}
	return m.Quantity
}

// Inbound indica si el movimiento ingresa unidades (y por tanto afecta costo).
func (m *StockMovement) Inbound() bool {
	return m.Type != MovementTypeTransfer && m.Quantity > 0
}
