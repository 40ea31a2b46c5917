package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una auditoría de inventario. Flujo lineal
// DRAFT → IN_PROGRESS → COMPLETED; CANCELLED alcanzable desde los dos primeros.
const (
	AuditStatusDraft      = "DRAFT"
	AuditStatusInProgress = "IN_PROGRESS"
	AuditStatusCompleted  = "COMPLETED"
	AuditStatusCancelled  = "CANCELLED"
)

// InventoryAudit es un conteo físico de inventario. El snapshot teórico se
// toma en un único instante (SnapshotTakenAt); movimientos posteriores no lo
// alteran. Los contadores agregados se mantienen incrementalmente al
// registrar conteos.
type InventoryAudit struct {
	ID             string
	OrganizationID string
	Status         string
	LocationID     string // informativo; el snapshot siempre cubre la organización
	SnapshotTakenAt *time.Time

	TotalVariants      int
	CountedVariants    int
	TotalVariance      int64           // suma con signo de los variances contados
	TotalVarianceValue decimal.Decimal // suma de variance * costo snapshot

	CreatedAt   time.Time
	CreatedBy   string
	CompletedAt *time.Time
	CompletedBy string
	CancelledAt *time.Time
	CancelledBy string
}

// InventoryAuditItem es el conteo de una variante dentro de la auditoría.
// TheoreticalStock y SnapshotAverageCost se capturan en el snapshot y no
// cambian aunque haya contabilizaciones durante la auditoría; el ajuste que
// genere usará el costo del snapshot, no el vivo.
type InventoryAuditItem struct {
	ID                  string
	AuditID             string
	VariantID           string
	TheoreticalStock    int64
	SnapshotAverageCost decimal.Decimal

	CountedStock  *int64 // nulo hasta que se cuenta
	Variance      int64  // CountedStock - TheoreticalStock
	VarianceValue decimal.Decimal

	AdjustmentMovementID string // movimiento AUDIT_ADJUSTMENT generado al completar

	CountedAt *time.Time
	CountedBy string
}
