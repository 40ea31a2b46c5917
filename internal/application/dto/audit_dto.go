package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// CreateAuditRequest cuerpo para crear una auditoría en borrador.
type CreateAuditRequest struct {
	LocationID string `json:"location_id,omitempty"` // vacío = toda la organización
}

// RecordCountRequest cuerpo para registrar el conteo físico de un ítem.
type RecordCountRequest struct {
	CountedStock int64 `json:"counted_stock"`
}

// AuditItemResponse conteo de una variante dentro de la auditoría.
type AuditItemResponse struct {
	ID                   string          `json:"id"`
	VariantID            string          `json:"variant_id"`
	TheoreticalStock     int64           `json:"theoretical_stock"`
	SnapshotAverageCost  decimal.Decimal `json:"snapshot_average_cost"`
	CountedStock         *int64          `json:"counted_stock,omitempty"`
	Variance             int64           `json:"variance"`
	VarianceValue        decimal.Decimal `json:"variance_value"`
	AdjustmentMovementID string          `json:"adjustment_movement_id,omitempty"`
	CountedAt            *time.Time      `json:"counted_at,omitempty"`
	CountedBy            string          `json:"counted_by,omitempty"`
}

// AuditResponse cabecera de la auditoría con contadores agregados.
type AuditResponse struct {
	ID                 string              `json:"id"`
	Status             string              `json:"status"`
	LocationID         string              `json:"location_id,omitempty"`
	SnapshotTakenAt    *time.Time          `json:"snapshot_taken_at,omitempty"`
	TotalVariants      int                 `json:"total_variants"`
	CountedVariants    int                 `json:"counted_variants"`
	TotalVariance      int64               `json:"total_variance"`
	TotalVarianceValue decimal.Decimal     `json:"total_variance_value"`
	CreatedAt          time.Time           `json:"created_at"`
	CompletedAt        *time.Time          `json:"completed_at,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	Items              []AuditItemResponse `json:"items,omitempty"`
}

// ToAuditResponse mapea la cabecera y, si se pasan, los ítems.
func ToAuditResponse(a *entity.InventoryAudit, items []*entity.InventoryAuditItem) *AuditResponse {
	if a == nil {
		return nil
	}
	out := &AuditResponse{
		ID:                 a.ID,
		Status:             a.Status,
		LocationID:         a.LocationID,
		SnapshotTakenAt:    a.SnapshotTakenAt,
		TotalVariants:      a.TotalVariants,
		CountedVariants:    a.CountedVariants,
		TotalVariance:      a.TotalVariance,
		TotalVarianceValue: a.TotalVarianceValue,
		CreatedAt:          a.CreatedAt,
		CompletedAt:        a.CompletedAt,
		CancelledAt:        a.CancelledAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, AuditItemResponse{
			ID:                   it.ID,
			VariantID:            it.VariantID,
			TheoreticalStock:     it.TheoreticalStock,
			SnapshotAverageCost:  it.SnapshotAverageCost,
			CountedStock:         it.CountedStock,
			Variance:             it.Variance,
			VarianceValue:        it.VarianceValue,
			AdjustmentMovementID: it.AdjustmentMovementID,
			CountedAt:            it.CountedAt,
			CountedBy:            it.CountedBy,
		})
	}
	return out
}
