package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// CreateMovementRequest cuerpo para crear un borrador de movimiento de stock.
// Quantity es positiva; para SALE y TRANSFER indica unidades a mover, para
// ADJUSTMENT lleva signo. UnitCost es obligatorio en entradas.
type CreateMovementRequest struct {
	VariantID             string           `json:"variant_id"`
	Type                  string           `json:"type"` // PURCHASE | SALE | ADJUSTMENT | TRANSFER
	Quantity              int64            `json:"quantity"`
	UnitCost              *decimal.Decimal `json:"unit_cost,omitempty"`
	SourceLocationID      string           `json:"source_location_id,omitempty"`
	DestinationLocationID string           `json:"destination_location_id,omitempty"`
	Note                  string           `json:"note,omitempty"`
}

// MovementResponse representación de un movimiento de stock.
type MovementResponse struct {
	ID                    string           `json:"id"`
	VariantID             string           `json:"variant_id"`
	Type                  string           `json:"type"`
	Quantity              int64            `json:"quantity"`
	UnitCost              *decimal.Decimal `json:"unit_cost,omitempty"`
	StockBefore           int64            `json:"stock_before"`
	StockAfter            int64            `json:"stock_after"`
	SourceLocationID      string           `json:"source_location_id,omitempty"`
	DestinationLocationID string           `json:"destination_location_id,omitempty"`
	Note                  string           `json:"note,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	Posting               PostingStateResponse `json:"posting"`
}

// ToMovementResponse mapea la entidad.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:                    m.ID,
		VariantID:             m.VariantID,
		Type:                  m.Type,
		Quantity:              m.Quantity,
		UnitCost:              m.UnitCost,
		StockBefore:           m.StockBefore,
		StockAfter:            m.StockAfter,
		SourceLocationID:      m.SourceLocationID,
		DestinationLocationID: m.DestinationLocationID,
		Note:                  m.Note,
		CreatedAt:             m.CreatedAt,
		Posting:               ToPostingState(m.State),
	}
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
