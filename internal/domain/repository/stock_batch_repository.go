package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// StockBatchRepository define el puerto del libro de lotes FIFO.
type StockBatchRepository interface {
	Create(batch *entity.StockBatch) error
	// ListOpenForUpdate devuelve los lotes con Remaining > 0 de la variante,
	// ordenados por ReceivedAt ascendente y bloqueados (FOR UPDATE).
	ListOpenForUpdate(variantID string) ([]*entity.StockBatch, error)
	UpdateRemaining(id string, remaining int64) error
}
