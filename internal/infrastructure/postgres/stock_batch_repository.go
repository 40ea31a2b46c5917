package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación del libro de lotes FIFO sobre PostgreSQL
// (usable con pool o tx).
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

// Create persiste un lote nuevo (entrada contabilizada bajo FIFO).
func (r *StockBatchRepo) Create(batch *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (id, organization_id, variant_id, movement_id, remaining, unit_cost, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.OrganizationID, batch.VariantID, batch.MovementID,
		batch.Remaining, batch.UnitCost, batch.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock batch: %w", err)
	}
	return nil
}

// ListOpenForUpdate devuelve los lotes con remanente de la variante, más
// antiguos primero, bloqueados para el consumo FIFO.
func (r *StockBatchRepo) ListOpenForUpdate(variantID string) ([]*entity.StockBatch, error) {
	query := `
		SELECT id, organization_id, variant_id, movement_id, remaining, unit_cost, received_at
		FROM stock_batches
		WHERE variant_id = $1 AND remaining > 0
		ORDER BY received_at ASC, id ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, variantID)
	if err != nil {
		return nil, fmt.Errorf("list open batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		if err := rows.Scan(&b.ID, &b.OrganizationID, &b.VariantID, &b.MovementID,
			&b.Remaining, &b.UnitCost, &b.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// UpdateRemaining escribe el remanente de un lote tras el consumo.
func (r *StockBatchRepo) UpdateRemaining(id string, remaining int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_batches SET remaining = $2 WHERE id = $1`,
		id, remaining,
	)
	if err != nil {
		return fmt.Errorf("update batch remaining: %w", err)
	}
	return nil
}
