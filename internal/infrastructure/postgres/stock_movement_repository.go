package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementCols = "id, organization_id, variant_id, type, quantity, unit_cost, stock_before, stock_after, " +
	"source_location_id, destination_location_id, note, created_at, created_by, " + postingStateCols

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovement(s rowScanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var srcLoc, dstLoc, note, createdBy *string
	var tmp stateTmp
	dest := []any{
		&m.ID, &m.OrganizationID, &m.VariantID, &m.Type, &m.Quantity, &m.UnitCost,
		&m.StockBefore, &m.StockAfter, &srcLoc, &dstLoc, &note, &m.CreatedAt, &createdBy,
	}
	dest = append(dest, tmp.dest(&m.State)...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	m.SourceLocationID = strVal(srcLoc)
	m.DestinationLocationID = strVal(dstLoc)
	m.Note = strVal(note)
	m.CreatedBy = strVal(createdBy)
	tmp.apply(&m.State)
	return &m, nil
}

// Create persiste un movimiento de stock (normalmente en borrador).
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	args := []any{
		movement.ID, movement.OrganizationID, movement.VariantID, movement.Type,
		movement.Quantity, movement.UnitCost, movement.StockBefore, movement.StockAfter,
		nullStr(movement.SourceLocationID), nullStr(movement.DestinationLocationID),
		nullStr(movement.Note), movement.CreatedAt, nullStr(movement.CreatedBy),
	}
	args = append(args, stateArgs(&movement.State)...)
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementCols + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// GetForUpdate obtiene el movimiento y bloquea la fila del documento.
func (r *StockMovementRepo) GetForUpdate(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementCols + ` FROM stock_movements WHERE id = $1 FOR UPDATE`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement for update: %w", err)
	}
	return m, nil
}

// Update escribe snapshots de stock y campos de contabilización.
func (r *StockMovementRepo) Update(movement *entity.StockMovement) error {
	query := `
		UPDATE stock_movements SET
			stock_before = $2, stock_after = $3,
			is_posted = $4, posted_at = $5, posted_by = $6,
			is_rejected = $7, rejected_at = $8, rejected_by = $9, reject_reason = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.StockBefore, movement.StockAfter,
		movement.IsPosted, movement.PostedAt, nullStr(movement.PostedByUserID),
		movement.IsRejected, movement.RejectedAt, nullStr(movement.RejectedByUserID), nullStr(movement.RejectReason),
	)
	if err != nil {
		return fmt.Errorf("update stock movement: %w", err)
	}
	return nil
}

// ListByVariant lista movimientos de una variante, más reciente primero.
func (r *StockMovementRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementCols + ` FROM stock_movements
		WHERE variant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, variantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by variant: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
