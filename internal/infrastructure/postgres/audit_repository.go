package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

const auditCols = "id, organization_id, status, location_id, snapshot_taken_at, " +
	"total_variants, counted_variants, total_variance, total_variance_value, " +
	"created_at, created_by, completed_at, completed_by, cancelled_at, cancelled_by"

const auditItemCols = "id, audit_id, variant_id, theoretical_stock, snapshot_average_cost, " +
	"counted_stock, variance, variance_value, adjustment_movement_id, counted_at, counted_by"

// AuditRepo implementación sobre PostgreSQL (usable con pool o tx).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func scanAudit(s rowScanner) (*entity.InventoryAudit, error) {
	var a entity.InventoryAudit
	var locationID, completedBy, cancelledBy *string
	err := s.Scan(&a.ID, &a.OrganizationID, &a.Status, &locationID, &a.SnapshotTakenAt,
		&a.TotalVariants, &a.CountedVariants, &a.TotalVariance, &a.TotalVarianceValue,
		&a.CreatedAt, &a.CreatedBy, &a.CompletedAt, &completedBy, &a.CancelledAt, &cancelledBy)
	if err != nil {
		return nil, err
	}
	a.LocationID = strVal(locationID)
	a.CompletedBy = strVal(completedBy)
	a.CancelledBy = strVal(cancelledBy)
	return &a, nil
}

func scanAuditItem(s rowScanner) (*entity.InventoryAuditItem, error) {
	var it entity.InventoryAuditItem
	var adjustmentMovementID, countedBy *string
	err := s.Scan(&it.ID, &it.AuditID, &it.VariantID, &it.TheoreticalStock, &it.SnapshotAverageCost,
		&it.CountedStock, &it.Variance, &it.VarianceValue, &adjustmentMovementID, &it.CountedAt, &countedBy)
	if err != nil {
		return nil, err
	}
	it.AdjustmentMovementID = strVal(adjustmentMovementID)
	it.CountedBy = strVal(countedBy)
	return &it, nil
}

// CreateAudit persiste la cabecera de la auditoría.
func (r *AuditRepo) CreateAudit(audit *entity.InventoryAudit) error {
	query := `
		INSERT INTO inventory_audits (` + auditCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		audit.ID, audit.OrganizationID, audit.Status, nullStr(audit.LocationID), audit.SnapshotTakenAt,
		audit.TotalVariants, audit.CountedVariants, audit.TotalVariance, audit.TotalVarianceValue,
		audit.CreatedAt, audit.CreatedBy, audit.CompletedAt, nullStr(audit.CompletedBy),
		audit.CancelledAt, nullStr(audit.CancelledBy),
	)
	if err != nil {
		return fmt.Errorf("create audit: %w", err)
	}
	return nil
}

// GetAudit obtiene la cabecera por ID.
func (r *AuditRepo) GetAudit(id string) (*entity.InventoryAudit, error) {
	query := `SELECT ` + auditCols + ` FROM inventory_audits WHERE id = $1`
	a, err := scanAudit(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit: %w", err)
	}
	return a, nil
}

// GetAuditForUpdate obtiene la cabecera y bloquea la fila.
func (r *AuditRepo) GetAuditForUpdate(id string) (*entity.InventoryAudit, error) {
	query := `SELECT ` + auditCols + ` FROM inventory_audits WHERE id = $1 FOR UPDATE`
	a, err := scanAudit(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit for update: %w", err)
	}
	return a, nil
}

// UpdateAudit escribe estado, snapshot y contadores agregados.
func (r *AuditRepo) UpdateAudit(audit *entity.InventoryAudit) error {
	query := `
		UPDATE inventory_audits SET
			status = $2, snapshot_taken_at = $3,
			total_variants = $4, counted_variants = $5, total_variance = $6, total_variance_value = $7,
			completed_at = $8, completed_by = $9, cancelled_at = $10, cancelled_by = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		audit.ID, audit.Status, audit.SnapshotTakenAt,
		audit.TotalVariants, audit.CountedVariants, audit.TotalVariance, audit.TotalVarianceValue,
		audit.CompletedAt, nullStr(audit.CompletedBy), audit.CancelledAt, nullStr(audit.CancelledBy),
	)
	if err != nil {
		return fmt.Errorf("update audit: %w", err)
	}
	return nil
}

// CreateItem persiste un ítem del snapshot.
func (r *AuditRepo) CreateItem(item *entity.InventoryAuditItem) error {
	query := `
		INSERT INTO inventory_audit_items (` + auditItemCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.AuditID, item.VariantID, item.TheoreticalStock, item.SnapshotAverageCost,
		item.CountedStock, item.Variance, item.VarianceValue,
		nullStr(item.AdjustmentMovementID), item.CountedAt, nullStr(item.CountedBy),
	)
	if err != nil {
		return fmt.Errorf("create audit item: %w", err)
	}
	return nil
}

// GetItem obtiene un ítem por ID.
func (r *AuditRepo) GetItem(id string) (*entity.InventoryAuditItem, error) {
	query := `SELECT ` + auditItemCols + ` FROM inventory_audit_items WHERE id = $1`
	it, err := scanAuditItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit item: %w", err)
	}
	return it, nil
}

// UpdateItem escribe el conteo, el variance y el enlace al ajuste.
func (r *AuditRepo) UpdateItem(item *entity.InventoryAuditItem) error {
	query := `
		UPDATE inventory_audit_items SET
			counted_stock = $2, variance = $3, variance_value = $4,
			adjustment_movement_id = $5, counted_at = $6, counted_by = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CountedStock, item.Variance, item.VarianceValue,
		nullStr(item.AdjustmentMovementID), item.CountedAt, nullStr(item.CountedBy),
	)
	if err != nil {
		return fmt.Errorf("update audit item: %w", err)
	}
	return nil
}

// ListItems devuelve los ítems de la auditoría.
func (r *AuditRepo) ListItems(auditID string) ([]*entity.InventoryAuditItem, error) {
	query := `SELECT ` + auditItemCols + ` FROM inventory_audit_items WHERE audit_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, auditID)
	if err != nil {
		return nil, fmt.Errorf("list audit items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryAuditItem
	for rows.Next() {
		it, err := scanAuditItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// CountUncounted devuelve cuántos ítems siguen sin conteo físico.
func (r *AuditRepo) CountUncounted(auditID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM inventory_audit_items WHERE audit_id = $1 AND counted_stock IS NULL`,
		auditID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count uncounted items: %w", err)
	}
	return n, nil
}
