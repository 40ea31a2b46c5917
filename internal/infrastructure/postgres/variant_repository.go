package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

const variantCols = "id, organization_id, product_id, sku, name, stock_quantity, average_cost, created_at, updated_at"

// VariantRepo implementación sobre PostgreSQL para la fila de stock/costo
// de cada variante (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

func scanVariant(s rowScanner) (*entity.ProductVariant, error) {
	var v entity.ProductVariant
	err := s.Scan(&v.ID, &v.OrganizationID, &v.ProductID, &v.SKU, &v.Name,
		&v.StockQuantity, &v.AverageCost, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste una variante con stock y costo en cero.
func (r *VariantRepo) Create(variant *entity.ProductVariant) error {
	query := `
		INSERT INTO product_variants (` + variantCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.OrganizationID, variant.ProductID, variant.SKU, variant.Name,
		variant.StockQuantity, variant.AverageCost, variant.CreatedAt, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	query := `SELECT ` + variantCols + ` FROM product_variants WHERE id = $1`
	v, err := scanVariant(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

// GetForUpdate obtiene la variante y bloquea la fila (SELECT FOR UPDATE).
func (r *VariantRepo) GetForUpdate(id string) (*entity.ProductVariant, error) {
	query := `SELECT ` + variantCols + ` FROM product_variants WHERE id = $1 FOR UPDATE`
	v, err := scanVariant(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant for update: %w", err)
	}
	return v, nil
}

// UpdateStockAndCost escribe cantidad y costo promedio (solo desde el motor de contabilización).
func (r *VariantRepo) UpdateStockAndCost(id string, stockQuantity int64, averageCost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE product_variants SET stock_quantity = $2, average_cost = $3, updated_at = now() WHERE id = $1`,
		id, stockQuantity, averageCost,
	)
	if err != nil {
		return fmt.Errorf("update variant stock/cost: %w", err)
	}
	return nil
}

// ListByOrganization lista todas las variantes de la organización (para el snapshot de auditoría).
func (r *VariantRepo) ListByOrganization(orgID string) ([]*entity.ProductVariant, error) {
	query := `SELECT ` + variantCols + ` FROM product_variants WHERE organization_id = $1 ORDER BY sku`
	rows, err := r.q.Query(context.Background(), query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
