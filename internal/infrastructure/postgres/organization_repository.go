package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación sobre PostgreSQL (usable con pool o tx).
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Create persiste una organización.
func (r *OrganizationRepo) Create(org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, cost_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		org.ID, org.Name, org.CostMethod, org.Status, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(id string) (*entity.Organization, error) {
	query := `
		SELECT id, name, cost_method, status, created_at, updated_at
		FROM organizations WHERE id = $1`
	var o entity.Organization
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Name, &o.CostMethod, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}

// GetPostingAccounts devuelve el mapeo de cuentas contables; nil si no existe.
func (r *OrganizationRepo) GetPostingAccounts(orgID string) (*entity.PostingAccounts, error) {
	query := `
		SELECT organization_id, inventory_account_id, adjustment_account_id,
		       payable_account_id, cash_account_id, deposits_account_id, updated_at
		FROM organization_posting_accounts WHERE organization_id = $1`
	var a entity.PostingAccounts
	err := r.q.QueryRow(context.Background(), query, orgID).Scan(
		&a.OrganizationID, &a.InventoryAccountID, &a.AdjustmentAccountID,
		&a.PayableAccountID, &a.CashAccountID, &a.DepositsAccountID, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get posting accounts: %w", err)
	}
	return &a, nil
}

// SavePostingAccounts inserta o reemplaza el mapeo de cuentas de la organización.
func (r *OrganizationRepo) SavePostingAccounts(accounts *entity.PostingAccounts) error {
	query := `
		INSERT INTO organization_posting_accounts
			(organization_id, inventory_account_id, adjustment_account_id, payable_account_id, cash_account_id, deposits_account_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (organization_id)
		DO UPDATE SET inventory_account_id = EXCLUDED.inventory_account_id,
		              adjustment_account_id = EXCLUDED.adjustment_account_id,
		              payable_account_id = EXCLUDED.payable_account_id,
		              cash_account_id = EXCLUDED.cash_account_id,
		              deposits_account_id = EXCLUDED.deposits_account_id,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		accounts.OrganizationID, accounts.InventoryAccountID, accounts.AdjustmentAccountID,
		accounts.PayableAccountID, accounts.CashAccountID, accounts.DepositsAccountID,
	)
	if err != nil {
		return fmt.Errorf("save posting accounts: %w", err)
	}
	return nil
}
