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

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountCols = "id, organization_id, code, name, type, parent_id, is_active, created_at, updated_at"

// AccountRepo implementación del plan de cuentas sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

func scanAccount(s rowScanner) (*entity.Account, error) {
	var a entity.Account
	var parentID *string
	err := s.Scan(&a.ID, &a.OrganizationID, &a.Code, &a.Name, &a.Type,
		&parentID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.ParentID = strVal(parentID)
	return &a, nil
}

// Create persiste una cuenta. Code único por organización.
func (r *AccountRepo) Create(account *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.OrganizationID, account.Code, account.Name, account.Type,
		nullStr(account.ParentID), account.IsActive, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	query := `SELECT ` + accountCols + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// GetByCode obtiene una cuenta por organización y código.
func (r *AccountRepo) GetByCode(orgID, code string) (*entity.Account, error) {
	query := `SELECT ` + accountCols + ` FROM accounts WHERE organization_id = $1 AND code = $2`
	a, err := scanAccount(r.q.QueryRow(context.Background(), query, orgID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by code: %w", err)
	}
	return a, nil
}

// ListByOrganization lista el plan de cuentas completo ordenado por código.
func (r *AccountRepo) ListByOrganization(orgID string) ([]*entity.Account, error) {
	query := `SELECT ` + accountCols + ` FROM accounts WHERE organization_id = $1 ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
