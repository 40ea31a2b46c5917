package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// AccountRepository define el puerto del plan de cuentas.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	GetByCode(orgID, code string) (*entity.Account, error)
	ListByOrganization(orgID string) ([]*entity.Account, error)
}
