package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// OrganizationRepository define el puerto de persistencia del tenant raíz y
// de su configuración de cuentas de contabilización.
type OrganizationRepository interface {
	Create(org *entity.Organization) error
	GetByID(id string) (*entity.Organization, error)
	// GetPostingAccounts devuelve el mapeo de cuentas por defecto de la
	// organización; nil si nunca se configuró.
	GetPostingAccounts(orgID string) (*entity.PostingAccounts, error)
	SavePostingAccounts(accounts *entity.PostingAccounts) error
}
