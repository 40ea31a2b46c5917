package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para clientes.
// El motor solo necesita existencia y pertenencia a la organización.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	ListByOrganization(orgID string, limit, offset int) ([]*entity.Customer, error)
}
