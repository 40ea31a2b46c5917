package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos
// (superficie CRUD delgada; el motor solo valida existencia y tenant).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	ListByOrganization(orgID string, limit, offset int) ([]*entity.Product, error)
}
