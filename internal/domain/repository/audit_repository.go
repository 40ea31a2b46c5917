package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// AuditRepository define el puerto de persistencia para auditorías de
// inventario y sus ítems.
type AuditRepository interface {
	CreateAudit(audit *entity.InventoryAudit) error
	GetAudit(id string) (*entity.InventoryAudit, error)
	// GetAuditForUpdate bloquea la cabecera: serializa conteos concurrentes
	// sobre los contadores agregados y el cierre de la auditoría.
	GetAuditForUpdate(id string) (*entity.InventoryAudit, error)
	UpdateAudit(audit *entity.InventoryAudit) error

	CreateItem(item *entity.InventoryAuditItem) error
	GetItem(id string) (*entity.InventoryAuditItem, error)
	UpdateItem(item *entity.InventoryAuditItem) error
	ListItems(auditID string) ([]*entity.InventoryAuditItem, error)
	// CountUncounted devuelve cuántos ítems de la auditoría siguen sin conteo.
	CountUncounted(auditID string) (int, error)
}
