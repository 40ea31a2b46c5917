package entity

import "time"

// Customer representa un cliente de la organización. El motor solo lo usa
// para resolver su monedero; el CRM completo vive fuera de este núcleo.
type Customer struct {
	ID             string
	OrganizationID string
	Name           string
	TaxID          string
	Email          string
	Phone          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
