// Package posting implementa la máquina de estados Draft → Posted | Rejected
// compartida por todos los documentos que afectan libros (movimientos de stock,
// transacciones de monedero, recibos y asientos contables).
//
// No existe Unpost ni Unreject: ambos estados son terminales y las correcciones
// se hacen con documentos nuevos. Así cada libro queda como un log append-only
// auditable.
package posting

import (
	"time"

	"github.com/jhoicas/Comercio-api/internal/domain"
)

// State agrupa los campos de contabilización que cada documento embebe.
// Invariante: a lo sumo uno de IsPosted/IsRejected es true; una vez alguno lo
// es, los campos que afectan libros (cantidades, costos, montos) son inmutables.
type State struct {
	IsPosted       bool
	PostedAt       *time.Time
	PostedByUserID string

	IsRejected       bool
	RejectedAt       *time.Time
	RejectedByUserID string
	RejectReason     string
}

// IsDraft indica si el documento sigue en borrador (único estado mutable).
func (s *State) IsDraft() bool {
	return !s.IsPosted && !s.IsRejected
}

// Post marca el documento como contabilizado. La mutación de libros del
// documento debe ejecutarse en la misma transacción que este cambio de flags.
func (s *State) Post(actorID string, now time.Time) error {
	if actorID == "" {
		return domain.ErrInvalidInput
	}
	if !s.IsDraft() {
		return domain.ErrInvalidState
	}
	s.IsPosted = true
	s.PostedAt = &now
	s.PostedByUserID = actorID
	return nil
}

// Reject marca el documento como rechazado. Nunca toca saldos ni libros.
func (s *State) Reject(actorID string, now time.Time, reason string) error {
	if actorID == "" {
		return domain.ErrInvalidInput
	}
	if !s.IsDraft() {
		return domain.ErrInvalidState
	}
	s.IsRejected = true
	s.RejectedAt = &now
	s.RejectedByUserID = actorID
	s.RejectReason = reason
	return nil
}
