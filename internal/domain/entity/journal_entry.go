package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/posting"
)

// JournalEntry es un asiento de partida doble. Solo se contabiliza completo
// (todas las líneas o ninguna) y una vez contabilizado es inmutable.
// Invariante: Σ Debit = Σ Credit con igualdad decimal exacta.
type JournalEntry struct {
	ID             string
	OrganizationID string
	Date           time.Time
	Description    string
	Reference      string // documento origen (movimiento, recibo), si aplica

	CreatedAt time.Time
	CreatedBy string

	posting.State
}

// JournalEntryLine es una línea del asiento: débito xor crédito (el otro en
// cero) contra una cuenta activa de la misma organización. Ambos montos >= 0.
type JournalEntryLine struct {
	ID        string
	EntryID   string
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// Valid verifica débito xor crédito y montos no negativos.
func (l JournalEntryLine) Valid() bool {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return false
	}
	return l.Debit.IsZero() != l.Credit.IsZero()
}

// AccountBalance es una fila del balance de comprobación: totales de débitos
// y créditos contabilizados contra una cuenta. Solo suma asientos Posted.
type AccountBalance struct {
	AccountID   string
	AccountCode string
	AccountName string
	AccountType string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}
