package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// JournalRepository define el puerto de persistencia para asientos de
// partida doble. Las líneas se escriben junto con la cabecera (todas o
// ninguna); UpdateEntry solo toca los campos de contabilización.
type JournalRepository interface {
	CreateEntry(entry *entity.JournalEntry, lines []*entity.JournalEntryLine) error
	GetEntry(id string) (*entity.JournalEntry, error)
	// GetEntryForUpdate bloquea la cabecera durante la contabilización.
	GetEntryForUpdate(id string) (*entity.JournalEntry, error)
	GetLines(entryID string) ([]*entity.JournalEntryLine, error)
	UpdateEntry(entry *entity.JournalEntry) error
	ListByOrganization(orgID string, limit, offset int) ([]*entity.JournalEntry, error)
	// TrialBalance agrega débitos y créditos de asientos contabilizados por
	// cuenta (balance de comprobación).
	TrialBalance(orgID string) ([]*entity.AccountBalance, error)
}
