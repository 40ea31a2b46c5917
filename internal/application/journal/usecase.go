package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// EntryUseCase maneja el ciclo de vida de asientos de partida doble:
// borrador, contabilización (Σdébitos = Σcréditos contra cuentas activas de
// la organización) y rechazo. Es la compuerta final de consistencia: los
// demás libros generan sus asientos a través de la misma validación.
type EntryUseCase struct {
	txRunner    TxRunner
	journalRepo repository.JournalRepository
	accountRepo repository.AccountRepository
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(txRunner TxRunner, journalRepo repository.JournalRepository, accountRepo repository.AccountRepository) *EntryUseCase {
	return &EntryUseCase{txRunner: txRunner, journalRepo: journalRepo, accountRepo: accountRepo}
}

// LineInput es una línea de asiento en el borrador: débito xor crédito.
type LineInput struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// CreateDraft crea un asiento en borrador con sus líneas. La estructura de
// cada línea (débito xor crédito, montos no negativos) se valida aquí; el
// cuadre Σdébito = Σcrédito se exige al contabilizar, no en el borrador.
func (uc *EntryUseCase) CreateDraft(ctx context.Context, orgID, actorID string, date time.Time, description, reference string, lines []LineInput) (string, error) {
	if orgID == "" || actorID == "" || len(lines) < 2 {
		return "", domain.ErrInvalidInput
	}
	entry := &entity.JournalEntry{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Date:           date,
		Description:    description,
		Reference:      reference,
		CreatedAt:      time.Now(),
		CreatedBy:      actorID,
	}
	entryLines := make([]*entity.JournalEntryLine, 0, len(lines))
	for _, in := range lines {
		l := &entity.JournalEntryLine{
			ID:        uuid.New().String(),
			EntryID:   entry.ID,
			AccountID: in.AccountID,
			Debit:     in.Debit,
			Credit:    in.Credit,
		}
		if in.AccountID == "" || !l.Valid() {
			return "", domain.ErrValidation
		}
		entryLines = append(entryLines, l)
	}
	if err := uc.journalRepo.CreateEntry(entry, entryLines); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// Post contabiliza el asiento: bloquea la cabecera, valida cuadre y cuentas
// y marca Posted. Todo dentro de una transacción; cualquier fallo la aborta.
func (uc *EntryUseCase) Post(ctx context.Context, orgID, actorID, entryID string) error {
	now := time.Now()
	return uc.txRunner.RunJournal(ctx, func(
		journalRepo repository.JournalRepository,
		accountRepo repository.AccountRepository,
	) error {
		entry, err := journalRepo.GetEntryForUpdate(entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if entry.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		lines, err := journalRepo.GetLines(entry.ID)
		if err != nil {
			return err
		}
		return PostInTx(journalRepo, accountRepo, orgID, entry, lines, actorID, now)
	})
}

// Reject rechaza un asiento en borrador. Nunca toca saldos.
func (uc *EntryUseCase) Reject(ctx context.Context, orgID, actorID, entryID, reason string) error {
	now := time.Now()
	return uc.txRunner.RunJournal(ctx, func(
		journalRepo repository.JournalRepository,
		_ repository.AccountRepository,
	) error {
		entry, err := journalRepo.GetEntryForUpdate(entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if entry.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		if err := entry.Reject(actorID, now, reason); err != nil {
			return err
		}
		return journalRepo.UpdateEntry(entry)
	})
}

// GetEntry devuelve un asiento con sus líneas (lectura).
func (uc *EntryUseCase) GetEntry(ctx context.Context, orgID, entryID string) (*entity.JournalEntry, []*entity.JournalEntryLine, error) {
	entry, err := uc.journalRepo.GetEntry(entryID)
	if err != nil {
		return nil, nil, err
	}
	if entry == nil {
		return nil, nil, domain.ErrNotFound
	}
	if entry.OrganizationID != orgID {
		return nil, nil, domain.ErrCrossTenant
	}
	lines, err := uc.journalRepo.GetLines(entry.ID)
	if err != nil {
		return nil, nil, err
	}
	return entry, lines, nil
}

// List devuelve los asientos de la organización con paginación.
func (uc *EntryUseCase) List(ctx context.Context, orgID string, limit, offset int) ([]*entity.JournalEntry, error) {
	return uc.journalRepo.ListByOrganization(orgID, limit, offset)
}

// TrialBalance devuelve el balance de comprobación: débitos y créditos
// contabilizados acumulados por cuenta.
func (uc *EntryUseCase) TrialBalance(ctx context.Context, orgID string) ([]*entity.AccountBalance, error) {
	return uc.journalRepo.TrialBalance(orgID)
}

// PostInTx valida y contabiliza un asiento usando los repositorios de la
// transacción del caller (los otros libros lo invocan para emitir sus
// asientos en la misma transacción de su propia contabilización).
func PostInTx(
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
	orgID string,
	entry *entity.JournalEntry,
	lines []*entity.JournalEntryLine,
	actorID string,
	now time.Time,
) error {
	if !entry.IsDraft() {
		return domain.ErrInvalidState
	}
	if len(lines) < 2 {
		return domain.ErrValidation
	}
	debits := decimal.Zero
	credits := decimal.Zero
	for _, l := range lines {
		if !l.Valid() {
			return domain.ErrValidation
		}
		account, err := accountRepo.GetByID(l.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrInvalidAccount
		}
		if account.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		if !account.IsActive {
			return domain.ErrInvalidAccount
		}
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	// Igualdad decimal exacta: sin redondeos ni tolerancias.
	if !debits.Equal(credits) {
		return domain.ErrUnbalanced
	}
	if err := entry.Post(actorID, now); err != nil {
		return err
	}
	return journalRepo.UpdateEntry(entry)
}

// GenerateInTx crea y contabiliza en un solo paso el asiento balanceado que
// otro libro emite como efecto de su propia contabilización (entradas de
// stock al costo, depósitos/retiros de monedero). Misma transacción del
// caller; pasa por la misma validación que cualquier asiento.
func GenerateInTx(
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
	orgID, actorID string,
	now time.Time,
	description, reference string,
	lines []*entity.JournalEntryLine,
) (string, error) {
	entry := &entity.JournalEntry{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Date:           now,
		Description:    description,
		Reference:      reference,
		CreatedAt:      now,
		CreatedBy:      actorID,
	}
	for _, l := range lines {
		l.EntryID = entry.ID
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
	}
	if err := journalRepo.CreateEntry(entry, lines); err != nil {
		return "", err
	}
	if err := PostInTx(journalRepo, accountRepo, orgID, entry, lines, actorID, now); err != nil {
		return "", err
	}
	return entry.ID, nil
}
