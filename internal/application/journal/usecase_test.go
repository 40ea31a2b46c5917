package journal_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/journal"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el libro diario.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	entries  map[string]*entity.JournalEntry
	lines    map[string][]*entity.JournalEntryLine
	accounts map[string]*entity.Account
}

func newFixture() *fixture {
	fx := &fixture{
		entries:  map[string]*entity.JournalEntry{},
		lines:    map[string][]*entity.JournalEntryLine{},
		accounts: map[string]*entity.Account{},
	}
	fx.accounts["acc-caja"] = &entity.Account{ID: "acc-caja", OrganizationID: "org-1", Code: "1105", Name: "Caja", Type: entity.AccountTypeAsset, IsActive: true}
	fx.accounts["acc-ventas"] = &entity.Account{ID: "acc-ventas", OrganizationID: "org-1", Code: "4135", Name: "Ventas", Type: entity.AccountTypeIncome, IsActive: true}
	fx.accounts["acc-cerrada"] = &entity.Account{ID: "acc-cerrada", OrganizationID: "org-1", Code: "9999", Name: "Cerrada", Type: entity.AccountTypeExpense, IsActive: false}
	fx.accounts["acc-ajena"] = &entity.Account{ID: "acc-ajena", OrganizationID: "org-2", Code: "1105", Name: "Caja ajena", Type: entity.AccountTypeAsset, IsActive: true}
	return fx
}

type fakeJournalRepo struct{ fx *fixture }

func (r *fakeJournalRepo) CreateEntry(e *entity.JournalEntry, lines []*entity.JournalEntryLine) error {
	r.fx.entries[e.ID] = e
	r.fx.lines[e.ID] = lines
	return nil
}
func (r *fakeJournalRepo) GetEntry(id string) (*entity.JournalEntry, error) {
	return r.fx.entries[id], nil
}
func (r *fakeJournalRepo) GetEntryForUpdate(id string) (*entity.JournalEntry, error) {
	return r.fx.entries[id], nil
}
func (r *fakeJournalRepo) GetLines(entryID string) ([]*entity.JournalEntryLine, error) {
	return r.fx.lines[entryID], nil
}
func (r *fakeJournalRepo) UpdateEntry(e *entity.JournalEntry) error { r.fx.entries[e.ID] = e; return nil }
func (r *fakeJournalRepo) TrialBalance(orgID string) ([]*entity.AccountBalance, error) {
	byAccount := map[string]*entity.AccountBalance{}
	for _, e := range r.fx.entries {
		if e.OrganizationID != orgID || !e.IsPosted {
			continue
		}
		for _, l := range r.fx.lines[e.ID] {
			b := byAccount[l.AccountID]
			if b == nil {
				acc := r.fx.accounts[l.AccountID]
				b = &entity.AccountBalance{AccountID: acc.ID, AccountCode: acc.Code,
					AccountName: acc.Name, AccountType: acc.Type,
					TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
				byAccount[l.AccountID] = b
			}
			b.TotalDebit = b.TotalDebit.Add(l.Debit)
			b.TotalCredit = b.TotalCredit.Add(l.Credit)
		}
	}
	var out []*entity.AccountBalance
	for _, b := range byAccount {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountCode < out[j].AccountCode })
	return out, nil
}
func (r *fakeJournalRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.JournalEntry, error) {
	var out []*entity.JournalEntry
	for _, e := range r.fx.entries {
		if e.OrganizationID == orgID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAccountRepo struct{ fx *fixture }

func (r *fakeAccountRepo) Create(a *entity.Account) error { r.fx.accounts[a.ID] = a; return nil }
func (r *fakeAccountRepo) GetByID(id string) (*entity.Account, error) {
	return r.fx.accounts[id], nil
}
func (r *fakeAccountRepo) GetByCode(orgID, code string) (*entity.Account, error) {
	for _, a := range r.fx.accounts {
		if a.OrganizationID == orgID && a.Code == code {
			return a, nil
		}
	}
	return nil, nil
}
func (r *fakeAccountRepo) ListByOrganization(orgID string) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range r.fx.accounts {
		if a.OrganizationID == orgID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeTxRunner struct{ fx *fixture }

func (r *fakeTxRunner) RunJournal(ctx context.Context, fn func(
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return fn(&fakeJournalRepo{r.fx}, &fakeAccountRepo{r.fx})
}

func newUseCase(fx *fixture) *journal.EntryUseCase {
	return journal.NewEntryUseCase(&fakeTxRunner{fx}, &fakeJournalRepo{fx}, &fakeAccountRepo{fx})
}

func balancedLines(amount int64) []journal.LineInput {
	return []journal.LineInput{
		{AccountID: "acc-caja", Debit: decimal.NewFromInt(amount), Credit: decimal.Zero},
		{AccountID: "acc-ventas", Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// TestCreateDraft_Validaciones cubre los rechazos estructurales del borrador.
func TestCreateDraft_Validaciones(t *testing.T) {
	fx := newFixture()
	uc := newUseCase(fx)
	ctx := context.Background()
	now := time.Now()

	t.Run("menos de dos líneas", func(t *testing.T) {
		_, err := uc.CreateDraft(ctx, "org-1", "user-1", now, "", "", []journal.LineInput{
			{AccountID: "acc-caja", Debit: decimal.NewFromInt(10)},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("débito y crédito en la misma línea", func(t *testing.T) {
		_, err := uc.CreateDraft(ctx, "org-1", "user-1", now, "", "", []journal.LineInput{
			{AccountID: "acc-caja", Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(10)},
			{AccountID: "acc-ventas", Credit: decimal.NewFromInt(10)},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("monto negativo", func(t *testing.T) {
		_, err := uc.CreateDraft(ctx, "org-1", "user-1", now, "", "", []journal.LineInput{
			{AccountID: "acc-caja", Debit: decimal.NewFromInt(-10)},
			{AccountID: "acc-ventas", Credit: decimal.NewFromInt(-10)},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

// TestPost_Balanceado verifica el camino feliz: asiento cuadrado contra
// cuentas activas de la organización queda contabilizado.
func TestPost_Balanceado(t *testing.T) {
	fx := newFixture()
	uc := newUseCase(fx)
	ctx := context.Background()

	id, err := uc.CreateDraft(ctx, "org-1", "user-1", time.Now(), "venta de contado", "", balancedLines(100))
	require.NoError(t, err)
	require.NoError(t, uc.Post(ctx, "org-1", "user-1", id))

	entry := fx.entries[id]
	assert.True(t, entry.IsPosted)
	assert.Equal(t, "user-1", entry.PostedByUserID)
}

// TestPost_Descuadrado verifica que Σdébitos ≠ Σcréditos falla con
// ErrUnbalanced y el asiento queda en borrador.
func TestPost_Descuadrado(t *testing.T) {
	fx := newFixture()
	uc := newUseCase(fx)
	ctx := context.Background()

	id, err := uc.CreateDraft(ctx, "org-1", "user-1", time.Now(), "", "", []journal.LineInput{
		{AccountID: "acc-caja", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{AccountID: "acc-ventas", Debit: decimal.Zero, Credit: decimal.RequireFromString("99.99")},
	})
	require.NoError(t, err)

	err = uc.Post(ctx, "org-1", "user-1", id)
	assert.ErrorIs(t, err, domain.ErrUnbalanced)
	assert.True(t, fx.entries[id].IsDraft())
}

// TestPost_CuentaInactiva verifica el rechazo de líneas contra cuentas
// inactivas o inexistentes.
func TestPost_CuentaInactiva(t *testing.T) {
	fx := newFixture()
	uc := newUseCase(fx)
	ctx := context.Background()

	id, err := uc.CreateDraft(ctx, "org-1", "user-1", time.Now(), "", "", []journal.LineInput{
		{AccountID: "acc-caja", Debit: decimal.NewFromInt(10), Credit: decimal.Zero},
		{AccountID: "acc-cerrada", Debit: decimal.Zero, Credit: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Post(ctx, "org-1", "user-1", id), domain.ErrInvalidAccount)

	id2, err := uc.CreateDraft(ctx, "org-1", "user-1", time.Now(), "", "", []journal.LineInput{
		{AccountID: "acc-caja", Debit: decimal.NewFromInt(10), Credit: decimal.Zero},
		{AccountID: "acc-fantasma", Debit: decimal.Zero, Credit: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Post(ctx, "org-1", "user-1", id2), domain.ErrInvalidAccount)
}

// TestPost_CuentaDeOtraOrganizacion verifica el aislamiento multi-tenant del
// plan de cuentas.
func TestPost_CuentaDeOtraOrganizacion(t *testing.T) {
	fx := newFixture()
	uc := newUseCase(fx)
	ctx := context.Background()

	id, err := uc.CreateDraft(ctx, "org-1", "user-1", time.Now(), "", "", []journal.LineInput{
		{AccountID: "acc-caja", Debit: decimal.NewFromInt(10), Credit: decimal.Zero},
		{AccountID: "acc-ajena", Debit: decimal.Zero, Credit: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Post(ctx, "org-1", "user-1", id), domain.ErrCrossTenant)
}

// TestPost_Doble verifica que los asientos contabilizados son inmutables.
func TestPost_Doble(t *testing.T) {
	fx := newFixture()
	uc := newUseCase(fx)
	ctx := context.Background()

	id, err := uc.CreateDraft(ctx, "org-1", "user-1", time.Now(), "", "", balancedLines(10))
	require.NoError(t, err)
	require.NoError(t, uc.Post(ctx, "org-1", "user-1", id))

	assert.ErrorIs(t, uc.Post(ctx, "org-1", "user-1", id), domain.ErrInvalidState)
	assert.ErrorIs(t, uc.Reject(ctx, "org-1", "user-1", id, "tarde"), domain.ErrInvalidState)
}

// TestTrialBalance verifica que el balance de comprobación acumula solo
// asientos contabilizados y que el total de débitos iguala al de créditos.
func TestTrialBalance(t *testing.T) {
	fx := newFixture()
	uc := newUseCase(fx)
	ctx := context.Background()

	id1, err := uc.CreateDraft(ctx, "org-1", "user-1", time.Now(), "", "", balancedLines(100))
	require.NoError(t, err)
	require.NoError(t, uc.Post(ctx, "org-1", "user-1", id1))

	id2, err := uc.CreateDraft(ctx, "org-1", "user-1", time.Now(), "", "", balancedLines(40))
	require.NoError(t, err)
	require.NoError(t, uc.Post(ctx, "org-1", "user-1", id2))

	// Un borrador sin contabilizar no aparece en el balance.
	_, err = uc.CreateDraft(ctx, "org-1", "user-1", time.Now(), "", "", balancedLines(999))
	require.NoError(t, err)

	balances, err := uc.TrialBalance(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, balances, 2)

	assert.Equal(t, "acc-caja", balances[0].AccountID)
	assert.True(t, balances[0].TotalDebit.Equal(decimal.NewFromInt(140)))
	assert.True(t, balances[0].TotalCredit.IsZero())
	assert.Equal(t, "acc-ventas", balances[1].AccountID)
	assert.True(t, balances[1].TotalCredit.Equal(decimal.NewFromInt(140)))
}

// TestGenerateInTx verifica la ruta que usan los otros libros: crear y
// contabilizar el asiento derivado en un solo paso, con la misma validación.
func TestGenerateInTx(t *testing.T) {
	fx := newFixture()
	now := time.Now()

	id, err := journal.GenerateInTx(&fakeJournalRepo{fx}, &fakeAccountRepo{fx},
		"org-1", "user-1", now, "movimiento de stock PURCHASE", "mov-1",
		[]*entity.JournalEntryLine{
			{AccountID: "acc-caja", Debit: decimal.NewFromInt(70), Credit: decimal.Zero},
			{AccountID: "acc-ventas", Debit: decimal.Zero, Credit: decimal.NewFromInt(70)},
		})
	require.NoError(t, err)

	entry := fx.entries[id]
	require.NotNil(t, entry)
	assert.True(t, entry.IsPosted)
	assert.Equal(t, "mov-1", entry.Reference)
	require.Len(t, fx.lines[id], 2)
	assert.NotEmpty(t, fx.lines[id][0].ID, "GenerateInTx asigna IDs a las líneas")

	// Un asiento derivado descuadrado también falla.
	_, err = journal.GenerateInTx(&fakeJournalRepo{fx}, &fakeAccountRepo{fx},
		"org-1", "user-1", now, "", "mov-2",
		[]*entity.JournalEntryLine{
			{AccountID: "acc-caja", Debit: decimal.NewFromInt(70), Credit: decimal.Zero},
			{AccountID: "acc-ventas", Debit: decimal.Zero, Credit: decimal.NewFromInt(60)},
		})
	assert.ErrorIs(t, err, domain.ErrUnbalanced)
}
