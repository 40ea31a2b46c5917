package wallet_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/wallet"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el libro de monederos.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	wallets   map[string]*entity.Wallet
	walletTxs map[string]*entity.WalletTransaction
	receipts  map[string]*entity.Receipt
	items     map[string][]*entity.ReceiptItem
	customers map[string]*entity.Customer
	entries   map[string]*entity.JournalEntry
	lines     map[string][]*entity.JournalEntryLine
	accounts  map[string]*entity.Account
	org       *entity.Organization
	posting   *entity.PostingAccounts
}

func newFixture() *fixture {
	fx := &fixture{
		wallets:   map[string]*entity.Wallet{},
		walletTxs: map[string]*entity.WalletTransaction{},
		receipts:  map[string]*entity.Receipt{},
		items:     map[string][]*entity.ReceiptItem{},
		customers: map[string]*entity.Customer{},
		entries:   map[string]*entity.JournalEntry{},
		lines:     map[string][]*entity.JournalEntryLine{},
		accounts:  map[string]*entity.Account{},
		org:       &entity.Organization{ID: "org-1", Name: "Tienda Test", CostMethod: entity.CostMethodWeightedAverage, Status: "active"},
	}
	for _, id := range []string{"acc-inv", "acc-adj", "acc-pay", "acc-cash", "acc-dep"} {
		fx.accounts[id] = &entity.Account{ID: id, OrganizationID: "org-1", Code: id, Name: id, Type: entity.AccountTypeAsset, IsActive: true}
	}
	fx.posting = &entity.PostingAccounts{
		OrganizationID:      "org-1",
		InventoryAccountID:  "acc-inv",
		AdjustmentAccountID: "acc-adj",
		PayableAccountID:    "acc-pay",
		CashAccountID:       "acc-cash",
		DepositsAccountID:   "acc-dep",
	}
	fx.customers["cust-1"] = &entity.Customer{ID: "cust-1", OrganizationID: "org-1", Name: "Cliente Uno"}
	fx.wallets["wal-1"] = &entity.Wallet{ID: "wal-1", OrganizationID: "org-1", CustomerID: "cust-1", Balance: decimal.Zero}
	return fx
}

type fakeWalletRepo struct{ fx *fixture }

func (r *fakeWalletRepo) Create(w *entity.Wallet) error { r.fx.wallets[w.ID] = w; return nil }
func (r *fakeWalletRepo) GetByID(id string) (*entity.Wallet, error) { return r.fx.wallets[id], nil }
func (r *fakeWalletRepo) GetByCustomer(customerID string) (*entity.Wallet, error) {
	for _, w := range r.fx.wallets {
		if w.CustomerID == customerID {
			return w, nil
		}
	}
	return nil, nil
}
func (r *fakeWalletRepo) GetForUpdate(id string) (*entity.Wallet, error) {
	return r.fx.wallets[id], nil
}
func (r *fakeWalletRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	r.fx.wallets[id].Balance = balance
	return nil
}

type fakeWalletTxRepo struct{ fx *fixture }

func (r *fakeWalletTxRepo) Create(tx *entity.WalletTransaction) error {
	r.fx.walletTxs[tx.ID] = tx
	return nil
}
func (r *fakeWalletTxRepo) GetByID(id string) (*entity.WalletTransaction, error) {
	return r.fx.walletTxs[id], nil
}
func (r *fakeWalletTxRepo) GetForUpdate(id string) (*entity.WalletTransaction, error) {
	return r.fx.walletTxs[id], nil
}
func (r *fakeWalletTxRepo) Update(tx *entity.WalletTransaction) error {
	r.fx.walletTxs[tx.ID] = tx
	return nil
}
func (r *fakeWalletTxRepo) ListByWallet(walletID string, limit, offset int) ([]*entity.WalletTransaction, error) {
	var out []*entity.WalletTransaction
	for _, tx := range r.fx.walletTxs {
		if tx.WalletID == walletID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeReceiptRepo struct{ fx *fixture }

func (r *fakeReceiptRepo) Create(receipt *entity.Receipt, items []*entity.ReceiptItem) error {
	r.fx.receipts[receipt.ID] = receipt
	r.fx.items[receipt.ID] = items
	return nil
}
func (r *fakeReceiptRepo) GetByID(id string) (*entity.Receipt, error) { return r.fx.receipts[id], nil }
func (r *fakeReceiptRepo) GetForUpdate(id string) (*entity.Receipt, error) {
	return r.fx.receipts[id], nil
}
func (r *fakeReceiptRepo) GetItems(receiptID string) ([]*entity.ReceiptItem, error) {
	return r.fx.items[receiptID], nil
}
func (r *fakeReceiptRepo) Update(receipt *entity.Receipt) error {
	r.fx.receipts[receipt.ID] = receipt
	return nil
}
func (r *fakeReceiptRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, rc := range r.fx.receipts {
		if rc.CustomerID == customerID {
			out = append(out, rc)
		}
	}
	return out, nil
}

type fakeCustomerRepo struct{ fx *fixture }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.fx.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.fx.customers[id], nil
}
func (r *fakeCustomerRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.fx.customers {
		if c.OrganizationID == orgID {
			out = append(out, c)
		}
	}
	return out, nil
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
	return nil, nil
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

type fakeOrgRepo struct{ fx *fixture }

func (r *fakeOrgRepo) Create(o *entity.Organization) error { r.fx.org = o; return nil }
func (r *fakeOrgRepo) GetByID(id string) (*entity.Organization, error) {
	if r.fx.org != nil && r.fx.org.ID == id {
		return r.fx.org, nil
	}
	return nil, nil
}
func (r *fakeOrgRepo) GetPostingAccounts(orgID string) (*entity.PostingAccounts, error) {
	return r.fx.posting, nil
}
func (r *fakeOrgRepo) SavePostingAccounts(accounts *entity.PostingAccounts) error {
	r.fx.posting = accounts
	return nil
}

type fakeTxRunner struct{ fx *fixture }

func (r *fakeTxRunner) RunWallet(ctx context.Context, fn func(
	walletRepo repository.WalletRepository,
	walletTxRepo repository.WalletTransactionRepository,
	receiptRepo repository.ReceiptRepository,
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return fn(&fakeWalletRepo{r.fx}, &fakeWalletTxRepo{r.fx}, &fakeReceiptRepo{r.fx},
		&fakeJournalRepo{r.fx}, &fakeAccountRepo{r.fx})
}

type fakePDFGenerator struct{}

func (fakePDFGenerator) GenerateReceiptPDF(ctx context.Context, receipt *entity.Receipt, items []*entity.ReceiptItem, org *entity.Organization, customer *entity.Customer) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

func newTxUseCase(fx *fixture) *wallet.TransactionUseCase {
	return wallet.NewTransactionUseCase(&fakeTxRunner{fx}, &fakeWalletRepo{fx}, &fakeWalletTxRepo{fx}, &fakeOrgRepo{fx})
}

func newReceiptUseCase(fx *fixture) *wallet.ReceiptUseCase {
	return wallet.NewReceiptUseCase(&fakeTxRunner{fx}, &fakeReceiptRepo{fx}, &fakeWalletRepo{fx},
		&fakeCustomerRepo{fx}, &fakeOrgRepo{fx}, fakePDFGenerator{})
}

func entryForReference(fx *fixture, ref string) (*entity.JournalEntry, []*entity.JournalEntryLine) {
	for id, e := range fx.entries {
		if e.Reference == ref {
			return e, fx.lines[id]
		}
	}
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de transacciones
// ──────────────────────────────────────────────────────────────────────────────

// TestPost_Deposito verifica que contabilizar un depósito captura los
// snapshots de saldo, actualiza el monedero y emite el asiento caja/anticipos.
func TestPost_Deposito(t *testing.T) {
	fx := newFixture()
	uc := newTxUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.TransactionInput{
		WalletID: "wal-1", Type: entity.WalletTxDeposit, Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, fx.wallets["wal-1"].Balance.IsZero(), "el borrador no toca el saldo")

	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", id))

	tx := fx.walletTxs[id]
	assert.True(t, tx.IsPosted)
	assert.True(t, tx.BalanceBefore.IsZero())
	assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromInt(50)))
	assert.True(t, fx.wallets["wal-1"].Balance.Equal(decimal.NewFromInt(50)))

	entry, lines := entryForReference(fx, id)
	require.NotNil(t, entry)
	assert.True(t, entry.IsPosted)
	require.Len(t, lines, 2)
	assert.Equal(t, "acc-cash", lines[0].AccountID)
	assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "acc-dep", lines[1].AccountID)
	assert.True(t, lines[1].Credit.Equal(decimal.NewFromInt(50)))
}

// TestPost_RetiroSobregiro verifica que un retiro que dejaría el saldo
// negativo falla con ErrInsufficientFunds y no escribe nada.
func TestPost_RetiroSobregiro(t *testing.T) {
	fx := newFixture()
	fx.wallets["wal-1"].Balance = decimal.NewFromInt(30)
	uc := newTxUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.TransactionInput{
		WalletID: "wal-1", Type: entity.WalletTxWithdrawal, Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	err = uc.Post(context.Background(), "org-1", "user-1", id)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.True(t, fx.wallets["wal-1"].Balance.Equal(decimal.NewFromInt(30)), "el saldo queda intacto")
	assert.True(t, fx.walletTxs[id].IsDraft(), "la transacción sigue en borrador")
	assert.Empty(t, fx.entries, "no debe emitirse asiento")
}

// TestPost_RetiroValido verifica el retiro normal con snapshots correctos.
func TestPost_RetiroValido(t *testing.T) {
	fx := newFixture()
	fx.wallets["wal-1"].Balance = decimal.NewFromInt(30)
	uc := newTxUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.TransactionInput{
		WalletID: "wal-1", Type: entity.WalletTxWithdrawal, Amount: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", id))

	tx := fx.walletTxs[id]
	assert.True(t, tx.BalanceBefore.Equal(decimal.NewFromInt(30)))
	assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromInt(10)))
	assert.True(t, fx.wallets["wal-1"].Balance.Equal(decimal.NewFromInt(10)))
}

// TestCreateDraft_MontoInvalido verifica el rechazo de montos no positivos.
func TestCreateDraft_MontoInvalido(t *testing.T) {
	fx := newFixture()
	uc := newTxUseCase(fx)

	_, err := uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.TransactionInput{
		WalletID: "wal-1", Type: entity.WalletTxDeposit, Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.TransactionInput{
		WalletID: "wal-1", Type: entity.WalletTxDeposit, Amount: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestReject_TransaccionContabilizada verifica que no se puede rechazar una
// transacción ya contabilizada.
func TestReject_TransaccionContabilizada(t *testing.T) {
	fx := newFixture()
	uc := newTxUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.TransactionInput{
		WalletID: "wal-1", Type: entity.WalletTxDeposit, Amount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", id))

	err = uc.Reject(context.Background(), "org-1", "user-1", id, "tarde")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de recibos
// ──────────────────────────────────────────────────────────────────────────────

// TestReceipt_CreateDraft_CalculaTotal verifica TotalAmount = Σ subtotales.
func TestReceipt_CreateDraft_CalculaTotal(t *testing.T) {
	fx := newFixture()
	uc := newReceiptUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.ReceiptInput{
		CustomerID: "cust-1",
		Type:       entity.ReceiptTypeDeposit,
		Number:     "RC-001",
		Items: []wallet.ReceiptItemInput{
			{Description: "Abono pedido", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(15)},
			{Description: "Flete", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	receipt := fx.receipts[id]
	require.NotNil(t, receipt)
	assert.True(t, receipt.TotalAmount.Equal(decimal.NewFromInt(35)), "esperaba 35, obtuve %s", receipt.TotalAmount)
	assert.True(t, receipt.IsDraft())
	assert.Equal(t, "wal-1", receipt.WalletID)
}

// TestReceipt_Post verifica que contabilizar el recibo genera exactamente una
// transacción de monedero ya contabilizada y la enlaza.
func TestReceipt_Post(t *testing.T) {
	fx := newFixture()
	uc := newReceiptUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.ReceiptInput{
		CustomerID: "cust-1",
		Type:       entity.ReceiptTypeDeposit,
		Items: []wallet.ReceiptItemInput{
			{Description: "Abono", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", id))

	receipt := fx.receipts[id]
	assert.True(t, receipt.IsPosted)
	require.NotEmpty(t, receipt.WalletTransactionID, "el recibo debe quedar enlazado a su transacción")

	tx := fx.walletTxs[receipt.WalletTransactionID]
	require.NotNil(t, tx)
	assert.True(t, tx.IsPosted)
	assert.Equal(t, entity.WalletTxDeposit, tx.Type)
	assert.Equal(t, id, tx.ReceiptID)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(40)))
	assert.True(t, fx.wallets["wal-1"].Balance.Equal(decimal.NewFromInt(40)))

	// Recontabilizar el recibo falla y no duplica la transacción.
	err = uc.Post(context.Background(), "org-1", "user-1", id)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Len(t, fx.walletTxs, 1)
}

// TestReceipt_PostRetiroSinFondos verifica que el recibo de egreso hereda la
// regla de no sobregiro: el post falla y el recibo queda en borrador.
func TestReceipt_PostRetiroSinFondos(t *testing.T) {
	fx := newFixture()
	uc := newReceiptUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.ReceiptInput{
		CustomerID: "cust-1",
		Type:       entity.ReceiptTypeWithdrawal,
		Items: []wallet.ReceiptItemInput{
			{Description: "Devolución", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(25)},
		},
	})
	require.NoError(t, err)

	err = uc.Post(context.Background(), "org-1", "user-1", id)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, fx.receipts[id].IsDraft())
	assert.True(t, fx.wallets["wal-1"].Balance.IsZero())
}

// TestReceipt_Reject verifica el rechazo de un recibo en borrador.
func TestReceipt_Reject(t *testing.T) {
	fx := newFixture()
	uc := newReceiptUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.ReceiptInput{
		CustomerID: "cust-1",
		Type:       entity.ReceiptTypeDeposit,
		Items: []wallet.ReceiptItemInput{
			{Description: "Abono", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Reject(context.Background(), "org-1", "user-1", id, "duplicado"))

	assert.True(t, fx.receipts[id].IsRejected)
	assert.Empty(t, fx.walletTxs, "el rechazo no genera transacción")
}

// TestReceipt_ItemInvalido verifica las validaciones de línea del recibo.
func TestReceipt_ItemInvalido(t *testing.T) {
	fx := newFixture()
	uc := newReceiptUseCase(fx)

	_, err := uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.ReceiptInput{
		CustomerID: "cust-1",
		Type:       entity.ReceiptTypeDeposit,
		Items: []wallet.ReceiptItemInput{
			{Description: "", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateDraft(context.Background(), "org-1", "user-1", wallet.ReceiptInput{
		CustomerID: "cust-1", Type: entity.ReceiptTypeDeposit, Items: nil,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
