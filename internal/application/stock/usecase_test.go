package stock_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/stock"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un fixture compartido y repositorios que leen/escriben
// sobre él. El fakeTxRunner ejecuta el callback directamente (sin rollback);
// los casos de error deben fallar antes de escribir, igual que en producción.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	movements map[string]*entity.StockMovement
	variants  map[string]*entity.ProductVariant
	batches   []*entity.StockBatch
	entries   map[string]*entity.JournalEntry
	lines     map[string][]*entity.JournalEntryLine
	accounts  map[string]*entity.Account
	org       *entity.Organization
	posting   *entity.PostingAccounts
}

func newFixture(costMethod string) *fixture {
	fx := &fixture{
		movements: map[string]*entity.StockMovement{},
		variants:  map[string]*entity.ProductVariant{},
		entries:   map[string]*entity.JournalEntry{},
		lines:     map[string][]*entity.JournalEntryLine{},
		accounts:  map[string]*entity.Account{},
		org: &entity.Organization{
			ID: "org-1", Name: "Tienda Test", CostMethod: costMethod, Status: "active",
		},
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
	fx.variants["var-1"] = &entity.ProductVariant{
		ID: "var-1", OrganizationID: "org-1", ProductID: "prod-1", SKU: "SKU-1",
		StockQuantity: 10, AverageCost: decimal.NewFromInt(5),
	}
	return fx
}

type fakeMovementRepo struct{ fx *fixture }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error { r.fx.movements[m.ID] = m; return nil }
func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	return r.fx.movements[id], nil
}
func (r *fakeMovementRepo) GetForUpdate(id string) (*entity.StockMovement, error) {
	return r.fx.movements[id], nil
}
func (r *fakeMovementRepo) Update(m *entity.StockMovement) error { r.fx.movements[m.ID] = m; return nil }
func (r *fakeMovementRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.fx.movements {
		if m.VariantID == variantID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeVariantRepo struct{ fx *fixture }

func (r *fakeVariantRepo) Create(v *entity.ProductVariant) error { r.fx.variants[v.ID] = v; return nil }
func (r *fakeVariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	return r.fx.variants[id], nil
}
func (r *fakeVariantRepo) GetForUpdate(id string) (*entity.ProductVariant, error) {
	return r.fx.variants[id], nil
}
func (r *fakeVariantRepo) UpdateStockAndCost(id string, stockQuantity int64, averageCost decimal.Decimal) error {
	v := r.fx.variants[id]
	v.StockQuantity = stockQuantity
	v.AverageCost = averageCost
	return nil
}
func (r *fakeVariantRepo) ListByOrganization(orgID string) ([]*entity.ProductVariant, error) {
	var out []*entity.ProductVariant
	for _, v := range r.fx.variants {
		if v.OrganizationID == orgID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

type fakeBatchRepo struct{ fx *fixture }

func (r *fakeBatchRepo) Create(b *entity.StockBatch) error {
	r.fx.batches = append(r.fx.batches, b)
	return nil
}
func (r *fakeBatchRepo) ListOpenForUpdate(variantID string) ([]*entity.StockBatch, error) {
	var out []*entity.StockBatch
	for _, b := range r.fx.batches {
		if b.VariantID == variantID && b.Remaining > 0 {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.Before(out[j].ReceivedAt) })
	return out, nil
}
func (r *fakeBatchRepo) UpdateRemaining(id string, remaining int64) error {
	for _, b := range r.fx.batches {
		if b.ID == id {
			b.Remaining = remaining
		}
	}
	return nil
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

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	batchRepo repository.StockBatchRepository,
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return fn(&fakeMovementRepo{r.fx}, &fakeVariantRepo{r.fx}, &fakeBatchRepo{r.fx},
		&fakeJournalRepo{r.fx}, &fakeAccountRepo{r.fx})
}

func newUseCase(fx *fixture) *stock.MovementUseCase {
	return stock.NewMovementUseCase(&fakeTxRunner{fx}, &fakeMovementRepo{fx}, &fakeVariantRepo{fx}, &fakeOrgRepo{fx})
}

// entryForReference busca el asiento generado para un documento.
func entryForReference(fx *fixture, ref string) (*entity.JournalEntry, []*entity.JournalEntryLine) {
	for id, e := range fx.entries {
		if e.Reference == ref {
			return e, fx.lines[id]
		}
	}
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// TestCreateDraft_VentaGuardaEfectoConSigno verifica que una venta se persiste
// con cantidad negativa (el efecto sobre el stock) y en borrador.
func TestCreateDraft_VentaGuardaEfectoConSigno(t *testing.T) {
	fx := newFixture(entity.CostMethodWeightedAverage)
	uc := newUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypeSale, Quantity: 4,
	})
	require.NoError(t, err)

	mov := fx.movements[id]
	require.NotNil(t, mov)
	assert.Equal(t, int64(-4), mov.Quantity)
	assert.True(t, mov.IsDraft())
	assert.Equal(t, int64(10), fx.variants["var-1"].StockQuantity, "el borrador no toca el stock")
}

// TestCreateDraft_Invalidos cubre los rechazos estructurales del borrador.
func TestCreateDraft_Invalidos(t *testing.T) {
	fx := newFixture(entity.CostMethodWeightedAverage)
	uc := newUseCase(fx)
	cost := decimal.NewFromInt(7)

	cases := []struct {
		name string
		in   stock.MovementInput
	}{
		{"compra sin costo", stock.MovementInput{VariantID: "var-1", Type: entity.MovementTypePurchase, Quantity: 5}},
		{"compra cantidad cero", stock.MovementInput{VariantID: "var-1", Type: entity.MovementTypePurchase, Quantity: 0, UnitCost: &cost}},
		{"ajuste cero", stock.MovementInput{VariantID: "var-1", Type: entity.MovementTypeAdjustment, Quantity: 0}},
		{"ajuste positivo sin costo", stock.MovementInput{VariantID: "var-1", Type: entity.MovementTypeAdjustment, Quantity: 3}},
		{"traslado sin ubicaciones", stock.MovementInput{VariantID: "var-1", Type: entity.MovementTypeTransfer, Quantity: 5}},
		{"traslado misma ubicación", stock.MovementInput{VariantID: "var-1", Type: entity.MovementTypeTransfer, Quantity: 5, SourceLocationID: "loc-1", DestinationLocationID: "loc-1"}},
		{"tipo desconocido", stock.MovementInput{VariantID: "var-1", Type: "REGALO", Quantity: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateDraft(context.Background(), "org-1", "user-1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// TestPost_CompraPromedioPonderado verifica el caso de referencia: 10 @ 5.00
// más compra de 10 @ 7.00 deja stock 20 y promedio 6.00, con snapshots en el
// movimiento y asiento débito inventarios / crédito proveedores por 70.00.
func TestPost_CompraPromedioPonderado(t *testing.T) {
	fx := newFixture(entity.CostMethodWeightedAverage)
	uc := newUseCase(fx)
	cost := decimal.NewFromInt(7)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypePurchase, Quantity: 10, UnitCost: &cost,
	})
	require.NoError(t, err)
	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", id))

	v := fx.variants["var-1"]
	assert.Equal(t, int64(20), v.StockQuantity)
	assert.True(t, v.AverageCost.Equal(decimal.NewFromInt(6)), "esperaba promedio 6.00, obtuve %s", v.AverageCost)

	mov := fx.movements[id]
	assert.True(t, mov.IsPosted)
	assert.Equal(t, int64(10), mov.StockBefore)
	assert.Equal(t, int64(20), mov.StockAfter)

	entry, lines := entryForReference(fx, id)
	require.NotNil(t, entry, "una compra contabilizada debe emitir asiento")
	assert.True(t, entry.IsPosted)
	require.Len(t, lines, 2)
	assert.Equal(t, "acc-inv", lines[0].AccountID)
	assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, "acc-pay", lines[1].AccountID)
	assert.True(t, lines[1].Credit.Equal(decimal.NewFromInt(70)))
}

// TestPost_CompraDivididaMismoPromedio verifica que recibir 2 unidades a 1.00
// en una sola compra o en dos compras de 1 deja la variante con el mismo
// promedio (la división de una recepción no cambia la valoración).
func TestPost_CompraDivididaMismoPromedio(t *testing.T) {
	cost := decimal.NewFromInt(1)

	post := func(fx *fixture, qty int64) {
		t.Helper()
		uc := newUseCase(fx)
		id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
			VariantID: "var-1", Type: entity.MovementTypePurchase, Quantity: qty, UnitCost: &cost,
		})
		require.NoError(t, err)
		require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", id))
	}

	whole := newFixture(entity.CostMethodWeightedAverage)
	whole.variants["var-1"].StockQuantity = 2
	post(whole, 2)

	split := newFixture(entity.CostMethodWeightedAverage)
	split.variants["var-1"].StockQuantity = 2
	post(split, 1)
	post(split, 1)

	vw, vs := whole.variants["var-1"], split.variants["var-1"]
	assert.Equal(t, int64(4), vw.StockQuantity)
	assert.Equal(t, vw.StockQuantity, vs.StockQuantity)
	assert.True(t, vw.AverageCost.Equal(decimal.NewFromInt(3)), "esperaba 3.00, obtuve %s", vw.AverageCost)
	assert.True(t, vs.AverageCost.Equal(vw.AverageCost), "dividida=%s vs completa=%s", vs.AverageCost, vw.AverageCost)
}

// TestPost_SalidaValoradaAlPromedio verifica que la venta emite asiento al
// costo promedio vigente y no mueve el promedio.
func TestPost_SalidaValoradaAlPromedio(t *testing.T) {
	fx := newFixture(entity.CostMethodWeightedAverage)
	uc := newUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypeSale, Quantity: 4,
	})
	require.NoError(t, err)
	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", id))

	v := fx.variants["var-1"]
	assert.Equal(t, int64(6), v.StockQuantity)
	assert.True(t, v.AverageCost.Equal(decimal.NewFromInt(5)), "las salidas no mueven el promedio")

	_, lines := entryForReference(fx, id)
	require.Len(t, lines, 2)
	// 4 unidades @ 5.00 = 20.00: débito ajustes / crédito inventarios
	assert.Equal(t, "acc-adj", lines[0].AccountID)
	assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "acc-inv", lines[1].AccountID)
	assert.True(t, lines[1].Credit.Equal(decimal.NewFromInt(20)))
}

// TestPost_StockInsuficiente verifica que una salida mayor al stock falla sin
// escribir nada: la variante queda intacta y el documento en borrador.
func TestPost_StockInsuficiente(t *testing.T) {
	fx := newFixture(entity.CostMethodWeightedAverage)
	uc := newUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypeSale, Quantity: 15,
	})
	require.NoError(t, err)

	err = uc.Post(context.Background(), "org-1", "user-1", id)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), fx.variants["var-1"].StockQuantity)
	assert.True(t, fx.movements[id].IsDraft(), "un post fallido deja el documento en borrador")
}

// TestPost_DobleContabilizacion verifica que el segundo post del mismo
// documento falla con ErrInvalidState y no duplica el efecto.
func TestPost_DobleContabilizacion(t *testing.T) {
	fx := newFixture(entity.CostMethodWeightedAverage)
	uc := newUseCase(fx)
	cost := decimal.NewFromInt(7)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypePurchase, Quantity: 10, UnitCost: &cost,
	})
	require.NoError(t, err)
	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", id))

	err = uc.Post(context.Background(), "org-1", "user-1", id)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, int64(20), fx.variants["var-1"].StockQuantity, "el efecto no debe duplicarse")
}

// TestPost_CrossTenant verifica que contabilizar un documento de otra
// organización falla con ErrCrossTenant.
func TestPost_CrossTenant(t *testing.T) {
	fx := newFixture(entity.CostMethodWeightedAverage)
	uc := newUseCase(fx)
	fx.movements["mov-ajeno"] = &entity.StockMovement{
		ID: "mov-ajeno", OrganizationID: "org-2", VariantID: "var-1",
		Type: entity.MovementTypeSale, Quantity: -1,
	}

	err := uc.Post(context.Background(), "org-1", "user-1", "mov-ajeno")
	assert.ErrorIs(t, err, domain.ErrCrossTenant)
}

// TestReject_NoTocaLibros verifica que el rechazo nunca muta stock y que un
// documento rechazado ya no puede contabilizarse.
func TestReject_NoTocaLibros(t *testing.T) {
	fx := newFixture(entity.CostMethodWeightedAverage)
	uc := newUseCase(fx)
	cost := decimal.NewFromInt(7)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypePurchase, Quantity: 10, UnitCost: &cost,
	})
	require.NoError(t, err)
	require.NoError(t, uc.Reject(context.Background(), "org-1", "user-1", id, "proveedor equivocado"))

	mov := fx.movements[id]
	assert.True(t, mov.IsRejected)
	assert.Equal(t, "proveedor equivocado", mov.RejectReason)
	assert.Equal(t, int64(10), fx.variants["var-1"].StockQuantity)

	err = uc.Post(context.Background(), "org-1", "user-1", id)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// TestPost_FIFO verifica el ciclo FIFO completo: dos compras crean lotes, la
// salida consume del más antiguo y el promedio queda como vista derivada.
func TestPost_FIFO(t *testing.T) {
	fx := newFixture(entity.CostMethodFIFO)
	fx.variants["var-1"].StockQuantity = 0
	fx.variants["var-1"].AverageCost = decimal.Zero
	uc := newUseCase(fx)

	cost5 := decimal.NewFromInt(5)
	cost7 := decimal.NewFromInt(7)

	buy1, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypePurchase, Quantity: 10, UnitCost: &cost5,
	})
	require.NoError(t, err)
	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", buy1))
	// Separa los ReceivedAt de los lotes para un orden FIFO determinista.
	fx.batches[0].ReceivedAt = fx.batches[0].ReceivedAt.Add(-time.Hour)

	buy2, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypePurchase, Quantity: 10, UnitCost: &cost7,
	})
	require.NoError(t, err)
	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", buy2))

	v := fx.variants["var-1"]
	assert.Equal(t, int64(20), v.StockQuantity)
	assert.True(t, v.AverageCost.Equal(decimal.NewFromInt(6)), "promedio derivado del libro de lotes")

	sale, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypeSale, Quantity: 15,
	})
	require.NoError(t, err)
	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", sale))

	assert.Equal(t, int64(5), v.StockQuantity)
	assert.True(t, v.AverageCost.Equal(decimal.NewFromInt(7)), "solo queda el lote de 7.00")
	assert.Equal(t, int64(0), fx.batches[0].Remaining, "el lote antiguo se agota primero")
	assert.Equal(t, int64(5), fx.batches[1].Remaining)

	// Salida valorada por lotes: 10@5 + 5@7 = 85.00
	_, lines := entryForReference(fx, sale)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(85)), "esperaba 85, obtuve %s", lines[0].Debit)
}

// TestPost_Traslado verifica que el traslado no cambia stock ni emite asiento,
// pero no puede mover más unidades de las que hay.
func TestPost_Traslado(t *testing.T) {
	fx := newFixture(entity.CostMethodWeightedAverage)
	uc := newUseCase(fx)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypeTransfer, Quantity: 5,
		SourceLocationID: "loc-1", DestinationLocationID: "loc-2",
	})
	require.NoError(t, err)
	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", id))

	assert.Equal(t, int64(10), fx.variants["var-1"].StockQuantity, "el traslado no cambia el total")
	assert.True(t, fx.movements[id].IsPosted)
	entry, _ := entryForReference(fx, id)
	assert.Nil(t, entry, "los traslados no mueven valor y no generan asiento")

	tooMuch, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypeTransfer, Quantity: 15,
		SourceLocationID: "loc-1", DestinationLocationID: "loc-2",
	})
	require.NoError(t, err)
	err = uc.Post(context.Background(), "org-1", "user-1", tooMuch)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// TestPost_SinCuentasConfiguradas verifica que sin mapeo de cuentas la
// contabilización procede sin emitir asiento.
func TestPost_SinCuentasConfiguradas(t *testing.T) {
	fx := newFixture(entity.CostMethodWeightedAverage)
	fx.posting = nil
	uc := newUseCase(fx)
	cost := decimal.NewFromInt(7)

	id, err := uc.CreateDraft(context.Background(), "org-1", "user-1", stock.MovementInput{
		VariantID: "var-1", Type: entity.MovementTypePurchase, Quantity: 10, UnitCost: &cost,
	})
	require.NoError(t, err)
	require.NoError(t, uc.Post(context.Background(), "org-1", "user-1", id))

	assert.Equal(t, int64(20), fx.variants["var-1"].StockQuantity)
	assert.Empty(t, fx.entries, "sin cuentas configuradas no se emite asiento")
}
