package wallet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// ReceiptUseCase maneja recibos de caja: el comprobante imprimible que, al
// contabilizarse, produce exactamente una transacción de monedero ya
// contabilizada y queda enlazado a ella. Un recibo contabilizado no puede
// rechazarse ni volver a contabilizarse.
type ReceiptUseCase struct {
	txRunner     TxRunner
	receiptRepo  repository.ReceiptRepository
	walletRepo   repository.WalletRepository
	customerRepo repository.CustomerRepository
	orgRepo      repository.OrganizationRepository
	pdfGenerator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	txRunner TxRunner,
	receiptRepo repository.ReceiptRepository,
	walletRepo repository.WalletRepository,
	customerRepo repository.CustomerRepository,
	orgRepo repository.OrganizationRepository,
	pdfGenerator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txRunner:     txRunner,
		receiptRepo:  receiptRepo,
		walletRepo:   walletRepo,
		customerRepo: customerRepo,
		orgRepo:      orgRepo,
		pdfGenerator: pdfGenerator,
	}
}

// ReceiptItemInput línea del recibo; Subtotal se calcula aquí.
type ReceiptItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// ReceiptInput entrada para crear un borrador de recibo.
type ReceiptInput struct {
	CustomerID string
	Type       string // DEPOSIT | WITHDRAWAL
	Number     string
	Note       string
	Items      []ReceiptItemInput
}

// CreateDraft valida cliente, monedero e ítems y persiste el borrador con
// TotalAmount = Σ subtotales.
func (uc *ReceiptUseCase) CreateDraft(ctx context.Context, orgID, actorID string, in ReceiptInput) (string, error) {
	if orgID == "" || actorID == "" || in.CustomerID == "" || len(in.Items) == 0 {
		return "", domain.ErrInvalidInput
	}
	if in.Type != entity.ReceiptTypeDeposit && in.Type != entity.ReceiptTypeWithdrawal {
		return "", domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", domain.ErrNotFound
	}
	if customer.OrganizationID != orgID {
		return "", domain.ErrCrossTenant
	}
	wallet, err := uc.walletRepo.GetByCustomer(in.CustomerID)
	if err != nil {
		return "", err
	}
	if wallet == nil {
		return "", domain.ErrNotFound
	}

	receipt := &entity.Receipt{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		CustomerID:     in.CustomerID,
		WalletID:       wallet.ID,
		Type:           in.Type,
		Number:         in.Number,
		Date:           time.Now(),
		Note:           in.Note,
		CreatedAt:      time.Now(),
		CreatedBy:      actorID,
	}
	total := decimal.Zero
	items := make([]*entity.ReceiptItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Description == "" || !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() {
			return "", domain.ErrInvalidInput
		}
		subtotal := it.Quantity.Mul(it.UnitPrice)
		items = append(items, &entity.ReceiptItem{
			ID:          uuid.New().String(),
			ReceiptID:   receipt.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}
	receipt.TotalAmount = total

	if err := uc.receiptRepo.Create(receipt, items); err != nil {
		return "", err
	}
	return receipt.ID, nil
}

// Post contabiliza el recibo: revalida que TotalAmount cuadre con los ítems,
// crea la única transacción de monedero derivada, la contabiliza con el
// libro de monederos y enlaza wallet_transaction_id. Todo en una transacción.
func (uc *ReceiptUseCase) Post(ctx context.Context, orgID, actorID, receiptID string) error {
	accounts, err := uc.orgRepo.GetPostingAccounts(orgID)
	if err != nil {
		return err
	}
	now := time.Now()
	return uc.txRunner.RunWallet(ctx, func(
		walletRepo repository.WalletRepository,
		walletTxRepo repository.WalletTransactionRepository,
		receiptRepo repository.ReceiptRepository,
		journalRepo repository.JournalRepository,
		accountRepo repository.AccountRepository,
	) error {
		receipt, err := receiptRepo.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if receipt.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		if !receipt.IsDraft() {
			return domain.ErrInvalidState
		}

		items, err := receiptRepo.GetItems(receipt.ID)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for _, it := range items {
			total = total.Add(it.Subtotal)
		}
		if !total.Equal(receipt.TotalAmount) {
			return domain.ErrValidation
		}

		txType := entity.WalletTxDeposit
		if receipt.Type == entity.ReceiptTypeWithdrawal {
			txType = entity.WalletTxWithdrawal
		}
		tx := &entity.WalletTransaction{
			ID:             uuid.New().String(),
			OrganizationID: orgID,
			WalletID:       receipt.WalletID,
			Type:           txType,
			Amount:         receipt.TotalAmount,
			ReceiptID:      receipt.ID,
			CreatedAt:      now,
			CreatedBy:      actorID,
		}
		if err := walletTxRepo.Create(tx); err != nil {
			return err
		}
		if err := PostTransactionInTx(walletRepo, walletTxRepo, journalRepo, accountRepo,
			accounts, tx, actorID, now); err != nil {
			return err
		}

		receipt.WalletTransactionID = tx.ID
		if err := receipt.Post(actorID, now); err != nil {
			return err
		}
		return receiptRepo.Update(receipt)
	})
}

// Reject rechaza un recibo en borrador. No genera transacción de monedero.
func (uc *ReceiptUseCase) Reject(ctx context.Context, orgID, actorID, receiptID, reason string) error {
	now := time.Now()
	return uc.txRunner.RunWallet(ctx, func(
		_ repository.WalletRepository,
		_ repository.WalletTransactionRepository,
		receiptRepo repository.ReceiptRepository,
		_ repository.JournalRepository,
		_ repository.AccountRepository,
	) error {
		receipt, err := receiptRepo.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if receipt.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		if err := receipt.Reject(actorID, now, reason); err != nil {
			return err
		}
		return receiptRepo.Update(receipt)
	})
}

// Get devuelve el recibo con sus líneas (lectura).
func (uc *ReceiptUseCase) Get(ctx context.Context, orgID, receiptID string) (*entity.Receipt, []*entity.ReceiptItem, error) {
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, nil, err
	}
	if receipt == nil {
		return nil, nil, domain.ErrNotFound
	}
	if receipt.OrganizationID != orgID {
		return nil, nil, domain.ErrCrossTenant
	}
	items, err := uc.receiptRepo.GetItems(receipt.ID)
	if err != nil {
		return nil, nil, err
	}
	return receipt, items, nil
}

// RenderPDF genera la representación imprimible del recibo.
func (uc *ReceiptUseCase) RenderPDF(ctx context.Context, orgID, receiptID string) ([]byte, error) {
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	if receipt.OrganizationID != orgID {
		return nil, domain.ErrCrossTenant
	}
	items, err := uc.receiptRepo.GetItems(receipt.ID)
	if err != nil {
		return nil, err
	}
	org, err := uc.orgRepo.GetByID(orgID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(receipt.CustomerID)
	if err != nil {
		return nil, err
	}
	return uc.pdfGenerator.GenerateReceiptPDF(ctx, receipt, items, org, customer)
}
