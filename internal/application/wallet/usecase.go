package wallet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/journal"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// TransactionUseCase maneja depósitos y retiros de monedero como documentos
// contabilizables: borrador, contabilización con snapshot de saldo y rechazo.
type TransactionUseCase struct {
	txRunner     TxRunner
	walletRepo   repository.WalletRepository
	walletTxRepo repository.WalletTransactionRepository
	orgRepo      repository.OrganizationRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	txRunner TxRunner,
	walletRepo repository.WalletRepository,
	walletTxRepo repository.WalletTransactionRepository,
	orgRepo repository.OrganizationRepository,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:     txRunner,
		walletRepo:   walletRepo,
		walletTxRepo: walletTxRepo,
		orgRepo:      orgRepo,
	}
}

// TransactionInput entrada para crear un borrador de transacción de monedero.
type TransactionInput struct {
	WalletID     string
	Type         string // DEPOSIT | WITHDRAWAL
	Amount       decimal.Decimal
	SalesOrderID string
	Note         string
}

// CreateDraft valida la estructura y persiste el borrador. No toca saldos.
func (uc *TransactionUseCase) CreateDraft(ctx context.Context, orgID, actorID string, in TransactionInput) (string, error) {
	if orgID == "" || actorID == "" || in.WalletID == "" {
		return "", domain.ErrInvalidInput
	}
	if in.Type != entity.WalletTxDeposit && in.Type != entity.WalletTxWithdrawal {
		return "", domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return "", domain.ErrInvalidInput
	}

	wallet, err := uc.walletRepo.GetByID(in.WalletID)
	if err != nil {
		return "", err
	}
	if wallet == nil {
		return "", domain.ErrNotFound
	}
	if wallet.OrganizationID != orgID {
		return "", domain.ErrCrossTenant
	}

	tx := &entity.WalletTransaction{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		WalletID:       in.WalletID,
		Type:           in.Type,
		Amount:         in.Amount,
		SalesOrderID:   in.SalesOrderID,
		Note:           in.Note,
		CreatedAt:      time.Now(),
		CreatedBy:      actorID,
	}
	if err := uc.walletTxRepo.Create(tx); err != nil {
		return "", err
	}
	return tx.ID, nil
}

// Post contabiliza la transacción: bloquea documento y monedero, captura
// balance_before/balance_after y actualiza el saldo. Retiros que dejarían el
// saldo negativo fallan con ErrInsufficientFunds sin escribir nada.
func (uc *TransactionUseCase) Post(ctx context.Context, orgID, actorID, txID string) error {
	accounts, err := uc.orgRepo.GetPostingAccounts(orgID)
	if err != nil {
		return err
	}
	now := time.Now()
	return uc.txRunner.RunWallet(ctx, func(
		walletRepo repository.WalletRepository,
		walletTxRepo repository.WalletTransactionRepository,
		_ repository.ReceiptRepository,
		journalRepo repository.JournalRepository,
		accountRepo repository.AccountRepository,
	) error {
		tx, err := walletTxRepo.GetForUpdate(txID)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		if tx.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		return PostTransactionInTx(walletRepo, walletTxRepo, journalRepo, accountRepo,
			accounts, tx, actorID, now)
	})
}

// Reject rechaza una transacción en borrador. Nunca toca el saldo.
func (uc *TransactionUseCase) Reject(ctx context.Context, orgID, actorID, txID, reason string) error {
	now := time.Now()
	return uc.txRunner.RunWallet(ctx, func(
		_ repository.WalletRepository,
		walletTxRepo repository.WalletTransactionRepository,
		_ repository.ReceiptRepository,
		_ repository.JournalRepository,
		_ repository.AccountRepository,
	) error {
		tx, err := walletTxRepo.GetForUpdate(txID)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		if tx.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		if err := tx.Reject(actorID, now, reason); err != nil {
			return err
		}
		return walletTxRepo.Update(tx)
	})
}

// Get devuelve una transacción por ID (lectura).
func (uc *TransactionUseCase) Get(ctx context.Context, orgID, txID string) (*entity.WalletTransaction, error) {
	tx, err := uc.walletTxRepo.GetByID(txID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	if tx.OrganizationID != orgID {
		return nil, domain.ErrCrossTenant
	}
	return tx, nil
}

// ListByWallet devuelve el extracto del monedero.
func (uc *TransactionUseCase) ListByWallet(ctx context.Context, orgID, walletID string, limit, offset int) ([]*entity.WalletTransaction, error) {
	wallet, err := uc.walletRepo.GetByID(walletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, domain.ErrNotFound
	}
	if wallet.OrganizationID != orgID {
		return nil, domain.ErrCrossTenant
	}
	return uc.walletTxRepo.ListByWallet(walletID, limit, offset)
}

// PostTransactionInTx aplica una transacción de monedero en borrador usando
// los repositorios de la transacción del caller. Única ruta que escribe
// Wallet.Balance; la usan Post y la contabilización de recibos.
func PostTransactionInTx(
	walletRepo repository.WalletRepository,
	walletTxRepo repository.WalletTransactionRepository,
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
	accounts *entity.PostingAccounts,
	tx *entity.WalletTransaction,
	actorID string,
	now time.Time,
) error {
	if !tx.IsDraft() {
		return domain.ErrInvalidState
	}

	// Bloquea la fila del monedero: dos posts concurrentes sobre el mismo
	// monedero nunca leen el mismo balance_before.
	wallet, err := walletRepo.GetForUpdate(tx.WalletID)
	if err != nil {
		return err
	}
	if wallet == nil {
		return domain.ErrNotFound
	}
	if wallet.OrganizationID != tx.OrganizationID {
		return domain.ErrCrossTenant
	}

	balanceBefore := wallet.Balance
	var balanceAfter decimal.Decimal
	switch tx.Type {
	case entity.WalletTxDeposit:
		balanceAfter = balanceBefore.Add(tx.Amount)
	case entity.WalletTxWithdrawal:
		balanceAfter = balanceBefore.Sub(tx.Amount)
		if balanceAfter.IsNegative() {
			return domain.ErrInsufficientFunds
		}
	default:
		return domain.ErrValidation
	}

	tx.BalanceBefore = balanceBefore
	tx.BalanceAfter = balanceAfter
	if err := tx.Post(actorID, now); err != nil {
		return err
	}
	if err := walletRepo.UpdateBalance(wallet.ID, balanceAfter); err != nil {
		return err
	}
	if err := walletTxRepo.Update(tx); err != nil {
		return err
	}

	if accounts != nil && accounts.Configured() {
		lines := transactionJournalLines(tx, accounts)
		if _, err := journal.GenerateInTx(journalRepo, accountRepo,
			tx.OrganizationID, actorID, now,
			"transacción de monedero "+tx.Type, tx.ID, lines); err != nil {
			return err
		}
	}
	return nil
}

// transactionJournalLines arma el asiento del movimiento de monedero:
// depósito = débito caja / crédito anticipos; retiro a la inversa.
func transactionJournalLines(tx *entity.WalletTransaction, accounts *entity.PostingAccounts) []*entity.JournalEntryLine {
	if tx.Type == entity.WalletTxDeposit {
		return []*entity.JournalEntryLine{
			{AccountID: accounts.CashAccountID, Debit: tx.Amount, Credit: decimal.Zero},
			{AccountID: accounts.DepositsAccountID, Debit: decimal.Zero, Credit: tx.Amount},
		}
	}
	return []*entity.JournalEntryLine{
		{AccountID: accounts.DepositsAccountID, Debit: tx.Amount, Credit: decimal.Zero},
		{AccountID: accounts.CashAccountID, Debit: decimal.Zero, Credit: tx.Amount},
	}
}
