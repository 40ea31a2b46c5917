package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// MovementUseCase maneja el ciclo de vida de movimientos de stock:
// borrador, contabilización (con bloqueo de fila y recálculo de costo según
// el método de la organización) y rechazo.
type MovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
	variantRepo  repository.VariantRepository
	orgRepo      repository.OrganizationRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	orgRepo repository.OrganizationRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		variantRepo:  variantRepo,
		orgRepo:      orgRepo,
	}
}

// MovementInput entrada para crear un borrador de movimiento.
// Quantity es la magnitud (positiva) para PURCHASE/SALE/TRANSFER y el efecto
// con signo para ADJUSTMENT. UnitCost es obligatorio en entradas.
type MovementInput struct {
	VariantID             string
	Type                  string
	Quantity              int64
	UnitCost              *decimal.Decimal
	SourceLocationID      string
	DestinationLocationID string
	Note                  string
}

// CreateDraft valida la estructura del movimiento y lo persiste en borrador.
// No toca ningún libro: solo Post muta stock y costo.
func (uc *MovementUseCase) CreateDraft(ctx context.Context, orgID, actorID string, in MovementInput) (string, error) {
	if orgID == "" || actorID == "" || in.VariantID == "" {
		return "", domain.ErrInvalidInput
	}

	quantity := in.Quantity
	switch in.Type {
	case entity.MovementTypePurchase:
		if in.Quantity <= 0 || in.UnitCost == nil || in.UnitCost.IsNegative() {
			return "", domain.ErrInvalidInput
		}
	case entity.MovementTypeSale:
		if in.Quantity <= 0 {
			return "", domain.ErrInvalidInput
		}
		quantity = -in.Quantity // efecto con signo: las ventas restan
	case entity.MovementTypeAdjustment:
		if in.Quantity == 0 {
			return "", domain.ErrInvalidInput
		}
		if in.Quantity > 0 && (in.UnitCost == nil || in.UnitCost.IsNegative()) {
			return "", domain.ErrInvalidInput
		}
	case entity.MovementTypeTransfer:
		if in.Quantity <= 0 || in.SourceLocationID == "" || in.DestinationLocationID == "" ||
			in.SourceLocationID == in.DestinationLocationID {
			return "", domain.ErrInvalidInput
		}
	default:
		return "", domain.ErrInvalidInput
	}

	variant, err := uc.variantRepo.GetByID(in.VariantID)
	if err != nil {
		return "", err
	}
	if variant == nil {
		return "", domain.ErrNotFound
	}
	if variant.OrganizationID != orgID {
		return "", domain.ErrCrossTenant
	}

	mov := &entity.StockMovement{
		ID:                    uuid.New().String(),
		OrganizationID:        orgID,
		VariantID:             in.VariantID,
		Type:                  in.Type,
		Quantity:              quantity,
		UnitCost:              in.UnitCost,
		SourceLocationID:      in.SourceLocationID,
		DestinationLocationID: in.DestinationLocationID,
		Note:                  in.Note,
		CreatedAt:             time.Now(),
		CreatedBy:             actorID,
	}
	if err := uc.movementRepo.Create(mov); err != nil {
		return "", err
	}
	return mov.ID, nil
}

// Post contabiliza el movimiento: bloquea documento y variante, aplica el
// delta y el costeo, captura stock_before/stock_after y emite el asiento
// contable si la organización tiene cuentas configuradas. Cualquier fallo
// aborta la transacción completa y el documento sigue en borrador.
func (uc *MovementUseCase) Post(ctx context.Context, orgID, actorID, movementID string) error {
	org, err := uc.orgRepo.GetByID(orgID)
	if err != nil {
		return err
	}
	if org == nil {
		return domain.ErrNotFound
	}
	accounts, err := uc.orgRepo.GetPostingAccounts(orgID)
	if err != nil {
		return err
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		batchRepo repository.StockBatchRepository,
		journalRepo repository.JournalRepository,
		accountRepo repository.AccountRepository,
	) error {
		mov, err := movRepo.GetForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		return PostMovementInTx(movRepo, variantRepo, batchRepo, journalRepo, accountRepo,
			org, accounts, mov, actorID, now)
	})
}

// Reject rechaza un movimiento en borrador. Nunca toca los libros.
func (uc *MovementUseCase) Reject(ctx context.Context, orgID, actorID, movementID, reason string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		_ repository.VariantRepository,
		_ repository.StockBatchRepository,
		_ repository.JournalRepository,
		_ repository.AccountRepository,
	) error {
		mov, err := movRepo.GetForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		if err := mov.Reject(actorID, now, reason); err != nil {
			return err
		}
		return movRepo.Update(mov)
	})
}

// Get devuelve un movimiento por ID (lectura).
func (uc *MovementUseCase) Get(ctx context.Context, orgID, movementID string) (*entity.StockMovement, error) {
	mov, err := uc.movementRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	if mov.OrganizationID != orgID {
		return nil, domain.ErrCrossTenant
	}
	return mov, nil
}

// ListByVariant devuelve el historial de movimientos de una variante.
func (uc *MovementUseCase) ListByVariant(ctx context.Context, orgID, variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	variant, err := uc.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	if variant.OrganizationID != orgID {
		return nil, domain.ErrCrossTenant
	}
	return uc.movementRepo.ListByVariant(variantID, limit, offset)
}
