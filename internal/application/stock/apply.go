package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/journal"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/costing"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// PostMovementInTx aplica un movimiento en borrador sobre la variante usando
// los repositorios de la transacción del caller. Es la única ruta que escribe
// StockQuantity y AverageCost; la usan tanto Post como el cierre de auditoría
// (que contabiliza los ajustes generados en su misma transacción).
//
// Pasos: bloquear variante → delta con signo → verificar no-negatividad →
// costeo según CostMethod → snapshots stock_before/stock_after → persistir
// variante y movimiento → emitir asiento si hay cuentas configuradas.
func PostMovementInTx(
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	batchRepo repository.StockBatchRepository,
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
	org *entity.Organization,
	accounts *entity.PostingAccounts,
	mov *entity.StockMovement,
	actorID string,
	now time.Time,
) error {
	if !mov.IsDraft() {
		return domain.ErrInvalidState
	}

	// Bloquea la fila de la variante (SELECT FOR UPDATE): dos posts
	// concurrentes sobre la misma variante nunca leen el mismo stock_before.
	variant, err := variantRepo.GetForUpdate(mov.VariantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return domain.ErrNotFound
	}
	if variant.OrganizationID != mov.OrganizationID {
		return domain.ErrCrossTenant
	}

	stockBefore := variant.StockQuantity
	delta := mov.Delta()
	stockAfter := stockBefore + delta
	if stockAfter < 0 {
		return domain.ErrInsufficientStock
	}
	// Un traslado no cambia la fila de la variante, pero no puede mover más
	// unidades de las que hay.
	if mov.Type == entity.MovementTypeTransfer && mov.Quantity > stockBefore {
		return domain.ErrInsufficientStock
	}

	newCost := variant.AverageCost
	// issueValue: valor de la salida para el asiento (costo de emisión).
	issueValue := decimal.Zero

	switch {
	case org.CostMethod == entity.CostMethodFIFO && mov.Inbound():
		if mov.UnitCost == nil {
			return domain.ErrValidation
		}
		batches, err := batchRepo.ListOpenForUpdate(variant.ID)
		if err != nil {
			return err
		}
		newBatch := &entity.StockBatch{
			ID:             uuid.New().String(),
			OrganizationID: mov.OrganizationID,
			VariantID:      variant.ID,
			MovementID:     mov.ID,
			Remaining:      mov.Quantity,
			UnitCost:       *mov.UnitCost,
			ReceivedAt:     now,
		}
		if err := batchRepo.Create(newBatch); err != nil {
			return err
		}
		newCost = costing.DerivedAverage(append(batches, newBatch))

	case org.CostMethod == entity.CostMethodFIFO && delta < 0:
		batches, err := batchRepo.ListOpenForUpdate(variant.ID)
		if err != nil {
			return err
		}
		consumed, total, err := costing.ConsumeFIFO(batches, -delta)
		if err != nil {
			return err
		}
		for _, c := range consumed {
			if err := batchRepo.UpdateRemaining(c.Batch.ID, c.Batch.Remaining); err != nil {
				return err
			}
		}
		issueValue = total
		newCost = costing.DerivedAverage(batches)

	case mov.Inbound():
		// Promedio ponderado: el costo solo se mueve con entradas.
		if mov.UnitCost == nil {
			return domain.ErrValidation
		}
		newCost = costing.AverageCost(stockBefore, variant.AverageCost, mov.Quantity, *mov.UnitCost)

	case delta < 0:
		// Salida a costo promedio vigente. Los ajustes de auditoría traen el
		// costo del snapshot y se valoran con él, no con el costo vivo.
		issueCost := variant.AverageCost
		if mov.UnitCost != nil {
			issueCost = *mov.UnitCost
		}
		issueValue = decimal.NewFromInt(-delta).Mul(issueCost)
	}

	mov.StockBefore = stockBefore
	mov.StockAfter = stockAfter
	if err := mov.Post(actorID, now); err != nil {
		return err
	}
	if err := variantRepo.UpdateStockAndCost(variant.ID, stockAfter, newCost); err != nil {
		return err
	}
	if err := movRepo.Update(mov); err != nil {
		return err
	}

	if accounts != nil && accounts.Configured() {
		lines := movementJournalLines(mov, accounts, issueValue)
		if len(lines) > 0 {
			_, err := journal.GenerateInTx(journalRepo, accountRepo,
				mov.OrganizationID, actorID, now,
				"movimiento de stock "+mov.Type, mov.ID, lines)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// movementJournalLines arma el asiento balanceado del movimiento.
// Entradas: débito inventarios / crédito proveedores (compras) o ajustes.
// Salidas: débito ajustes / crédito inventarios al costo de emisión.
// Traslados no mueven valor y no generan asiento.
func movementJournalLines(mov *entity.StockMovement, accounts *entity.PostingAccounts, issueValue decimal.Decimal) []*entity.JournalEntryLine {
	switch {
	case mov.Type == entity.MovementTypeTransfer:
		return nil
	case mov.Inbound():
		value := decimal.NewFromInt(mov.Quantity).Mul(*mov.UnitCost)
		if value.IsZero() {
			return nil
		}
		creditAccount := accounts.AdjustmentAccountID
		if mov.Type == entity.MovementTypePurchase {
			creditAccount = accounts.PayableAccountID
		}
		return []*entity.JournalEntryLine{
			{AccountID: accounts.InventoryAccountID, Debit: value, Credit: decimal.Zero},
			{AccountID: creditAccount, Debit: decimal.Zero, Credit: value},
		}
	default:
		if issueValue.IsZero() {
			return nil
		}
		return []*entity.JournalEntryLine{
			{AccountID: accounts.AdjustmentAccountID, Debit: issueValue, Credit: decimal.Zero},
			{AccountID: accounts.InventoryAccountID, Debit: decimal.Zero, Credit: issueValue},
		}
	}
}
