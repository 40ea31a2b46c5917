package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/stock"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// UseCase orquesta la auditoría de inventario: snapshot del stock teórico,
// registro de conteos físicos y cierre con ajustes contabilizados a costo
// del snapshot. Flujo DRAFT → IN_PROGRESS → COMPLETED, con CANCELLED
// alcanzable desde los dos primeros.
type UseCase struct {
	txRunner    TxRunner
	auditRepo   repository.AuditRepository
	variantRepo repository.VariantRepository
	orgRepo     repository.OrganizationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	auditRepo repository.AuditRepository,
	variantRepo repository.VariantRepository,
	orgRepo repository.OrganizationRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		auditRepo:   auditRepo,
		variantRepo: variantRepo,
		orgRepo:     orgRepo,
	}
}

// CreateDraft crea la auditoría en borrador. El snapshot no se toma aquí
// sino en Start. LocationID es informativo: el stock vive en una sola fila
// por variante (las ubicaciones son conceptuales, igual que en los
// traslados), así que el snapshot siempre cubre toda la organización.
func (uc *UseCase) CreateDraft(ctx context.Context, orgID, actorID, locationID string) (string, error) {
	if orgID == "" || actorID == "" {
		return "", domain.ErrInvalidInput
	}
	audit := &entity.InventoryAudit{
		ID:                 uuid.New().String(),
		OrganizationID:     orgID,
		Status:             entity.AuditStatusDraft,
		LocationID:         locationID,
		TotalVarianceValue: decimal.Zero,
		CreatedAt:          time.Now(),
		CreatedBy:          actorID,
	}
	if err := uc.auditRepo.CreateAudit(audit); err != nil {
		return "", err
	}
	return audit.ID, nil
}

// Start toma el snapshot: crea un ítem por variante con el stock teórico y
// el costo promedio capturados en un único instante (una sola transacción,
// snapshot_taken_at). Movimientos posteriores no alteran el snapshot.
func (uc *UseCase) Start(ctx context.Context, orgID, actorID, auditID string) error {
	now := time.Now()
	return uc.txRunner.RunAudit(ctx, func(
		auditRepo repository.AuditRepository,
		_ repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		_ repository.StockBatchRepository,
		_ repository.JournalRepository,
		_ repository.AccountRepository,
	) error {
		audit, err := auditRepo.GetAuditForUpdate(auditID)
		if err != nil {
			return err
		}
		if audit == nil {
			return domain.ErrNotFound
		}
		if audit.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		if audit.Status != entity.AuditStatusDraft {
			return domain.ErrInvalidState
		}

		variants, err := variantRepo.ListByOrganization(orgID)
		if err != nil {
			return err
		}
		for _, v := range variants {
			item := &entity.InventoryAuditItem{
				ID:                  uuid.New().String(),
				AuditID:             audit.ID,
				VariantID:           v.ID,
				TheoreticalStock:    v.StockQuantity,
				SnapshotAverageCost: v.AverageCost,
				VarianceValue:       decimal.Zero,
			}
			if err := auditRepo.CreateItem(item); err != nil {
				return err
			}
		}

		audit.Status = entity.AuditStatusInProgress
		audit.SnapshotTakenAt = &now
		audit.TotalVariants = len(variants)
		return auditRepo.UpdateAudit(audit)
	})
}

// RecordCount registra el conteo físico de un ítem y mantiene los contadores
// agregados de la auditoría de forma incremental. Un reconteo reemplaza la
// contribución anterior del ítem.
func (uc *UseCase) RecordCount(ctx context.Context, orgID, actorID, itemID string, countedStock int64) error {
	if countedStock < 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunAudit(ctx, func(
		auditRepo repository.AuditRepository,
		_ repository.StockMovementRepository,
		_ repository.VariantRepository,
		_ repository.StockBatchRepository,
		_ repository.JournalRepository,
		_ repository.AccountRepository,
	) error {
		item, err := auditRepo.GetItem(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		// Bloquea la cabecera: serializa conteos concurrentes sobre los
		// contadores agregados.
		audit, err := auditRepo.GetAuditForUpdate(item.AuditID)
		if err != nil {
			return err
		}
		if audit == nil {
			return domain.ErrNotFound
		}
		if audit.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		if audit.Status != entity.AuditStatusInProgress {
			return domain.ErrInvalidState
		}

		if item.CountedStock != nil {
			// Reconteo: retira la contribución anterior.
			audit.TotalVariance -= item.Variance
			audit.TotalVarianceValue = audit.TotalVarianceValue.Sub(item.VarianceValue)
		} else {
			audit.CountedVariants++
		}

		counted := countedStock
		item.CountedStock = &counted
		item.Variance = counted - item.TheoreticalStock
		item.VarianceValue = decimal.NewFromInt(item.Variance).Mul(item.SnapshotAverageCost)
		item.CountedAt = &now
		item.CountedBy = actorID

		audit.TotalVariance += item.Variance
		audit.TotalVarianceValue = audit.TotalVarianceValue.Add(item.VarianceValue)

		if err := auditRepo.UpdateItem(item); err != nil {
			return err
		}
		return auditRepo.UpdateAudit(audit)
	})
}

// Complete cierra la auditoría: exige que todos los ítems estén contados y,
// por cada variance distinto de cero, sintetiza un movimiento
// AUDIT_ADJUSTMENT a costo del snapshot y lo contabiliza a través del libro
// de stock en esta misma transacción, enlazando adjustment_movement_id.
func (uc *UseCase) Complete(ctx context.Context, orgID, actorID, auditID string) error {
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
	return uc.txRunner.RunAudit(ctx, func(
		auditRepo repository.AuditRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		batchRepo repository.StockBatchRepository,
		journalRepo repository.JournalRepository,
		accountRepo repository.AccountRepository,
	) error {
		audit, err := auditRepo.GetAuditForUpdate(auditID)
		if err != nil {
			return err
		}
		if audit == nil {
			return domain.ErrNotFound
		}
		if audit.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		if audit.Status != entity.AuditStatusInProgress {
			return domain.ErrInvalidState
		}
		uncounted, err := auditRepo.CountUncounted(audit.ID)
		if err != nil {
			return err
		}
		if uncounted > 0 {
			return domain.ErrIncompleteCount
		}

		items, err := auditRepo.ListItems(audit.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.Variance == 0 {
				continue
			}
			snapshotCost := item.SnapshotAverageCost
			mov := &entity.StockMovement{
				ID:             uuid.New().String(),
				OrganizationID: orgID,
				VariantID:      item.VariantID,
				Type:           entity.MovementTypeAuditAdjustment,
				Quantity:       item.Variance,
				UnitCost:       &snapshotCost,
				Note:           "ajuste por auditoría " + audit.ID,
				CreatedAt:      now,
				CreatedBy:      actorID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			if err := stock.PostMovementInTx(movRepo, variantRepo, batchRepo, journalRepo, accountRepo,
				org, accounts, mov, actorID, now); err != nil {
				return err
			}
			item.AdjustmentMovementID = mov.ID
			if err := auditRepo.UpdateItem(item); err != nil {
				return err
			}
		}

		audit.Status = entity.AuditStatusCompleted
		audit.CompletedAt = &now
		audit.CompletedBy = actorID
		return auditRepo.UpdateAudit(audit)
	})
}

// Cancel cancela la auditoría desde DRAFT o IN_PROGRESS. No genera ajustes.
func (uc *UseCase) Cancel(ctx context.Context, orgID, actorID, auditID string) error {
	now := time.Now()
	return uc.txRunner.RunAudit(ctx, func(
		auditRepo repository.AuditRepository,
		_ repository.StockMovementRepository,
		_ repository.VariantRepository,
		_ repository.StockBatchRepository,
		_ repository.JournalRepository,
		_ repository.AccountRepository,
	) error {
		audit, err := auditRepo.GetAuditForUpdate(auditID)
		if err != nil {
			return err
		}
		if audit == nil {
			return domain.ErrNotFound
		}
		if audit.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
		if audit.Status != entity.AuditStatusDraft && audit.Status != entity.AuditStatusInProgress {
			return domain.ErrInvalidState
		}
		audit.Status = entity.AuditStatusCancelled
		audit.CancelledAt = &now
		audit.CancelledBy = actorID
		return auditRepo.UpdateAudit(audit)
	})
}

// Get devuelve la auditoría con sus ítems (lectura).
func (uc *UseCase) Get(ctx context.Context, orgID, auditID string) (*entity.InventoryAudit, []*entity.InventoryAuditItem, error) {
	audit, err := uc.auditRepo.GetAudit(auditID)
	if err != nil {
		return nil, nil, err
	}
	if audit == nil {
		return nil, nil, domain.ErrNotFound
	}
	if audit.OrganizationID != orgID {
		return nil, nil, domain.ErrCrossTenant
	}
	items, err := uc.auditRepo.ListItems(audit.ID)
	if err != nil {
		return nil, nil, err
	}
	return audit, items, nil
}
