package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// OrganizationUseCase crea organizaciones y administra su configuración
// contable. Al crear una organización se siembra un plan de cuentas mínimo
// (PUC abreviado) y se configuran las cuentas de contabilización por defecto,
// de modo que los asientos automáticos funcionan desde el primer movimiento.
type OrganizationUseCase struct {
	orgRepo     repository.OrganizationRepository
	accountRepo repository.AccountRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(orgRepo repository.OrganizationRepository, accountRepo repository.AccountRepository) *OrganizationUseCase {
	return &OrganizationUseCase{orgRepo: orgRepo, accountRepo: accountRepo}
}

// seedAccount cuenta del plan mínimo sembrado al crear la organización.
type seedAccount struct {
	code, name, typ string
}

// Plan de cuentas mínimo (códigos PUC). La quinta columna del mapeo por
// defecto sale de estas cuentas.
var defaultChart = []seedAccount{
	{"1105", "Caja", entity.AccountTypeAsset},
	{"1435", "Mercancías no fabricadas por la empresa", entity.AccountTypeAsset},
	{"2205", "Proveedores nacionales", entity.AccountTypeLiability},
	{"2805", "Anticipos y avances recibidos", entity.AccountTypeLiability},
	{"6135", "Ajustes de inventario", entity.AccountTypeExpense},
}

// Create crea la organización, siembra el plan de cuentas mínimo y deja
// configuradas las cuentas de contabilización por defecto.
func (uc *OrganizationUseCase) Create(in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	costMethod := in.CostMethod
	if costMethod == "" {
		costMethod = entity.CostMethodWeightedAverage
	}
	if costMethod != entity.CostMethodWeightedAverage && costMethod != entity.CostMethodFIFO {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	org := &entity.Organization{
		ID:         uuid.New().String(),
		Name:       in.Name,
		CostMethod: costMethod,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.orgRepo.Create(org); err != nil {
		return nil, err
	}

	byCode := make(map[string]string, len(defaultChart))
	for _, s := range defaultChart {
		acc := &entity.Account{
			ID:             uuid.New().String(),
			OrganizationID: org.ID,
			Code:           s.code,
			Name:           s.name,
			Type:           s.typ,
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := uc.accountRepo.Create(acc); err != nil {
			return nil, err
		}
		byCode[s.code] = acc.ID
	}

	accounts := &entity.PostingAccounts{
		OrganizationID:      org.ID,
		InventoryAccountID:  byCode["1435"],
		AdjustmentAccountID: byCode["6135"],
		PayableAccountID:    byCode["2205"],
		CashAccountID:       byCode["1105"],
		DepositsAccountID:   byCode["2805"],
	}
	if err := uc.orgRepo.SavePostingAccounts(accounts); err != nil {
		return nil, err
	}

	return dto.ToOrganizationResponse(org), nil
}

// GetByID obtiene una organización por ID.
func (uc *OrganizationUseCase) GetByID(id string) (*dto.OrganizationResponse, error) {
	org, err := uc.orgRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.ToOrganizationResponse(org), nil
}

// ConfigurePostingAccounts reemplaza el mapeo de cuentas por defecto tras
// validar que cada cuenta exista, esté activa y pertenezca a la organización.
func (uc *OrganizationUseCase) ConfigurePostingAccounts(orgID string, in dto.PostingAccountsRequest) error {
	ids := []string{
		in.InventoryAccountID, in.AdjustmentAccountID,
		in.PayableAccountID, in.CashAccountID, in.DepositsAccountID,
	}
	for _, id := range ids {
		if id == "" {
			return domain.ErrInvalidInput
		}
		acc, err := uc.accountRepo.GetByID(id)
		if err != nil {
			return err
		}
		if acc == nil || !acc.IsActive {
			return domain.ErrInvalidAccount
		}
		if acc.OrganizationID != orgID {
			return domain.ErrCrossTenant
		}
	}
	return uc.orgRepo.SavePostingAccounts(&entity.PostingAccounts{
		OrganizationID:      orgID,
		InventoryAccountID:  in.InventoryAccountID,
		AdjustmentAccountID: in.AdjustmentAccountID,
		PayableAccountID:    in.PayableAccountID,
		CashAccountID:       in.CashAccountID,
		DepositsAccountID:   in.DepositsAccountID,
	})
}
