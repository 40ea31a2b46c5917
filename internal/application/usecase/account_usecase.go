package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// AccountUseCase administra el plan de cuentas de la organización.
type AccountUseCase struct {
	repo repository.AccountRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(repo repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{repo: repo}
}

var validAccountTypes = map[string]bool{
	entity.AccountTypeAsset:     true,
	entity.AccountTypeLiability: true,
	entity.AccountTypeEquity:    true,
	entity.AccountTypeIncome:    true,
	entity.AccountTypeExpense:   true,
}

// Create crea una cuenta. Code único por organización; el padre, si se
// indica, debe existir en la misma organización.
func (uc *AccountUseCase) Create(orgID string, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if orgID == "" || in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validAccountTypes[in.Type] {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != "" {
		parent, err := uc.repo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrInvalidAccount
		}
		if parent.OrganizationID != orgID {
			return nil, domain.ErrCrossTenant
		}
	}
	now := time.Now()
	account := &entity.Account{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Code:           in.Code,
		Name:           in.Name,
		Type:           in.Type,
		ParentID:       in.ParentID,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(account); err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

// GetByID obtiene una cuenta validando pertenencia a la organización.
func (uc *AccountUseCase) GetByID(orgID, id string) (*dto.AccountResponse, error) {
	account, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	if account.OrganizationID != orgID {
		return nil, domain.ErrCrossTenant
	}
	return dto.ToAccountResponse(account), nil
}

// List devuelve el plan de cuentas completo ordenado por código.
func (uc *AccountUseCase) List(orgID string) ([]dto.AccountResponse, error) {
	list, err := uc.repo.ListByOrganization(orgID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *dto.ToAccountResponse(a))
	}
	return items, nil
}
