package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// CustomerUseCase CRUD delgado para clientes. Cada cliente nace con su
// monedero en cero; el saldo solo lo mueven transacciones contabilizadas.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	walletRepo   repository.WalletRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, walletRepo repository.WalletRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, walletRepo: walletRepo}
}

// Create crea el cliente y su monedero.
func (uc *CustomerUseCase) Create(orgID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if orgID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           in.Name,
		TaxID:          in.TaxID,
		Email:          in.Email,
		Phone:          in.Phone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	wallet := &entity.Wallet{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		CustomerID:     customer.ID,
		Balance:        decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.walletRepo.Create(wallet); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer, wallet.ID), nil
}

// GetByID obtiene un cliente con su monedero.
func (uc *CustomerUseCase) GetByID(orgID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if customer.OrganizationID != orgID {
		return nil, domain.ErrCrossTenant
	}
	wallet, err := uc.walletRepo.GetByCustomer(customer.ID)
	if err != nil {
		return nil, err
	}
	walletID := ""
	if wallet != nil {
		walletID = wallet.ID
	}
	return toCustomerResponse(customer, walletID), nil
}

// GetWallet devuelve el monedero del cliente con su saldo vigente.
func (uc *CustomerUseCase) GetWallet(orgID, customerID string) (*dto.WalletResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.OrganizationID != orgID {
		return nil, domain.ErrCrossTenant
	}
	wallet, err := uc.walletRepo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.WalletResponse{ID: wallet.ID, CustomerID: wallet.CustomerID, Balance: wallet.Balance}, nil
}

// List lista clientes de la organización con paginación.
func (uc *CustomerUseCase) List(orgID string, limit, offset int) ([]dto.CustomerResponse, error) {
	list, err := uc.customerRepo.ListByOrganization(orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c, ""))
	}
	return items, nil
}

func toCustomerResponse(c *entity.Customer, walletID string) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		WalletID:  walletID,
		CreatedAt: c.CreatedAt,
	}
}
