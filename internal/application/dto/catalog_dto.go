package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// CreateOrganizationRequest cuerpo para crear una organización.
// CostMethod vacío = WEIGHTED_AVERAGE. El método de costeo es inmutable
// una vez existen movimientos contabilizados.
type CreateOrganizationRequest struct {
	Name       string `json:"name"`
	CostMethod string `json:"cost_method,omitempty"` // WEIGHTED_AVERAGE | FIFO
}

// OrganizationResponse representación de una organización.
type OrganizationResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CostMethod string    `json:"cost_method"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToOrganizationResponse mapea la entidad.
func ToOrganizationResponse(o *entity.Organization) *OrganizationResponse {
	if o == nil {
		return nil
	}
	return &OrganizationResponse{
		ID:         o.ID,
		Name:       o.Name,
		CostMethod: o.CostMethod,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
	}
}

// PostingAccountsRequest mapeo de cuentas por defecto para emitir asientos.
type PostingAccountsRequest struct {
	InventoryAccountID  string `json:"inventory_account_id"`
	AdjustmentAccountID string `json:"adjustment_account_id"`
	PayableAccountID    string `json:"payable_account_id"`
	CashAccountID       string `json:"cash_account_id"`
	DepositsAccountID   string `json:"deposits_account_id"`
}

// CreateProductRequest cuerpo para crear un producto con su variante inicial.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToProductResponse mapea la entidad.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
	}
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateVariantRequest cuerpo para crear una variante de producto.
type CreateVariantRequest struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
}

// VariantResponse representación de una variante con stock y costo vigentes.
type VariantResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	StockQuantity int64           `json:"stock_quantity"`
	AverageCost   decimal.Decimal `json:"average_cost"`
}

// ToVariantResponse mapea la entidad.
func ToVariantResponse(v *entity.ProductVariant) *VariantResponse {
	if v == nil {
		return nil
	}
	return &VariantResponse{
		ID:            v.ID,
		ProductID:     v.ProductID,
		SKU:           v.SKU,
		Name:          v.Name,
		StockQuantity: v.StockQuantity,
		AverageCost:   v.AverageCost,
	}
}

// CreateCustomerRequest cuerpo para crear un cliente (su monedero se crea junto).
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CustomerResponse representación de un cliente con su monedero.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	WalletID  string    `json:"wallet_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAccountRequest cuerpo para crear una cuenta del plan de cuentas.
type CreateAccountRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Type     string `json:"type"` // ASSET | LIABILITY | EQUITY | INCOME | EXPENSE
	ParentID string `json:"parent_id,omitempty"`
}

// AccountResponse representación de una cuenta.
type AccountResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parent_id,omitempty"`
	IsActive bool   `json:"is_active"`
}

// ToAccountResponse mapea la entidad.
func ToAccountResponse(a *entity.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:       a.ID,
		Code:     a.Code,
		Name:     a.Name,
		Type:     a.Type,
		ParentID: a.ParentID,
		IsActive: a.IsActive,
	}
}
