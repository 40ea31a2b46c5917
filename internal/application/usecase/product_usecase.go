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

// ProductUseCase CRUD delgado para productos y variantes. Stock y costo de
// las variantes se manejan exclusivamente vía movimientos contabilizados.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, variantRepo repository.VariantRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, variantRepo: variantRepo}
}

// Create crea el producto y su variante por defecto (mismo SKU), con stock y
// costo en cero.
func (uc *ProductUseCase) Create(orgID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if orgID == "" || in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		SKU:            in.SKU,
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	variant := &entity.ProductVariant{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		ProductID:      product.ID,
		SKU:            in.SKU,
		Name:           in.Name,
		AverageCost:    decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto validando pertenencia a la organización.
func (uc *ProductUseCase) GetByID(orgID, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.OrganizationID != orgID {
		return nil, domain.ErrCrossTenant
	}
	return dto.ToProductResponse(product), nil
}

// List lista productos de la organización con paginación.
func (uc *ProductUseCase) List(orgID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.ListByOrganization(orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// CreateVariant crea una variante adicional de un producto existente.
func (uc *ProductUseCase) CreateVariant(orgID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	if orgID == "" || in.ProductID == "" || in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.OrganizationID != orgID {
		return nil, domain.ErrCrossTenant
	}
	now := time.Now()
	variant := &entity.ProductVariant{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		ProductID:      in.ProductID,
		SKU:            in.SKU,
		Name:           in.Name,
		AverageCost:    decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	return dto.ToVariantResponse(variant), nil
}

// GetVariant obtiene una variante validando pertenencia a la organización.
func (uc *ProductUseCase) GetVariant(orgID, id string) (*dto.VariantResponse, error) {
	variant, err := uc.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, nil
	}
	if variant.OrganizationID != orgID {
		return nil, domain.ErrCrossTenant
	}
	return dto.ToVariantResponse(variant), nil
}

// ListVariants lista las variantes de la organización.
func (uc *ProductUseCase) ListVariants(orgID string) ([]dto.VariantResponse, error) {
	list, err := uc.variantRepo.ListByOrganization(orgID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VariantResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *dto.ToVariantResponse(v))
	}
	return items, nil
}
