package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/application/registry"
	"github.com/jhoicas/CampoStock-api/internal/domain"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos del almacén.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	registry    *registry.UseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, reg *registry.UseCase) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, registry: reg}
}

// Create valida y persiste un producto. Código único por empresa.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Code == "" || in.Name == "" || !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.productRepo.GetByCompanyAndCode(companyID, in.Code); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	stock := in.CurrentStock
	if in.IsSerialized {
		// Para seriados el contador nace en cero; las entradas de seriales lo
		// vuelven irrelevante.
		stock = 0
	}
	product := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Code:         in.Code,
		Name:         in.Name,
		Category:     in.Category,
		IsSerialized: in.IsSerialized,
		CurrentStock: stock,
		MinStock:     in.MinStock,
		Unit:         in.Unit,
		Cost:         in.Cost,
		Location:     in.Location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update edita datos descriptivos. El stock no se toca por aquí.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, productID string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.owned(companyID, productID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Category != "" {
		if !entity.ValidCategory(in.Category) {
			return nil, domain.ErrInvalidInput
		}
		product.Category = in.Category
	}
	if in.MinStock >= 0 {
		product.MinStock = in.MinStock
	}
	if in.Unit != "" {
		product.Unit = in.Unit
	}
	if !in.Cost.IsZero() {
		product.Cost = in.Cost
	}
	if in.Location != "" {
		product.Location = in.Location
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, productID string) (*entity.Product, error) {
	return uc.owned(companyID, productID)
}

// List lista productos de la empresa.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*entity.Product, error) {
	page.DefaultPage()
	return uc.productRepo.ListByCompany(companyID, page.Limit, page.Offset)
}

// Delete elimina un producto. Con unidades seriadas activas se rechaza:
// primero hay que descartarlas o devolverlas.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, productID string) error {
	product, err := uc.owned(companyID, productID)
	if err != nil {
		return err
	}
	if product.IsSerialized {
		stock, err := uc.registry.AuthoritativeStock(ctx, product)
		if err != nil {
			return err
		}
		if stock.Quantity > 0 {
			return domain.ErrConflict
		}
	}
	return uc.productRepo.Delete(productID)
}

// ToResponse arma el DTO de salida con la cantidad autoritativa etiquetada.
func (uc *ProductUseCase) ToResponse(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	stock, err := uc.registry.AuthoritativeStock(ctx, p)
	if err != nil {
		return nil, err
	}
	source := "counted"
	if stock.Kind == entity.StockSerialDerived {
		source = "serial_derived"
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Category:     p.Category,
		IsSerialized: p.IsSerialized,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		Unit:         p.Unit,
		Cost:         p.Cost,
		Location:     p.Location,
		StockSource:  source,
		Stock:        stock.Quantity,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}

func (uc *ProductUseCase) owned(companyID, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}
