// Package reconciliation implementa el motor de conciliación: aplicar el
// delta entre cantidad registrada y conteo físico, y clasificar la salud de
// stock por categoría.
package reconciliation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/domain"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
	"github.com/jhoicas/CampoStock-api/internal/domain/inventory"
	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
)

// UseCase casos de uso de conciliación de inventario.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	serialRepo  repository.SerialUnitRepository
}

// New construye el caso de uso.
func New(txRunner TxRunner, productRepo repository.ProductRepository, serialRepo repository.SerialUnitRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, serialRepo: serialRepo}
}

// CountInput conteo físico de un producto.
type CountInput struct {
	CompanyID    string
	UserID       string
	ProductID    string
	RealQuantity int
	Notes        string
}

// CountResult resultado del conteo.
type CountResult struct {
	Audit        *entity.AuditRecord
	StockUpdated bool
	Difference   int
}

// CountAndReconcile registra un conteo físico:
//
//  1. Lee la cantidad de sistema (contador para granel; cuenta de unidades
//     activas para seriados, donde el contador es solo indicativo).
//  2. difference = real - sistema.
//  3. Crea una ocurrencia inventario ya resolvida con
//     quantity = max(1, |difference|) y un resumen legible.
//  4. Si hay diferencia en un producto a granel, reescribe CurrentStock.
//
// Un conteo sin diferencia igualmente deja ocurrencia: es evidencia de
// verificación, no solo de cambio. La ocurrencia se escribe primero y ambas
// escrituras van dentro de la misma transacción.
func (uc *UseCase) CountAndReconcile(ctx context.Context, in CountInput) (*CountResult, error) {
	if in.RealQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.ownedProduct(in.CompanyID, in.ProductID)
	if err != nil {
		return nil, err
	}

	systemQuantity := product.CurrentStock
	if product.IsSerialized {
		systemQuantity, err = uc.serialRepo.CountActiveByProduct(product.ID)
		if err != nil {
			return nil, err
		}
	}
	difference := in.RealQuantity - systemQuantity

	quantity := difference
	if quantity < 0 {
		quantity = -quantity
	}
	if quantity < 1 {
		quantity = 1
	}

	description := fmt.Sprintf(
		"Inventário: sistema=%d, contado=%d, diferença=%+d.",
		systemQuantity, in.RealQuantity, difference,
	)
	if product.IsSerialized {
		description += " Quantidade de sistema derivada do registro de seriais."
	}
	if in.Notes != "" {
		description += " Obs: " + in.Notes
	}

	now := time.Now()
	record := &entity.AuditRecord{
		ID:          uuid.New().String(),
		CompanyID:   in.CompanyID,
		ProductID:   product.ID,
		Type:        entity.AuditInventario,
		Quantity:    quantity,
		Description: description,
		Status:      entity.AuditResolvido,
		ReportedBy:  in.UserID,
		ReportedAt:  now,
		ResolvedAt:  &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stockUpdated := false
	err = uc.txRunner.Run(ctx, func(auditRepo repository.AuditRepository, productRepo repository.ProductRepository) error {
		// La ocurrencia es la evidencia durable: va primero.
		if err := auditRepo.Create(record); err != nil {
			return err
		}
		if difference != 0 && !product.IsSerialized {
			if err := productRepo.UpdateStock(product.ID, in.RealQuantity); err != nil {
				return err
			}
			stockUpdated = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CountResult{Audit: record, StockUpdated: stockUpdated, Difference: difference}, nil
}

// CategoryHealth clasifica la salud de stock de una categoría.
func (uc *UseCase) CategoryHealth(ctx context.Context, companyID, category string) (*dto.CategoryHealthResponse, error) {
	if !entity.ValidCategory(category) {
		return nil, domain.ErrInvalidInput
	}
	products, err := uc.productRepo.ListByCategory(companyID, category)
	if err != nil {
		return nil, err
	}
	h := inventory.ClassifyStockHealth(products)
	return &dto.CategoryHealthResponse{
		Category: category,
		Zero:     h.Zero,
		Low:      h.Low,
		Severity: string(h.Severity),
		Count:    h.Count,
	}, nil
}

// HealthSummary salud de stock por cada categoría, para el tablero.
func (uc *UseCase) HealthSummary(ctx context.Context, companyID string) ([]*dto.CategoryHealthResponse, error) {
	categories := []string{
		entity.CategoryEPI,
		entity.CategoryEPC,
		entity.CategoryFerramentas,
		entity.CategoryMateriais,
		entity.CategoryEquipamentos,
	}
	out := make([]*dto.CategoryHealthResponse, 0, len(categories))
	for _, c := range categories {
		h, err := uc.CategoryHealth(ctx, companyID, c)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// ListForReport lista los productos de la empresa categoría por categoría,
// en el orden fijo del tablero, para el informe de inventario.
func (uc *UseCase) ListForReport(ctx context.Context, companyID string) ([]*entity.Product, error) {
	categories := []string{
		entity.CategoryEPI,
		entity.CategoryEPC,
		entity.CategoryFerramentas,
		entity.CategoryMateriais,
		entity.CategoryEquipamentos,
	}
	var out []*entity.Product
	for _, c := range categories {
		products, err := uc.productRepo.ListByCategory(companyID, c)
		if err != nil {
			return nil, err
		}
		out = append(out, products...)
	}
	return out, nil
}

func (uc *UseCase) ownedProduct(companyID, productID string) (*entity.Product, error) {
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
