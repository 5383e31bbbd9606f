package audit

import (
	"context"

	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/domain"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
)

// WarrantyBatchInput entrada del envío a garantía por lotes.
type WarrantyBatchInput struct {
	CompanyID     string
	UserID        string
	ProductID     string
	SerialUnitIDs []string
	Quantity      int // solo granel
	Description   string
}

// SubmitWarrantyBatch registra el envío a garantía.
//
// Producto seriado: una ocurrencia garantia por unidad seleccionada (todas
// deben estar em_manutencao), como N escrituras independientes. No hay
// rollback: un fallo a mitad deja las anteriores creadas y se reporta en el
// BatchResult para que el caller reintente solo el subconjunto fallido.
//
// Producto a granel: una única ocurrencia con la cantidad indicada, topada
// por el stock actual.
func (uc *UseCase) SubmitWarrantyBatch(ctx context.Context, in WarrantyBatchInput) (*dto.BatchResult, error) {
	if len(in.Description) < entity.MinDescriptionLen {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.ownedProduct(in.CompanyID, in.ProductID)
	if err != nil {
		return nil, err
	}

	result := &dto.BatchResult{}

	if !product.IsSerialized {
		quantity := in.Quantity
		if quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if quantity > product.CurrentStock {
			quantity = product.CurrentStock
		}
		if quantity < 1 {
			return nil, domain.ErrInsufficientStock
		}
		record, err := uc.Open(ctx, OpenInput{
			CompanyID:   in.CompanyID,
			UserID:      in.UserID,
			ProductID:   product.ID,
			Type:        entity.AuditGarantia,
			Quantity:    quantity,
			Description: in.Description,
		})
		if err != nil {
			return nil, err
		}
		result.Succeeded = append(result.Succeeded, record.ID)
		return result, nil
	}

	if len(in.SerialUnitIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, unitID := range in.SerialUnitIDs {
		unit, err := uc.serialRepo.GetByID(unitID)
		if err != nil {
			result.Failed = append(result.Failed, dto.BatchFailure{ID: unitID, Reason: err.Error()})
			continue
		}
		if unit == nil || unit.CompanyID != in.CompanyID || unit.ProductID != product.ID {
			result.Failed = append(result.Failed, dto.BatchFailure{ID: unitID, Reason: domain.ErrNotFound.Error()})
			continue
		}
		if unit.Status != entity.SerialEmManutencao {
			result.Failed = append(result.Failed, dto.BatchFailure{ID: unitID, Reason: domain.ErrInvalidTransition.Error()})
			continue
		}
		record, err := uc.Open(ctx, OpenInput{
			CompanyID:    in.CompanyID,
			UserID:       in.UserID,
			ProductID:    product.ID,
			SerialUnitID: unit.ID,
			Type:         entity.AuditGarantia,
			Quantity:     1,
			Description:  in.Description,
		})
		if err != nil {
			result.Failed = append(result.Failed, dto.BatchFailure{ID: unitID, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, record.ID)
	}
	return result, nil
}
