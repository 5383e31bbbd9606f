// Package custody implementa el rastreo de custodias: entrega de activos a
// técnicos con firma, devolución con motivo y planillas de responsabilidad.
package custody

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/CampoStock-api/internal/application/registry"
	"github.com/jhoicas/CampoStock-api/internal/domain"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
)

// UseCase casos de uso del rastreador de custodias.
type UseCase struct {
	custodyRepo    repository.CustodyRepository
	technicianRepo repository.TechnicianRepository
	productRepo    repository.ProductRepository
	serialRepo     repository.SerialUnitRepository
	registry       *registry.UseCase
}

// New construye el caso de uso.
func New(
	custodyRepo repository.CustodyRepository,
	technicianRepo repository.TechnicianRepository,
	productRepo repository.ProductRepository,
	serialRepo repository.SerialUnitRepository,
	reg *registry.UseCase,
) *UseCase {
	return &UseCase{
		custodyRepo:    custodyRepo,
		technicianRepo: technicianRepo,
		productRepo:    productRepo,
		serialRepo:     serialRepo,
		registry:       reg,
	}
}

// IssueInput entrega de un activo a un técnico.
type IssueInput struct {
	CompanyID    string
	TechnicianID string
	AssetType    entity.AssetType
	SerialUnitID string
	SerialText   string // alternativa: resolver la unidad por escaneo
	ProductID    string
	Quantity     int
	SignatureURL string
	Notes        string
	AssignedAt   time.Time
}

// Issue registra la entrega. La firma es obligatoria antes de crear nada.
// Unidad seriada: debe estar disponivel y pasa a em_uso como parte de la
// entrega. Granel: cantidad >= 1 y <= stock actual (chequeo indicativo; la
// custodia no descuenta el contador, es un registro paralelo al stock).
func (uc *UseCase) Issue(ctx context.Context, in IssueInput) (*entity.CustodyAssignment, error) {
	if strings.TrimSpace(in.SignatureURL) == "" {
		return nil, domain.ErrSignatureRequired
	}
	if !in.AssetType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	technician, err := uc.ownedTechnician(in.CompanyID, in.TechnicianID)
	if err != nil {
		return nil, err
	}

	assignedAt := in.AssignedAt
	if assignedAt.IsZero() {
		assignedAt = time.Now()
	}
	now := time.Now()
	assignment := &entity.CustodyAssignment{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		TechnicianID: technician.ID,
		AssetType:    in.AssetType,
		SignatureURL: in.SignatureURL,
		Notes:        in.Notes,
		AssignedAt:   assignedAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	switch in.AssetType {
	case entity.AssetSerialUnit:
		unit, err := uc.resolveUnit(ctx, in)
		if err != nil {
			return nil, err
		}
		if unit.Status != entity.SerialDisponivel {
			// Otra sesión pudo habérsela llevado entre el listado y el submit.
			return nil, domain.ErrInvalidTransition
		}
		if active, err := uc.custodyRepo.GetActiveBySerialUnit(unit.ID); err != nil {
			return nil, err
		} else if active != nil {
			return nil, domain.ErrConflict
		}
		assignment.SerialUnitID = unit.ID
		assignment.Quantity = 1
		if _, err := uc.registry.AssignUnit(ctx, in.CompanyID, unit.ID, technician.ID); err != nil {
			return nil, err
		}
	case entity.AssetProduct:
		product, err := uc.ownedProduct(in.CompanyID, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product.IsSerialized {
			return nil, domain.ErrInvalidInput
		}
		if in.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if in.Quantity > product.CurrentStock {
			return nil, domain.ErrInsufficientStock
		}
		assignment.ProductID = product.ID
		assignment.Quantity = in.Quantity
	}

	if err := uc.custodyRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Return registra la devolución: motivo obligatorio, returned_at=now, motivo
// anexado a las notas. Una unidad seriada vuelve a disponivel.
func (uc *UseCase) Return(ctx context.Context, companyID, assignmentID, reason string) (*entity.CustodyAssignment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	assignment, err := uc.ownedAssignment(companyID, assignmentID)
	if err != nil {
		return nil, err
	}
	if !assignment.Active() {
		return nil, domain.ErrConflict
	}

	// La unidad vuelve primero: si el cierre de la custodia falla, el
	// reintento encuentra la unidad ya disponivel y solo repite el cierre.
	if assignment.AssetType == entity.AssetSerialUnit && assignment.SerialUnitID != "" {
		unit, err := uc.serialRepo.GetByID(assignment.SerialUnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, domain.ErrNotFound
		}
		if unit.Status != entity.SerialDisponivel {
			if _, err := uc.registry.Transition(ctx, companyID, assignment.SerialUnitID, entity.SerialDisponivel); err != nil {
				return nil, err
			}
		}
	}

	now := time.Now()
	assignment.ReturnedAt = &now
	if assignment.Notes != "" {
		assignment.Notes += " | "
	}
	assignment.Notes += "Devolução: " + reason
	assignment.UpdatedAt = now
	if err := uc.custodyRepo.Update(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ActiveAssignments lista custodias vigentes; technicianID vacío = todas.
func (uc *UseCase) ActiveAssignments(ctx context.Context, companyID, technicianID string) ([]*entity.CustodyAssignment, error) {
	if technicianID != "" {
		if _, err := uc.ownedTechnician(companyID, technicianID); err != nil {
			return nil, err
		}
	}
	return uc.custodyRepo.ListActive(companyID, technicianID)
}

// ActiveCount cantidad de ítems bajo responsabilidad de un técnico.
func (uc *UseCase) ActiveCount(ctx context.Context, companyID, technicianID string) (int, error) {
	list, err := uc.ActiveAssignments(ctx, companyID, technicianID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, a := range list {
		total += a.Quantity
	}
	return total, nil
}

func (uc *UseCase) resolveUnit(ctx context.Context, in IssueInput) (*entity.SerialUnit, error) {
	if in.SerialUnitID != "" {
		unit, err := uc.serialRepo.GetByID(in.SerialUnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil || unit.CompanyID != in.CompanyID {
			return nil, domain.ErrNotFound
		}
		return unit, nil
	}
	if in.SerialText != "" {
		return uc.registry.ResolveBySerialText(ctx, in.CompanyID, in.ProductID, in.SerialText)
	}
	return nil, domain.ErrInvalidInput
}

func (uc *UseCase) ownedTechnician(companyID, technicianID string) (*entity.Technician, error) {
	if technicianID == "" {
		return nil, domain.ErrInvalidInput
	}
	technician, err := uc.technicianRepo.GetByID(technicianID)
	if err != nil {
		return nil, err
	}
	if technician == nil {
		return nil, domain.ErrNotFound
	}
	if technician.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return technician, nil
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

func (uc *UseCase) ownedAssignment(companyID, assignmentID string) (*entity.CustodyAssignment, error) {
	if assignmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	assignment, err := uc.custodyRepo.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, domain.ErrNotFound
	}
	if assignment.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return assignment, nil
}
