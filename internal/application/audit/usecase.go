// Package audit implementa el libro de ocurrencias: defectos, hurtos,
// garantías, conteos de inventario y sus resoluciones.
package audit

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

// UseCase casos de uso del libro de ocurrencias.
type UseCase struct {
	auditRepo   repository.AuditRepository
	productRepo repository.ProductRepository
	serialRepo  repository.SerialUnitRepository
	registry    *registry.UseCase
}

// New construye el caso de uso.
func New(
	auditRepo repository.AuditRepository,
	productRepo repository.ProductRepository,
	serialRepo repository.SerialUnitRepository,
	reg *registry.UseCase,
) *UseCase {
	return &UseCase{auditRepo: auditRepo, productRepo: productRepo, serialRepo: serialRepo, registry: reg}
}

// OpenInput entrada para abrir una ocurrencia.
type OpenInput struct {
	CompanyID    string
	UserID       string
	ProductID    string
	SerialUnitID string
	SerialText   string // alternativa a SerialUnitID: resolver por texto
	Type         entity.AuditType
	Quantity     int
	Description  string
}

// Open valida y persiste una ocurrencia. Con unidad seriada la cantidad se
// fuerza a 1; para granel debe ser >= 1. El estado inicial depende del tipo.
// Efecto colateral: defeito/furto/garantia con serial mueven la unidad a
// em_manutencao si aún no lo está.
func (uc *UseCase) Open(ctx context.Context, in OpenInput) (*entity.AuditRecord, error) {
	if !in.Type.Valid() || in.Type == entity.AuditResolucao {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Description) < entity.MinDescriptionLen {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.ownedProduct(in.CompanyID, in.ProductID)
	if err != nil {
		return nil, err
	}

	var unit *entity.SerialUnit
	switch {
	case in.SerialUnitID != "":
		unit, err = uc.serialRepo.GetByID(in.SerialUnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil || unit.CompanyID != in.CompanyID || unit.ProductID != product.ID {
			return nil, domain.ErrNotFound
		}
	case in.SerialText != "":
		unit, err = uc.registry.ResolveBySerialText(ctx, in.CompanyID, product.ID, in.SerialText)
		if err != nil {
			return nil, err
		}
	}

	quantity := in.Quantity
	if unit != nil {
		// Una ocurrencia con serial concierne exactamente una unidad física.
		quantity = 1
	} else if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	record := &entity.AuditRecord{
		ID:          uuid.New().String(),
		CompanyID:   in.CompanyID,
		ProductID:   product.ID,
		Type:        in.Type,
		Quantity:    quantity,
		Description: in.Description,
		Status:      in.Type.InitialStatus(),
		ReportedBy:  in.UserID,
		ReportedAt:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if unit != nil {
		record.SerialUnitID = unit.ID
	}
	if err := uc.auditRepo.Create(record); err != nil {
		return nil, err
	}

	// La unidad afectada sale de circulación mientras se investiga/repara.
	if unit != nil && unit.Status != entity.SerialEmManutencao {
		switch in.Type {
		case entity.AuditDefeito, entity.AuditFurto, entity.AuditGarantia:
			if _, err := uc.registry.Transition(ctx, in.CompanyID, unit.ID, entity.SerialEmManutencao); err != nil {
				return nil, err
			}
		}
	}
	return record, nil
}

// ResolveInput entrada para cerrar una ocurrencia.
type ResolveInput struct {
	CompanyID string
	UserID    string
	AuditID   string
	Notes     string
	// CreateResolution crea además un registro resolucao hijo (defeito/furto).
	CreateResolution bool
	// SerialOutcome destino de la unidad: disponivel, descartado o vacío
	// (sin movimiento).
	SerialOutcome entity.SerialStatus
}

// Resolve cierra una ocurrencia: status=resolvido, resolved_at=now. Puede
// crear un registro resolucao enlazado por parent_audit_id y mover la unidad
// al destino indicado por el caller.
func (uc *UseCase) Resolve(ctx context.Context, in ResolveInput) (*entity.AuditRecord, error) {
	record, err := uc.ownedRecord(in.CompanyID, in.AuditID)
	if err != nil {
		return nil, err
	}
	if record.Status == entity.AuditResolvido || record.Status == entity.AuditCancelado {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	record.Status = entity.AuditResolvido
	record.ResolvedAt = &now
	record.UpdatedAt = now
	if err := uc.auditRepo.Update(record); err != nil {
		return nil, err
	}

	if in.CreateResolution {
		resolution := &entity.AuditRecord{
			ID:            uuid.New().String(),
			CompanyID:     record.CompanyID,
			ProductID:     record.ProductID,
			SerialUnitID:  record.SerialUnitID,
			Type:          entity.AuditResolucao,
			Quantity:      record.Quantity,
			Description:   in.Notes,
			Status:        entity.AuditResolvido,
			ParentAuditID: record.ID,
			ReportedBy:    in.UserID,
			ReportedAt:    now,
			ResolvedAt:    &now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if len(resolution.Description) < entity.MinDescriptionLen {
			resolution.Description = "Resolução da ocorrência " + record.ID
		}
		if err := uc.auditRepo.Create(resolution); err != nil {
			return nil, err
		}
	}

	if in.SerialOutcome != "" && record.SerialUnitID != "" {
		if in.SerialOutcome != entity.SerialDisponivel && in.SerialOutcome != entity.SerialDescartado {
			return nil, domain.ErrInvalidInput
		}
		if _, err := uc.registry.Transition(ctx, in.CompanyID, record.SerialUnitID, in.SerialOutcome); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// UpdateStatus mueve una ocurrencia a un estado intermedio. recebido solo
// aplica a garantía; una ocurrencia cerrada o cancelada no se reabre.
func (uc *UseCase) UpdateStatus(ctx context.Context, companyID, auditID string, to entity.AuditStatus) (*entity.AuditRecord, error) {
	if !to.Valid() || to == entity.AuditResolvido {
		return nil, domain.ErrInvalidInput
	}
	record, err := uc.ownedRecord(companyID, auditID)
	if err != nil {
		return nil, err
	}
	if record.Status == entity.AuditResolvido || record.Status == entity.AuditCancelado {
		return nil, domain.ErrConflict
	}
	if to == entity.AuditRecebido && record.Type != entity.AuditGarantia {
		return nil, domain.ErrInvalidInput
	}
	record.Status = to
	record.UpdatedAt = time.Now()
	if err := uc.auditRepo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetByID obtiene una ocurrencia de la empresa.
func (uc *UseCase) GetByID(ctx context.Context, companyID, auditID string) (*entity.AuditRecord, error) {
	return uc.ownedRecord(companyID, auditID)
}

// List lista ocurrencias de la empresa según filtro.
func (uc *UseCase) List(ctx context.Context, companyID string, filter repository.AuditFilter) ([]*entity.AuditRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.auditRepo.ListByCompany(companyID, filter)
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

func (uc *UseCase) ownedRecord(companyID, auditID string) (*entity.AuditRecord, error) {
	if auditID == "" {
		return nil, domain.ErrInvalidInput
	}
	record, err := uc.auditRepo.GetByID(auditID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if record.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return record, nil
}

// ToResponse convierte una ocurrencia al DTO de salida.
func ToResponse(r *entity.AuditRecord) dto.AuditResponse {
	return dto.AuditResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		SerialUnitID:  r.SerialUnitID,
		Type:          string(r.Type),
		Quantity:      r.Quantity,
		Description:   r.Description,
		Status:        string(r.Status),
		ParentAuditID: r.ParentAuditID,
		ReportedBy:    r.ReportedBy,
		ReportedAt:    r.ReportedAt,
		ResolvedAt:    r.ResolvedAt,
	}
}
