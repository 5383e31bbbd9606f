package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/domain"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
)

// TechnicianUseCase alta y mantenimiento de técnicos.
type TechnicianUseCase struct {
	technicianRepo repository.TechnicianRepository
}

// NewTechnicianUseCase construye el caso de uso.
func NewTechnicianUseCase(technicianRepo repository.TechnicianRepository) *TechnicianUseCase {
	return &TechnicianUseCase{technicianRepo: technicianRepo}
}

// Create da de alta un técnico.
func (uc *TechnicianUseCase) Create(ctx context.Context, companyID string, in dto.TechnicianRequest) (*entity.Technician, error) {
	if in.Name == "" || in.Registration == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	technician := &entity.Technician{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		Registration: in.Registration,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.technicianRepo.Create(technician); err != nil {
		return nil, err
	}
	return technician, nil
}

// Update edita un técnico (nombre, rol, activo).
func (uc *TechnicianUseCase) Update(ctx context.Context, companyID, technicianID string, in dto.TechnicianRequest) (*entity.Technician, error) {
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
	if in.Name != "" {
		technician.Name = in.Name
	}
	if in.Role != "" {
		technician.Role = in.Role
	}
	if in.Active != nil {
		technician.Active = *in.Active
	}
	technician.UpdatedAt = time.Now()
	if err := uc.technicianRepo.Update(technician); err != nil {
		return nil, err
	}
	return technician, nil
}

// List lista técnicos de la empresa.
func (uc *TechnicianUseCase) List(ctx context.Context, companyID string, onlyActive bool) ([]*entity.Technician, error) {
	return uc.technicianRepo.ListByCompany(companyID, onlyActive)
}
