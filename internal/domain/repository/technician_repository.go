package repository

import "github.com/jhoicas/CampoStock-api/internal/domain/entity"

// TechnicianRepository define el puerto de persistencia para Technician (DIP).
type TechnicianRepository interface {
	Create(technician *entity.Technician) error
	GetByID(id string) (*entity.Technician, error)
	Update(technician *entity.Technician) error
	ListByCompany(companyID string, onlyActive bool) ([]*entity.Technician, error)
}
