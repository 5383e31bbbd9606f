package repository

import "github.com/jhoicas/CampoStock-api/internal/domain/entity"

// AuditFilter criterios de listado del libro de ocurrencias.
type AuditFilter struct {
	ProductID    string
	SerialUnitID string
	Type         entity.AuditType
	Status       entity.AuditStatus
	Limit        int
	Offset       int
}

// AuditRepository define el puerto de persistencia para AuditRecord (DIP).
// No existe Delete: las ocurrencias nunca se borran.
type AuditRepository interface {
	Create(record *entity.AuditRecord) error
	GetByID(id string) (*entity.AuditRecord, error)
	Update(record *entity.AuditRecord) error
	ListByCompany(companyID string, filter AuditFilter) ([]*entity.AuditRecord, error)
}
