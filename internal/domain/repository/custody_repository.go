package repository

import "github.com/jhoicas/CampoStock-api/internal/domain/entity"

// CustodyRepository define el puerto de persistencia para CustodyAssignment (DIP).
type CustodyRepository interface {
	Create(assignment *entity.CustodyAssignment) error
	GetByID(id string) (*entity.CustodyAssignment, error)
	Update(assignment *entity.CustodyAssignment) error
	// ListActive devuelve custodias con returned_at IS NULL; technicianID
	// vacío = todas las de la empresa.
	ListActive(companyID, technicianID string) ([]*entity.CustodyAssignment, error)
	ListByTechnician(companyID, technicianID string) ([]*entity.CustodyAssignment, error)
	// GetActiveBySerialUnit devuelve la custodia activa de una unidad seriada,
	// o nil si no existe (custodia exclusiva: nunca hay más de una).
	GetActiveBySerialUnit(serialUnitID string) (*entity.CustodyAssignment, error)
}
