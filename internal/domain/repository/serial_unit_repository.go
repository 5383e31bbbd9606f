package repository

import "github.com/jhoicas/CampoStock-api/internal/domain/entity"

// SerialUnitRepository define el puerto de persistencia para SerialUnit (DIP).
type SerialUnitRepository interface {
	Create(unit *entity.SerialUnit) error
	GetByID(id string) (*entity.SerialUnit, error)
	// GetBySerialNumber busca por número de serie con comparación
	// case-insensitive, limitada a la empresa y opcionalmente al producto
	// (productID vacío = toda la empresa).
	GetBySerialNumber(companyID, productID, serial string) (*entity.SerialUnit, error)
	ListByProductAndStatus(productID string, statuses ...entity.SerialStatus) ([]*entity.SerialUnit, error)
	// CountActiveByProduct cuenta unidades no descartadas: la cantidad
	// autoritativa de un producto seriado.
	CountActiveByProduct(productID string) (int, error)
	Update(unit *entity.SerialUnit) error
}
